package agent

import (
	"encoding/json"
	"strings"
)

// ToolCall is one tool-invocation request found in model output.
type ToolCall struct {
	Name string
	Args map[string]any
	Raw  string // matched span, kept for log diagnostics
}

// ExtractToolCalls scans arbitrary model output for embedded tool-call
// JSON objects and returns them in order of appearance. Malformed
// candidates are silently skipped. Tool names are not checked against
// the registry here; unknown tools are detected at execution time so
// extraction and execution failures surface distinct diagnostics.
func ExtractToolCalls(text string) []ToolCall {
	var calls []ToolCall
	for i := 0; i < len(text); {
		if text[i] != '{' {
			i++
			continue
		}
		end, ok := matchBrace(text, i)
		if !ok {
			// Unmatched opening brace, skip it.
			i++
			continue
		}
		raw := text[i : end+1]
		if call, ok := parseCandidate(raw); ok {
			calls = append(calls, call)
			// Inner spans of an accepted match are not re-attempted.
			i = end + 1
			continue
		}
		// The outer span did not parse; resume just past its opening
		// brace so inner spans still get their turn.
		i++
	}
	return calls
}

// matchBrace returns the index of the '}' that closes the '{' at
// start, tracking nesting depth and skipping braces inside quoted
// strings.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	var quote byte
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case quote:
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// parseCandidate is the tolerant second stage: normalize quoting,
// require an object with a string "tool" field, and default a missing
// or non-object "args" to an empty map rather than rejecting the
// candidate. Zero-argument calls like {"tool": "get_date"} are valid.
func parseCandidate(raw string) (ToolCall, bool) {
	normalized := strings.ReplaceAll(raw, "'", `"`)

	var obj map[string]any
	if err := json.Unmarshal([]byte(normalized), &obj); err != nil {
		return ToolCall{}, false
	}
	name, ok := obj["tool"].(string)
	if !ok || name == "" {
		return ToolCall{}, false
	}
	args, ok := obj["args"].(map[string]any)
	if !ok {
		args = map[string]any{}
	}
	return ToolCall{Name: name, Args: args, Raw: raw}, true
}
