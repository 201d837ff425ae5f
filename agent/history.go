package agent

import (
	"fmt"
	"strings"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

// Turn is one entry in the conversation history of a single
// orchestration run.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
	Seq     int // insertion order
}

// History holds the append-only turn sequence for one run. Turns are
// never mutated after Append; rendering only reads a bounded window.
// A History is owned by exactly one in-flight orchestration.
type History struct {
	turns []Turn
}

// Append records a turn at the end of the sequence.
func (h *History) Append(role, content string) {
	h.turns = append(h.turns, Turn{Role: role, Content: content, Seq: len(h.turns)})
}

// Len returns the number of recorded turns.
func (h *History) Len() int { return len(h.turns) }

// Window returns at most the last n turns as a read view.
func (h *History) Window(n int) []Turn {
	if n <= 0 || len(h.turns) == 0 {
		return nil
	}
	if n > len(h.turns) {
		n = len(h.turns)
	}
	return h.turns[len(h.turns)-n:]
}

// RenderWindow renders the last n turns as role-prefixed lines, each
// truncated to limit characters, keeping later prompts bounded no
// matter how many iterations accumulate.
func (h *History) RenderWindow(n, limit int) string {
	var b strings.Builder
	for _, t := range h.Window(n) {
		fmt.Fprintf(&b, "%s: %s\n", t.Role, truncate(t.Content, limit))
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
