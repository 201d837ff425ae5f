// Package agent provides the orchestration loop that lets the model
// decide, turn by turn, whether to invoke external tools before
// producing a final answer.
package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Session-level option defaults.
const (
	DefaultMaxIterations = 5
	DefaultContextTurns  = 4
	DefaultTurnTruncate  = 200
)

const systemPromptFormat = `You are a friendly assistant that can use the following tools:

%s
INSTRUCTIONS:
1. Analyze the user's request.
2. If you need information that a tool can provide, use the tool.
3. To call a tool, write JSON in exactly this format:
   {"tool": "tool_name", "args": {"param1": "value1", "param2": "value2"}}
4. After receiving a tool result, use that information in your answer.
5. Be friendly and helpful.`

// Catalog is the read-only tool descriptor registry the loop consults:
// membership checks before execution plus the rendered catalog for the
// system prompt.
type Catalog interface {
	Has(name string) bool
	DescribeAll() string
}

// Executor invokes a named tool against the external tool provider.
type Executor interface {
	Invoke(ctx context.Context, name string, args map[string]any) (string, error)
}

// ToolResult is the outcome of one tool invocation within a round.
type ToolResult struct {
	Tool   string
	Output string
	Err    error
}

// Text returns the folded representation of the result: the output on
// success, the error description on failure. Failures are fed back to
// the model as plain text so it can adapt.
func (r ToolResult) Text() string {
	if r.Err != nil {
		return "Tool execution error: " + r.Err.Error()
	}
	return r.Output
}

// Options are the session-level knobs recognized by the loop.
type Options struct {
	MaxIterations int // model-call budget per user request
	ContextTurns  int // turns injected into later prompts
	TurnTruncate  int // character cap per rendered turn
}

func (o Options) withDefaults() Options {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.ContextTurns <= 0 {
		o.ContextTurns = DefaultContextTurns
	}
	if o.TurnTruncate <= 0 {
		o.TurnTruncate = DefaultTurnTruncate
	}
	return o
}

// Agent drives the iterate-extract-execute-fold cycle. It carries the
// whole session explicitly (gateway, catalog, executor, options), so
// multiple independent agents can coexist in one process. An Agent
// handles one user request at a time; each request gets its own
// history.
type Agent struct {
	gateway  Gateway
	catalog  Catalog
	executor Executor
	opts     Options
}

// New creates an Agent over the given collaborators.
func New(gateway Gateway, catalog Catalog, executor Executor, opts Options) *Agent {
	return &Agent{
		gateway:  gateway,
		catalog:  catalog,
		executor: executor,
		opts:     opts.withDefaults(),
	}
}

// Chat answers one user message, iterating up to the configured budget
// of model calls. Each iteration sends a prompt, scans the reply for
// tool calls, executes them, and folds the results back into context.
// A reply without tool calls is the final answer. On the last
// permitted call the reply stands as the answer even if it still asks
// for tools. Gateway errors terminate the request immediately with no
// retry; the error is the reported outcome.
func (a *Agent) Chat(ctx context.Context, userMessage string) (string, error) {
	system := fmt.Sprintf(systemPromptFormat, a.catalog.DescribeAll())

	var history History
	current := userMessage

	for i := 0; i < a.opts.MaxIterations; i++ {
		log.Printf("[agent] iteration %d", i+1)

		prompt := current
		if i > 0 {
			prompt = current + "\n\n[Previous steps]\n" +
				history.RenderWindow(a.opts.ContextTurns, a.opts.TurnTruncate)
		}

		reply, err := a.gateway.Complete(ctx, system, prompt)
		if err != nil {
			return "", fmt.Errorf("model request failed: %w", err)
		}

		if i == a.opts.MaxIterations-1 {
			// Budget exhausted: this call was the forced final one,
			// so any tool calls in the reply are ignored.
			log.Printf("[agent] iteration budget reached, returning final reply")
			return reply, nil
		}

		calls := ExtractToolCalls(reply)
		if len(calls) == 0 {
			// The model did not request tools; its reply is the answer.
			return reply, nil
		}

		results := a.executeRound(ctx, calls)

		history.Append(roleAssistant, reply)
		block := renderResults(results)
		history.Append(roleUser, block)
		current = block
	}

	// Unreachable: the last iteration always returns.
	return "", fmt.Errorf("exceeded iteration budget (%d)", a.opts.MaxIterations)
}

// executeRound runs every call of one round sequentially, in
// extraction order. Unknown tool names never reach the executor; they
// become synthesized failure results instead. All results are
// collected before the loop proceeds.
func (a *Agent) executeRound(ctx context.Context, calls []ToolCall) []ToolResult {
	results := make([]ToolResult, 0, len(calls))
	for _, call := range calls {
		log.Printf("[agent] executing tool: %s(%v)", call.Name, call.Args)

		if !a.catalog.Has(call.Name) {
			log.Printf("[agent] unknown tool requested: %s", call.Name)
			results = append(results, ToolResult{
				Tool: call.Name,
				Err:  fmt.Errorf("unknown tool %q", call.Name),
			})
			continue
		}

		output, err := a.executor.Invoke(ctx, call.Name, call.Args)
		if err != nil {
			log.Printf("[agent] tool %s failed: %v", call.Name, err)
			results = append(results, ToolResult{Tool: call.Name, Err: err})
			continue
		}
		results = append(results, ToolResult{Tool: call.Name, Output: output})
	}
	return results
}

// renderResults builds the tool-results block folded into the
// conversation as the next user turn.
func renderResults(results []ToolResult) string {
	var b strings.Builder
	b.WriteString("Here are the tool execution results:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "\nTool '%s':\n%s\n", r.Tool, r.Text())
	}
	b.WriteString("\nNow, using this information, give the user a final answer.")
	return b.String()
}
