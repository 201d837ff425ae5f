package provider

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const clientVersion = "0.1.0"

// MCPProvider talks to a tool server over MCP stdio. The server
// process is spawned once per session and owns every tool's logic.
type MCPProvider struct {
	session *mcp.ClientSession
}

// Connect spawns the tool server command and performs the MCP
// handshake.
func Connect(ctx context.Context, command string, args ...string) (*MCPProvider, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "smartchat", Version: clientVersion}, nil)
	transport := &mcp.CommandTransport{Command: exec.Command(command, args...)}
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to tool server: %w", err)
	}
	return &MCPProvider{session: session}, nil
}

// Close shuts down the session and the server process.
func (p *MCPProvider) Close() error { return p.session.Close() }

// ListTools fetches the server's tool list and flattens each JSON
// input schema into parameter descriptors.
func (p *MCPProvider) ListTools(ctx context.Context) ([]Descriptor, error) {
	res, err := p.session.ListTools(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	descriptors := make([]Descriptor, 0, len(res.Tools))
	for _, t := range res.Tools {
		descriptors = append(descriptors, Descriptor{
			Name:        t.Name,
			Description: t.Description,
			Params:      schemaParams(t.InputSchema),
		})
	}
	return descriptors, nil
}

// Invoke calls one tool and joins its text content. Servers report
// tool failures as IsError results rather than protocol errors; those
// come back as errors carrying the failure text.
func (p *MCPProvider) Invoke(ctx context.Context, name string, args map[string]any) (string, error) {
	res, err := p.session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", fmt.Errorf("calling tool %s: %w", name, err)
	}
	text := contentText(res.Content)
	if res.IsError {
		if text == "" {
			text = "tool execution failed"
		}
		return "", fmt.Errorf("tool %s: %s", name, text)
	}
	return text, nil
}

// schemaParams extracts name/type pairs from a JSON-schema object.
// The properties map is unordered on the wire, so params are sorted by
// name to keep the rendered catalog deterministic.
func schemaParams(schema any) []Param {
	obj, ok := schema.(map[string]any)
	if !ok {
		return nil
	}
	props, ok := obj["properties"].(map[string]any)
	if !ok {
		return nil
	}
	params := make([]Param, 0, len(props))
	for name, v := range props {
		paramType := "unknown"
		if prop, ok := v.(map[string]any); ok {
			if s, ok := prop["type"].(string); ok {
				paramType = s
			}
		}
		params = append(params, Param{Name: name, Type: paramType})
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	return params
}

func contentText(content []mcp.Content) string {
	parts := make([]string, 0, len(content))
	for _, c := range content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
