package provider

import (
	"reflect"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestSchemaParams(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"b":     map[string]any{"type": "integer"},
			"a":     map[string]any{"type": "integer"},
			"query": map[string]any{"type": "string"},
		},
		"required": []string{"a", "b"},
	}

	got := schemaParams(schema)
	want := []Param{
		{Name: "a", Type: "integer"},
		{Name: "b", Type: "integer"},
		{Name: "query", Type: "string"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("params = %v, want %v (sorted by name)", got, want)
	}
}

func TestSchemaParamsEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		schema any
		want   int
	}{
		{"nil schema", nil, 0},
		{"not an object", "string", 0},
		{"no properties", map[string]any{"type": "object"}, 0},
		{"property without type", map[string]any{
			"properties": map[string]any{"x": map[string]any{}},
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schemaParams(tt.schema)
			if len(got) != tt.want {
				t.Errorf("got %d params, want %d", len(got), tt.want)
			}
		})
	}

	// Missing type falls back to a placeholder, not an empty string.
	got := schemaParams(map[string]any{
		"properties": map[string]any{"x": map[string]any{}},
	})
	if got[0].Type != "unknown" {
		t.Errorf("type = %q, want unknown", got[0].Type)
	}
}

func TestContentText(t *testing.T) {
	content := []mcp.Content{
		&mcp.TextContent{Text: "first"},
		&mcp.TextContent{Text: "second"},
	}
	if got := contentText(content); got != "first\nsecond" {
		t.Errorf("contentText = %q", got)
	}
	if got := contentText(nil); got != "" {
		t.Errorf("contentText(nil) = %q, want empty", got)
	}
}
