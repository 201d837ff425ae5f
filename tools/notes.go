package tools

import (
	"context"
	"fmt"
	"os"
)

// Large notes files are cut off to keep tool results prompt-sized.
const notesMaxLen = 10000

// NotesTool reads the contents of the configured notes file. Missing
// or unreadable files are reported as text, not errors, so the model
// can relay the problem.
type NotesTool struct {
	path string
}

// NewNotesTool creates a notes tool reading from path.
func NewNotesTool(path string) *NotesTool {
	return &NotesTool{path: path}
}

func (t *NotesTool) Name() string {
	return "read_notes"
}

func (t *NotesTool) Description() string {
	return fmt.Sprintf("Reads the contents of %s from the project root", t.path)
}

func (t *NotesTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}

func (t *NotesTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	content, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("%s not found.", t.path), nil
	}
	if err != nil {
		return fmt.Sprintf("Error reading %s: %v", t.path, err), nil
	}
	if len(content) > notesMaxLen {
		return string(content[:notesMaxLen]) + "\n\n...[truncated]", nil
	}
	return string(content), nil
}
