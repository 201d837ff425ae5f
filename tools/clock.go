package tools

import (
	"context"
	"time"
)

// TimeTool returns the current wall-clock time.
type TimeTool struct{}

func (t *TimeTool) Name() string {
	return "get_current_time"
}

func (t *TimeTool) Description() string {
	return "Returns the current time in HH:MM:SS format"
}

func (t *TimeTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}

func (t *TimeTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	return time.Now().Format("15:04:05"), nil
}

// DateTool returns the current date.
type DateTool struct{}

func (t *DateTool) Name() string {
	return "get_date"
}

func (t *DateTool) Description() string {
	return "Returns the current date in YYYY-MM-DD format"
}

func (t *DateTool) Parameters() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}

func (t *DateTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	return time.Now().Format("2006-01-02"), nil
}
