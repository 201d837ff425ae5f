package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// SumTool adds two integers.
type SumTool struct{}

func (t *SumTool) Name() string {
	return "sum"
}

func (t *SumTool) Description() string {
	return "Computes the sum of two integers. Parameters: a (int), b (int)"
}

func (t *SumTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "integer"},
			"b": map[string]any{"type": "integer"},
		},
		"required": []string{"a", "b"},
	}
}

func (t *SumTool) Execute(_ context.Context, args map[string]any) (string, error) {
	a, err := intArg(args, "a")
	if err != nil {
		return "", err
	}
	b, err := intArg(args, "b")
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(a+b, 10), nil
}

// MultiplyTool multiplies two numbers.
type MultiplyTool struct{}

func (t *MultiplyTool) Name() string {
	return "multiply"
}

func (t *MultiplyTool) Description() string {
	return "Multiplies two numbers. Parameters: a (float), b (float)"
}

func (t *MultiplyTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "number"},
			"b": map[string]any{"type": "number"},
		},
		"required": []string{"a", "b"},
	}
}

func (t *MultiplyTool) Execute(_ context.Context, args map[string]any) (string, error) {
	a, err := floatArg(args, "a")
	if err != nil {
		return "", err
	}
	b, err := floatArg(args, "b")
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(a*b, 'f', -1, 64), nil
}

// Numeric arguments arrive as float64 from JSON, but models sometimes
// quote them; both shapes are accepted.

func intArg(args map[string]any, key string) (int64, error) {
	switch v := args[key].(type) {
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %q must be an integer", key)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("parameter %q is required", key)
	default:
		return 0, fmt.Errorf("parameter %q must be an integer", key)
	}
}

func floatArg(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("parameter %q must be a number", key)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("parameter %q is required", key)
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
}
