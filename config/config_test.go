package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"OLLAMA_URL", "OLLAMA_MODEL", "TOOL_SERVER_CMD",
		"MAX_ITERATIONS", "CONTEXT_TURNS", "TURN_TRUNCATE",
		"SEARCH_MAX_RESULTS", "NOTES_FILE", "TELEGRAM_BOT_TOKEN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.OllamaURL != "http://localhost:11434/api/generate" {
		t.Errorf("OllamaURL = %q", cfg.OllamaURL)
	}
	if cfg.OllamaModel != "gemma3:4b" {
		t.Errorf("OllamaModel = %q", cfg.OllamaModel)
	}
	if cfg.ToolServerCmd != "toolserver" {
		t.Errorf("ToolServerCmd = %q", cfg.ToolServerCmd)
	}
	if cfg.MaxIterations != 5 {
		t.Errorf("MaxIterations = %d, want 5", cfg.MaxIterations)
	}
	if cfg.ContextTurns != 4 {
		t.Errorf("ContextTurns = %d, want 4", cfg.ContextTurns)
	}
	if cfg.TurnTruncate != 200 {
		t.Errorf("TurnTruncate = %d, want 200", cfg.TurnTruncate)
	}
	if cfg.SearchMaxResults != 5 {
		t.Errorf("SearchMaxResults = %d, want 5", cfg.SearchMaxResults)
	}
	if cfg.NotesFile != "notes.txt" {
		t.Errorf("NotesFile = %q", cfg.NotesFile)
	}
	if cfg.TelegramToken != "" {
		t.Errorf("TelegramToken = %q, want empty", cfg.TelegramToken)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OLLAMA_MODEL", "llama3:8b")
	t.Setenv("MAX_ITERATIONS", "8")
	t.Setenv("TOOL_SERVER_CMD", "go run ./cmd/toolserver")

	cfg := Load()

	if cfg.OllamaModel != "llama3:8b" {
		t.Errorf("OllamaModel = %q", cfg.OllamaModel)
	}
	if cfg.MaxIterations != 8 {
		t.Errorf("MaxIterations = %d, want 8", cfg.MaxIterations)
	}
	if cfg.ToolServerCmd != "go run ./cmd/toolserver" {
		t.Errorf("ToolServerCmd = %q", cfg.ToolServerCmd)
	}
}

func TestLoadRejectsBadIntegers(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "many"},
		{"zero", "0"},
		{"negative", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAX_ITERATIONS", tt.value)
			if cfg := Load(); cfg.MaxIterations != 5 {
				t.Errorf("MaxIterations = %d, want default 5", cfg.MaxIterations)
			}
		})
	}
}
