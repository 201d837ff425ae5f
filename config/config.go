// Package config provides configuration management for the chat
// client and the tool server.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Model backend.
	OllamaURL   string
	OllamaModel string

	// Tool provider.
	ToolServerCmd string

	// Session-level orchestration options.
	MaxIterations    int
	ContextTurns     int
	TurnTruncate     int
	SearchMaxResults int

	// Tool-side settings.
	NotesFile string

	// Front ends and integrations.
	TelegramToken     string
	GoogleClientID    string
	GoogleSecret      string
	GoogleRedirectURL string
	GoogleTokenFile   string
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() *Config {
	return &Config{
		OllamaURL:        getEnvOrDefault("OLLAMA_URL", "http://localhost:11434/api/generate"),
		OllamaModel:      getEnvOrDefault("OLLAMA_MODEL", "gemma3:4b"),
		ToolServerCmd:    getEnvOrDefault("TOOL_SERVER_CMD", "toolserver"),
		MaxIterations:    getEnvIntOrDefault("MAX_ITERATIONS", 5),
		ContextTurns:     getEnvIntOrDefault("CONTEXT_TURNS", 4),
		TurnTruncate:     getEnvIntOrDefault("TURN_TRUNCATE", 200),
		SearchMaxResults: getEnvIntOrDefault("SEARCH_MAX_RESULTS", 5),
		NotesFile:        getEnvOrDefault("NOTES_FILE", "notes.txt"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),

		GoogleClientID:    os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleSecret:      os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL: getEnvOrDefault("GOOGLE_REDIRECT_URL", "urn:ietf:wg:oauth:2.0:oob"),
		GoogleTokenFile:   getEnvOrDefault("GOOGLE_TOKEN_FILE", "google_token.json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
