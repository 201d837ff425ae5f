package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const samplePage = `<html>
<head><title>Sample</title><style>body { color: red }</style></head>
<body>
<nav>Home | About</nav>
<script>console.log("tracking")</script>
<h1>Welcome</h1>
<p>This is the main content of the page.</p>
<footer>Copyright 2026</footer>
</body>
</html>`

func TestExtractText(t *testing.T) {
	text := extractText(samplePage)

	if !strings.Contains(text, "Welcome") || !strings.Contains(text, "main content") {
		t.Errorf("body text missing: %q", text)
	}
	for _, skipped := range []string{"tracking", "color: red", "Home | About", "Copyright"} {
		if strings.Contains(text, skipped) {
			t.Errorf("chrome element leaked into extraction: %q", skipped)
		}
	}
	if strings.Contains(text, "\n") || strings.Contains(text, "  ") {
		t.Errorf("whitespace not collapsed: %q", text)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	if got := extractText("<html><body><script>x</script></body></html>"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestScrapeToolSummarizes(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer page.Close()

	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "- A welcome page with sample content"}`))
	}))
	defer ollama.Close()

	tool := NewScrapeTool(ollama.URL, "test-model")
	out, err := tool.Execute(context.Background(), map[string]any{"url": page.URL})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "- A welcome page with sample content" {
		t.Errorf("got %q", out)
	}
}

func TestScrapeToolFallsBackWhenSummarizerFails(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer page.Close()

	ollama := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ollama.Close()

	tool := NewScrapeTool(ollama.URL, "test-model")
	out, err := tool.Execute(context.Background(), map[string]any{"url": page.URL})
	if err != nil {
		t.Fatalf("summarizer failure must fall back, not error: %v", err)
	}
	if !strings.Contains(out, "here's the extracted text") {
		t.Errorf("fallback preamble missing: %q", out)
	}
	if !strings.Contains(out, "main content") {
		t.Errorf("extracted text missing from fallback: %q", out)
	}
}

func TestScrapeToolRequiresURL(t *testing.T) {
	tool := NewScrapeTool("http://localhost", "m")
	for _, args := range []map[string]any{nil, {}, {"url": ""}, {"url": 42}} {
		if _, err := tool.Execute(context.Background(), args); err == nil {
			t.Errorf("args %v: expected error", args)
		}
	}
}

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := clip("0123456789", 4); got != "0123..." {
		t.Errorf("got %q", got)
	}
}
