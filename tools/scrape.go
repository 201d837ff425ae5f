package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	scrapeTimeout   = 30 * time.Second
	maxContentLen   = 50000 // max chars handed to the summarizer
	scrapeLogPrefix = "[scrape]"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ScrapeTool fetches a web page, extracts its main text, and
// summarizes it through the Ollama generate endpoint.
type ScrapeTool struct {
	generateURL string
	model       string
	httpClient  *http.Client
}

// NewScrapeTool creates a scrape tool summarizing via the given Ollama
// generate endpoint and model.
func NewScrapeTool(generateURL, model string) *ScrapeTool {
	return &ScrapeTool{
		generateURL: generateURL,
		model:       model,
		httpClient:  &http.Client{Timeout: scrapeTimeout},
	}
}

func (s *ScrapeTool) Name() string {
	return "scrape"
}

func (s *ScrapeTool) Description() string {
	return "Scrapes a web page and summarizes its main content. Parameters: url (string)"
}

func (s *ScrapeTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "The URL of the web page to scrape and summarize",
			},
		},
		"required": []string{"url"},
	}
}

func (s *ScrapeTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	pageURL, ok := args["url"].(string)
	if !ok || pageURL == "" {
		return "", fmt.Errorf("url is required")
	}
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		pageURL = "https://" + pageURL
	}

	log.Printf("%s fetching %s", scrapeLogPrefix, pageURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; smartchat/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	text := extractText(string(body))
	if text == "" {
		return "Could not extract text content from the page.", nil
	}
	if len(text) > maxContentLen {
		text = text[:maxContentLen] + "..."
	}

	log.Printf("%s extracted %d chars of text", scrapeLogPrefix, len(text))

	summary, err := s.summarize(ctx, text, pageURL)
	if err != nil {
		log.Printf("%s summarization failed: %v", scrapeLogPrefix, err)
		// Fall back to the raw extraction rather than failing the call.
		return fmt.Sprintf("Failed to summarize, here's the extracted text:\n\n%s", clip(text, 2000)), nil
	}
	return summary, nil
}

// extractText walks the parsed HTML collecting text nodes, skipping
// chrome elements (scripts, navigation, footers).
func extractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "aside", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

func (s *ScrapeTool) summarize(ctx context.Context, text, pageURL string) (string, error) {
	prompt := fmt.Sprintf(`Summarize the main topics and ideas from this web page in 2-3 concise bullet points.

URL: %s

Content:
%s

Provide only the summary, no preamble:`, pageURL, text)

	reqBody, err := json.Marshal(map[string]any{
		"model":  s.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.generateURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama error %d: %s", resp.StatusCode, clip(string(body), 200))
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	return strings.TrimSpace(result.Response), nil
}

func clip(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
