package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	searchTimeout    = 10 * time.Second
	searchLogPrefix  = "[search]"
	defaultSearchURL = "https://api.duckduckgo.com/"
)

// SearchTool queries the DuckDuckGo Instant Answer API. Network and
// decode failures are reported as result text so the model can react;
// there is no retry.
type SearchTool struct {
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// NewSearchTool creates a search tool; maxResults caps how many
// related topics one call may return and doubles as the default.
func NewSearchTool(maxResults int) *SearchTool {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &SearchTool{
		baseURL:    defaultSearchURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: searchTimeout},
	}
}

func (s *SearchTool) Name() string {
	return "search_duckduckgo"
}

func (s *SearchTool) Description() string {
	return fmt.Sprintf("Searches the internet via the DuckDuckGo API. Parameters: query (string), max_results (int, default %d)", s.maxResults)
}

func (s *SearchTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query",
			},
			"max_results": map[string]any{
				"type":        "integer",
				"description": fmt.Sprintf("Maximum number of results (default %d)", s.maxResults),
			},
		},
		"required": []string{"query"},
	}
}

type searchResponse struct {
	AbstractTitle string `json:"AbstractTitle"`
	AbstractText  string `json:"AbstractText"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (s *SearchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("query is required")
	}

	max := s.maxResults
	if n, err := intArg(args, "max_results"); err == nil && n > 0 && int(n) < max {
		max = int(n)
	}

	log.Printf("%s query: %s", searchLogPrefix, query)

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if isTimeoutErr(err) {
			return "Error: the search request timed out. Try again.", nil
		}
		return fmt.Sprintf("Network error querying DuckDuckGo: %v", err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("DuckDuckGo returned HTTP %d", resp.StatusCode), nil
	}

	var data searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Sprintf("Error decoding search results: %v", err), nil
	}

	var results []string

	// The instant answer, when present, comes first.
	if data.AbstractText != "" {
		title := data.AbstractTitle
		if title == "" {
			title = "Result"
		}
		results = append(results, fmt.Sprintf("%s: %s", title, data.AbstractText))
	}

	topics := data.RelatedTopics
	if len(topics) > max {
		topics = topics[:max]
	}
	for _, item := range topics {
		if item.Text == "" {
			continue
		}
		results = append(results, fmt.Sprintf("%s\n   URL: %s", item.Text, item.FirstURL))
	}

	if len(results) == 0 {
		return fmt.Sprintf("No results found for query: %s", query), nil
	}
	return strings.Join(results, "\n\n"), nil
}

func isTimeoutErr(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
