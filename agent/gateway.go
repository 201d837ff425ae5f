package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const gatewayTimeout = 120 * time.Second // LLM responses can be slow

// emptyReplyPlaceholder stands in for a completion whose reply field
// is missing or blank. An empty reply is not a transport failure.
const emptyReplyPlaceholder = "(the model returned an empty reply)"

var (
	ErrBackendUnreachable = errors.New("model backend unreachable")
	ErrBackendTimeout     = errors.New("model backend timed out")
	ErrBackendProtocol    = errors.New("model backend protocol error")
)

// Gateway sends one prompt to the model backend and returns its raw
// text completion.
type Gateway interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// OllamaGateway calls the Ollama generate endpoint.
type OllamaGateway struct {
	url    string
	model  string
	client *http.Client
}

// NewOllamaGateway creates a gateway for the given endpoint URL and
// model identifier.
func NewOllamaGateway(url, model string) *OllamaGateway {
	return &OllamaGateway{
		url:    url,
		model:  model,
		client: &http.Client{Timeout: gatewayTimeout},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete performs a non-streaming completion. Transport failures are
// errors; a successfully decoded but empty reply is not.
func (g *OllamaGateway) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  g.model,
		Prompt: userMessage,
		System: systemPrompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrBackendTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrBackendProtocol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrBackendProtocol, resp.StatusCode, truncate(string(raw), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: parsing response: %v", ErrBackendProtocol, err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return emptyReplyPlaceholder, nil
	}
	return out.Response, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
