package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGatewayComplete(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "The answer is 5."})
	}))
	defer srv.Close()

	g := NewOllamaGateway(srv.URL, "test-model")
	reply, err := g.Complete(context.Background(), "be helpful", "what is 2+3?")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "The answer is 5." {
		t.Errorf("reply = %q", reply)
	}

	if got.Model != "test-model" {
		t.Errorf("model = %q", got.Model)
	}
	if got.System != "be helpful" {
		t.Errorf("system = %q", got.System)
	}
	if got.Prompt != "what is 2+3?" {
		t.Errorf("prompt = %q", got.Prompt)
	}
	if got.Stream {
		t.Error("stream should be false")
	}
}

func TestGatewayEmptyReplyPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty field", `{"response": ""}`},
		{"whitespace only", `{"response": "  \n\t "}`},
		{"missing field", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := NewOllamaGateway(srv.URL, "m")
			reply, err := g.Complete(context.Background(), "", "hi")
			if err != nil {
				t.Fatalf("empty reply must not be an error, got %v", err)
			}
			if reply != emptyReplyPlaceholder {
				t.Errorf("reply = %q, want placeholder", reply)
			}
		})
	}
}

func TestGatewayProtocolErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200 status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			g := NewOllamaGateway(srv.URL, "m")
			_, err := g.Complete(context.Background(), "", "hi")
			if !errors.Is(err, ErrBackendProtocol) {
				t.Errorf("err = %v, want ErrBackendProtocol", err)
			}
		})
	}
}

func TestGatewayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	g := NewOllamaGateway(srv.URL, "m")
	_, err := g.Complete(context.Background(), "", "hi")
	if !errors.Is(err, ErrBackendUnreachable) {
		t.Errorf("err = %v, want ErrBackendUnreachable", err)
	}
}

func TestGatewayTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	g := NewOllamaGateway(srv.URL, "m")
	g.client.Timeout = 20 * time.Millisecond

	_, err := g.Complete(context.Background(), "", "hi")
	if !errors.Is(err, ErrBackendTimeout) {
		t.Errorf("err = %v, want ErrBackendTimeout", err)
	}
}
