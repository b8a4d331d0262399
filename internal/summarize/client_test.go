package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFromConfigWithoutKeyIsNoop(t *testing.T) {
	s := FromConfig(Config{})
	if _, ok := s.(Noop); !ok {
		t.Fatalf("expected Noop, got %T", s)
	}
	summary, err := s.Summarize(context.Background(), "Movie", []string{"[00:00:01] line"})
	if err != nil || summary != "" {
		t.Fatalf("noop should decline silently: %q, %v", summary, err)
	}
}

func TestClientSummarize(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  The raptors close in.  "}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "test-model"})
	summary, err := client.Summarize(context.Background(), "Jurassic Park", []string{"[00:10:10] hello dino world"})
	if err != nil {
		t.Fatal(err)
	}
	if summary != "The raptors close in." {
		t.Fatalf("unexpected summary: %q", summary)
	}
	if captured.Model != "test-model" {
		t.Fatalf("unexpected model: %q", captured.Model)
	}
	if len(captured.Messages) != 2 || !strings.Contains(captured.Messages[1].Content, "Jurassic Park") {
		t.Fatalf("prompt missing title: %+v", captured.Messages)
	}
	if !strings.Contains(captured.Messages[1].Content, "hello dino world") {
		t.Fatalf("prompt missing snippet: %+v", captured.Messages)
	}
}

func TestClientSummarizeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL, Model: "m"})
	if _, err := client.Summarize(context.Background(), "T", []string{"[00:00:01] x"}); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestClientSummarizeNoSnippets(t *testing.T) {
	client := NewClient(Config{APIKey: "sk-test", BaseURL: "http://127.0.0.1:0", Model: "m"})
	summary, err := client.Summarize(context.Background(), "T", nil)
	if err != nil || summary != "" {
		t.Fatalf("expected silent decline without context, got %q, %v", summary, err)
	}
}
