package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"linecut/internal/services"
)

const (
	defaultBaseURL     = "https://openrouter.ai/api/v1/chat/completions"
	defaultHTTPTimeout = 60 * time.Second

	systemPrompt = "You summarize movie scenes. Given subtitle lines around a moment in a film, reply with one or two sentences describing what is happening. Reply with the summary only."
)

// Config captures the runtime settings required to talk to the LLM.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client calls an OpenRouter-compatible chat completion API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs a summarization client.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimSpace(cfg.BaseURL),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	return client
}

// FromConfig returns a live client when an API key is configured and the
// silent Noop otherwise.
func FromConfig(cfg Config, opts ...Option) Summarizer {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Noop{}
	}
	return NewClient(cfg, opts...)
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize sends the movie title and context snippets to the LLM and
// returns its reply.
func (c *Client) Summarize(ctx context.Context, title string, snippets []string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", nil
	}
	if len(snippets) == 0 {
		return "", nil
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Movie: %s\n\nSubtitle lines:\n", title)
	for _, snippet := range snippets {
		prompt.WriteString(snippet)
		prompt.WriteByte('\n')
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt.String()},
		},
	})
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarize", "marshal request", "encode chat payload", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarize", "build request", "construct http request", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarize", "http request", "summarization request failed", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "summarize", "read response", "read summarization response", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", services.Wrap(services.ErrTransient, "summarize", "http status", fmt.Sprintf("unexpected status %d: %s", response.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", services.Wrap(services.ErrTransient, "summarize", "decode response", "parse summarization response", err)
	}
	if decoded.Error != nil {
		return "", services.Wrap(services.ErrTransient, "summarize", "api error", decoded.Error.Message, nil)
	}
	if len(decoded.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
