package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoAPIKey is returned before any request when no key is configured.
var ErrNoAPIKey = errors.New("llm: api key not configured")

const (
	DefaultURL   = "https://api.openai.com/v1/chat/completions"
	DefaultModel = "gpt-4o"
)

// Client is a minimal chat-completions client.
type Client struct {
	url         string
	model       string
	apiKey      string
	temperature float64
	maxTokens   int
	hc          *http.Client
	logger      func(format string, v ...any)
}

// NewClient creates a new client. If httpClient is nil, a default with timeout is used.
func NewClient(url, model, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if url == "" {
		url = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		url:         url,
		model:       model,
		apiKey:      apiKey,
		temperature: 0.7,
		maxTokens:   500,
		hc:          httpClient,
		logger:      func(string, ...any) {},
	}
}

// SetLogger allows injecting a simple printf-like logger for debugging.
func (c *Client) SetLogger(l func(format string, v ...any)) {
	if l == nil {
		return
	}
	c.logger = l
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Complete sends one system and one user message and returns the first
// choice's text. An empty string with a nil error means the model answered
// with no content.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	b, err := json.Marshal(completionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("llm new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.hc.Do(req)
	lat := time.Since(start)
	c.logger("llm request url=%s model=%s status_err=%v latency=%s", c.url, c.model, err, lat)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("llm request failed: status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return extractText(respBody)
}

// extractText accepts the shapes chat-compatible servers actually return:
//  1. {"choices":[{"message":{"content":"..."}}]}
//  2. {"choices":[{"text":"..."}]}
//  3. {"response":"..."} or {"text":"..."} (Ollama and friends)
func extractText(body []byte) (string, error) {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return "", fmt.Errorf("llm decode: %w", err)
	}

	if arr, ok := m["choices"].([]any); ok && len(arr) > 0 {
		if first, ok := arr[0].(map[string]any); ok {
			if msg, ok := first["message"].(map[string]any); ok {
				if s, ok := msg["content"].(string); ok && s != "" {
					return strings.TrimSpace(s), nil
				}
			}
			if s, ok := first["text"].(string); ok && s != "" {
				return strings.TrimSpace(s), nil
			}
		}
		return "", nil
	}
	for _, k := range []string{"response", "text"} {
		if s, ok := m[k].(string); ok && s != "" {
			return strings.TrimSpace(s), nil
		}
	}
	return "", nil
}
