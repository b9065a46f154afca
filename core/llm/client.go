// Package llm implements the Generator interface against any
// OpenAI-compatible /v1/chat/completions endpoint (vLLM, Ollama,
// OpenAI itself). The client is plain net/http; authentication is a
// bearer token passed in explicitly, never read from ambient state.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultMaxTokens   = 4096
	defaultTemperature = 0.7
)

// Config configures the chat client.
type Config struct {
	// Endpoint is the server base URL, e.g. "https://api.openai.com".
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	// APIKey is sent as a bearer token when non-empty.
	APIKey string `json:"-" yaml:"-"`
	// Model is the completion model name.
	Model string `json:"model" yaml:"model"`
	// Temperature for sampling. Nil means the 0.7 default; an explicit
	// zero requests deterministic sampling.
	Temperature *float32 `json:"temperature" yaml:"temperature"`
	// MaxTokens caps the completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
	// Timeout bounds each request (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.Temperature == nil {
		t := float32(defaultTemperature)
		c.Temperature = &t
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Client calls a chat-completions endpoint.
type Client struct {
	cfg    Config
	client *http.Client
}

// New creates a Client.
func New(cfg Config) *Client {
	cfg.defaults()
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// chatRequest is the JSON body sent to /v1/chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the OpenAI-format response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Generate sends a system/user prompt pair and returns the completion
// text of the first choice.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: *c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP POST %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, string(respBody))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from %s", url)
	}

	c.cfg.Logger.Debug("chat completion",
		"model", c.cfg.Model,
		"duration", time.Since(start),
		"prompt_tokens", result.Usage.PromptTokens,
		"completion_tokens", result.Usage.CompletionTokens)

	return result.Choices[0].Message.Content, nil
}
