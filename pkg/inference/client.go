package inference

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

	"github.com/aria-ai/aria/pkg/history"
)

// Client is the standard HTTP-based chat provider.
// Works with any OpenAI-compatible chat completions API (Groq, Together,
// OpenAI itself, vLLM and friends).
type Client struct {
	name    string
	baseURL string
	apiKey  string
	config  *Config
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new chat completions client.
func NewClient(opts ...Option) *Client {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	return &Client{
		name:    cfg.Name,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		config:  cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger.With("component", "inference."+cfg.Name),
	}
}

// Name identifies this provider.
func (c *Client) Name() string { return c.name }

// Configured reports whether an API key is present.
// Chat completions APIs reject anonymous requests, so a missing key means
// the provider is skipped rather than attempted.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Timeout returns the per-call budget.
func (c *Client) Timeout() time.Duration { return c.config.Timeout }

// Complete generates a chat completion.
func (c *Client) Complete(ctx context.Context, req *Request) (*Response, error) {
	if !c.Configured() {
		return nil, WrapError(c.name, ErrNotConfigured)
	}

	start := time.Now()

	payload := c.buildPayload(req)
	resp, err := c.post(ctx, "/chat/completions", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	var result chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, WrapError(c.name, fmt.Errorf("decode response: %w", err))
	}

	if len(result.Choices) == 0 {
		return nil, WrapError(c.name, fmt.Errorf("no choices returned"))
	}

	text := strings.TrimSpace(result.Choices[0].Message.Content)
	if text == "" {
		return nil, WrapError(c.name, ErrEmptyCompletion)
	}

	return &Response{
		Text:      text,
		Provider:  c.name,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Health checks API connectivity and key validity.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/models", nil)
	if err != nil {
		return WrapError(c.name, err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return WrapError(c.name, fmt.Errorf("health check: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	return nil
}

// Close releases resources.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// buildPayload constructs the chat completions request body.
// The conversation history is replayed as role-tagged messages between the
// system persona and the current prompt.
func (c *Client) buildPayload(req *Request) map[string]interface{} {
	messages := make([]map[string]string, 0, len(req.History)+2)

	if c.config.SystemPrompt != "" {
		messages = append(messages, map[string]string{
			"role":    "system",
			"content": c.config.SystemPrompt,
		})
	}

	for _, turn := range req.History {
		role := "user"
		if turn.Role == history.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, map[string]string{
			"role":    role,
			"content": turn.Content,
		})
	}

	messages = append(messages, map[string]string{
		"role":    "user",
		"content": req.Prompt,
	})

	payload := map[string]interface{}{
		"model":    c.config.Model,
		"messages": messages,
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	if maxTokens > 0 {
		payload["max_tokens"] = maxTokens
	}

	temp := req.Temperature
	if temp == 0 {
		temp = c.config.Temperature
	}
	if temp > 0 {
		payload["temperature"] = temp
	}

	return payload
}

// post makes a POST request with retry on transient failures.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(c.name, fmt.Errorf("marshal payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(c.name, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.doWithRetry(ctx, req, body)
}

// doWithRetry performs the request with linear-backoff retry on 429/5xx.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
			// Reset body for retry
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = WrapError(c.name, err)
			c.logger.Warn("request failed, retrying",
				"attempt", attempt+1,
				"error", err,
			)
			continue
		}

		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = c.parseError(resp)
			c.logger.Warn("retrying request",
				"attempt", attempt+1,
				"status", resp.StatusCode,
			)
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// parseError reads and parses an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	// Try to parse OpenAI-style error
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	message := string(body)
	if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Provider:   c.name,
	}
}

// API response types
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Verify Client implements Provider at compile time.
var _ Provider = (*Client)(nil)
