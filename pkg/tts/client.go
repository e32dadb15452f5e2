package tts

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

// DefaultSpeechURL is the OpenAI-compatible speech endpoint.
const DefaultSpeechURL = "https://api.openai.com/v1/audio/speech"

// Client synthesizes speech via an OpenAI-compatible /audio/speech
// endpoint. Any service exposing that contract works unchanged.
type Client struct {
	config  *Config
	client  *http.Client
	logger  *slog.Logger
	baseURL string
}

var _ Synthesizer = (*Client)(nil)

// NewClient creates an HTTP-backed synthesizer.
func NewClient(opts ...Option) *Client {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultSpeechURL
	}

	return &Client{
		config:  cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger.With("component", "tts.client"),
		baseURL: baseURL,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// Synthesize converts text to audio, returning the complete buffer.
func (c *Client) Synthesize(ctx context.Context, text string, opts ...SpeakOption) (*AudioResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if !c.Configured() {
		return nil, ErrNoAPIKey
	}

	speak := ApplySpeakOptions(opts...)
	start := time.Now()

	payload := map[string]interface{}{
		"model":           c.config.Model,
		"voice":           c.config.Voice,
		"input":           text,
		"speed":           speak.Speed,
		"response_format": c.config.Format,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError("marshal payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError("create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, WrapError("send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseError(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError("read response", err)
	}

	latency := time.Since(start).Milliseconds()
	c.logger.Debug("synthesized audio",
		"chars", len(text),
		"bytes", len(audio),
		"latency_ms", latency,
		"voice", c.config.Voice,
		"speed", speak.Speed,
	)

	return &AudioResult{
		Audio:     audio,
		Format:    c.config.Format,
		CharCount: len(text),
		LatencyMs: latency,
	}, nil
}

// parseError converts a non-200 response into an APIError.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var apiResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error.Message != "" {
		message = apiResp.Error.Message
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}

// Health checks endpoint reachability and credential validity with a
// minimal synthesis request.
func (c *Client) Health(ctx context.Context) error {
	if !c.Configured() {
		return ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := c.Synthesize(ctx, "ok"); err != nil {
		return fmt.Errorf("tts health check: %w", err)
	}
	return nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
