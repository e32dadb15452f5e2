package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Default transcription parameters.
const (
	DefaultTranscribeURL = "https://api.openai.com/v1/audio/transcriptions"
	DefaultModel         = "whisper-1"
	DefaultTimeout       = 15 * time.Second
)

// Client transcribes audio via an OpenAI-compatible multipart
// /audio/transcriptions endpoint.
type Client struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

var _ Recognizer = (*Client)(nil)

// ClientOption configures a remote recognizer.
type ClientOption func(*Client)

// WithBaseURL sets the transcription endpoint.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithModel sets the transcription model.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.With("component", "stt.client")
	}
}

// NewClient creates a remote recognizer.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		name:    "remote",
		baseURL: DefaultTranscribeURL,
		model:   DefaultModel,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default().With("component", "stt.client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the recognizer in logs and status output.
func (c *Client) Name() string {
	return c.name
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Recognize transcribes the audio buffer.
func (c *Client) Recognize(ctx context.Context, audio []byte) (string, error) {
	if !c.Configured() {
		return "", WrapError(c.name, ErrNoAPIKey)
	}
	if len(audio) == 0 {
		return "", WrapError(c.name, ErrNoSpeech)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", WrapError(c.name, fmt.Errorf("build form: %w", err))
	}
	if _, err := part.Write(audio); err != nil {
		return "", WrapError(c.name, fmt.Errorf("write audio: %w", err))
	}
	if err := mw.WriteField("model", c.model); err != nil {
		return "", WrapError(c.name, fmt.Errorf("write field: %w", err))
	}
	if err := mw.Close(); err != nil {
		return "", WrapError(c.name, fmt.Errorf("close form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, &body)
	if err != nil {
		return "", WrapError(c.name, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", WrapError(c.name, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", WrapError(c.name, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", WrapError(c.name, fmt.Errorf("decode response: %w", err))
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", WrapError(c.name, ErrNoSpeech)
	}

	c.logger.Debug("transcribed audio",
		"bytes", len(audio),
		"chars", len(text),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}
