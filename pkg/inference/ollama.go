package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultOllamaTimeout allows for slow local generation on CPU-only hosts.
const DefaultOllamaTimeout = 30 * time.Second

// Ollama calls a local Ollama server's generate API.
// Runs entirely on the user's machine; no credentials involved.
type Ollama struct {
	baseURL string
	model   string
	config  *Config
	http    *http.Client
	logger  *slog.Logger
}

// NewOllama creates a local-inference provider.
func NewOllama(opts ...Option) *Ollama {
	cfg := DefaultConfig()
	cfg.Name = "ollama"
	cfg.BaseURL = "http://localhost:11434"
	cfg.Model = "llama2"
	cfg.Timeout = DefaultOllamaTimeout
	cfg.Apply(opts...)

	return &Ollama{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		config:  cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger.With("component", "inference.ollama"),
	}
}

// Name identifies this provider.
func (o *Ollama) Name() string { return o.config.Name }

// Configured is always true; a server that is not running simply fails the
// attempt and the chain moves on.
func (o *Ollama) Configured() bool { return true }

// Timeout returns the per-call budget.
func (o *Ollama) Timeout() time.Duration { return o.config.Timeout }

// ollamaGenerateRequest is the Ollama generate API request.
type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// ollamaGenerateResponse is the Ollama generate API response.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Complete generates a completion via the local server.
func (o *Ollama) Complete(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	prompt := fmt.Sprintf("%s\nUser: %s\nAssistant:", o.config.SystemPrompt, req.Prompt)

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return nil, WrapError(o.Name(), fmt.Errorf("marshal payload: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(o.Name(), fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.http.Do(httpReq)
	if err != nil {
		return nil, WrapError(o.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    "generate failed",
			Provider:   o.Name(),
		}
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, WrapError(o.Name(), fmt.Errorf("decode response: %w", err))
	}

	text := strings.TrimSpace(genResp.Response)
	if text == "" {
		return nil, WrapError(o.Name(), ErrEmptyCompletion)
	}

	return &Response{
		Text:      text,
		Provider:  o.Name(),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Health checks that the server is reachable.
func (o *Ollama) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return WrapError(o.Name(), err)
	}

	resp, err := o.http.Do(req)
	if err != nil {
		return WrapError(o.Name(), fmt.Errorf("health check: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    "server unhealthy",
			Provider:   o.Name(),
		}
	}
	return nil
}

// Close releases resources.
func (o *Ollama) Close() error {
	o.http.CloseIdleConnections()
	return nil
}

// Verify Ollama implements Provider at compile time.
var _ Provider = (*Ollama)(nil)
