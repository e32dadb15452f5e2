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
)

// DefaultHuggingFaceURL is the free-tier inference endpoint for a small
// conversational model.
const DefaultHuggingFaceURL = "https://api-inference.huggingface.co/models/microsoft/DialoGPT-medium"

// HuggingFace calls the Hugging Face Inference API.
// The free tier works without a token, so this provider is always
// considered configured; a token only raises the rate limits.
type HuggingFace struct {
	url    string
	token  string
	config *Config
	http   *http.Client
	logger *slog.Logger
}

// NewHuggingFace creates a Hugging Face inference provider.
func NewHuggingFace(opts ...Option) *HuggingFace {
	cfg := DefaultConfig()
	cfg.Name = "huggingface"
	cfg.BaseURL = DefaultHuggingFaceURL
	cfg.Apply(opts...)

	return &HuggingFace{
		url:    cfg.BaseURL,
		token:  cfg.APIKey,
		config: cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger.With("component", "inference.huggingface"),
	}
}

// Name identifies this provider.
func (h *HuggingFace) Name() string { return h.config.Name }

// Configured is always true; the endpoint accepts anonymous requests.
func (h *HuggingFace) Configured() bool { return true }

// Timeout returns the per-call budget.
func (h *HuggingFace) Timeout() time.Duration { return h.config.Timeout }

// hfRequest is the inference API request body.
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	MaxLength   int     `json:"max_length"`
	Temperature float64 `json:"temperature"`
	DoSample    bool    `json:"do_sample"`
}

// hfGeneration is one element of the inference API response array.
type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Complete generates a completion for the prompt.
// The API echoes the prompt at the start of the generation; the echo is
// stripped before returning.
func (h *HuggingFace) Complete(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	maxLength := req.MaxTokens
	if maxLength == 0 {
		maxLength = 100
	}
	temp := req.Temperature
	if temp == 0 {
		temp = h.config.Temperature
	}

	body, err := json.Marshal(hfRequest{
		Inputs: req.Prompt,
		Parameters: hfParameters{
			MaxLength:   maxLength,
			Temperature: temp,
			DoSample:    true,
		},
	})
	if err != nil {
		return nil, WrapError(h.Name(), fmt.Errorf("marshal payload: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", h.url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(h.Name(), fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.http.Do(httpReq)
	if err != nil {
		return nil, WrapError(h.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(msg),
			Provider:   h.Name(),
		}
	}

	var generations []hfGeneration
	if err := json.NewDecoder(resp.Body).Decode(&generations); err != nil {
		return nil, WrapError(h.Name(), fmt.Errorf("decode response: %w", err))
	}
	if len(generations) == 0 {
		return nil, WrapError(h.Name(), ErrEmptyCompletion)
	}

	text := strings.TrimSpace(strings.TrimPrefix(generations[0].GeneratedText, req.Prompt))
	if text == "" {
		return nil, WrapError(h.Name(), ErrEmptyCompletion)
	}

	return &Response{
		Text:      text,
		Provider:  h.Name(),
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}

// Health probes the model endpoint.
func (h *HuggingFace) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", h.url, nil)
	if err != nil {
		return WrapError(h.Name(), err)
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.http.Do(req)
	if err != nil {
		return WrapError(h.Name(), fmt.Errorf("health check: %w", err))
	}
	resp.Body.Close()
	return nil
}

// Close releases resources.
func (h *HuggingFace) Close() error {
	h.http.CloseIdleConnections()
	return nil
}

// Verify HuggingFace implements Provider at compile time.
var _ Provider = (*HuggingFace)(nil)
