// Package inference provides a unified interface for text-completion providers.
//
// The package abstracts conversational completions behind a single Provider
// interface with one implementation per backend: OpenAI-compatible chat APIs
// (Groq, Together), the Hugging Face Inference API, a local Ollama server, and
// a deterministic rule-based responder that never fails. The Chain type tries
// providers in preference order and guarantees a response.
//
// Example usage:
//
//	groq, _ := inference.NewClient(
//	    inference.WithName("groq"),
//	    inference.WithBaseURL("https://api.groq.com/openai/v1"),
//	    inference.WithAPIKey(os.Getenv("GROQ_API_KEY")),
//	)
//	chain := inference.NewChain(hist, "groq", groq, hf, ollama)
//	reply := chain.Respond(ctx, "hello there")
package inference

import (
	"context"
	"time"

	"github.com/aria-ai/aria/pkg/history"
)

// Provider is the unified text-completion interface.
// All implementations must satisfy this interface.
type Provider interface {
	// Name identifies the provider in config, logs and status displays.
	Name() string

	// Configured reports whether the provider has the credentials it needs.
	// Unconfigured providers are skipped by the chain without counting as
	// a failed attempt.
	Configured() bool

	// Timeout is the per-call budget the chain applies to this provider.
	Timeout() time.Duration

	// Complete generates a response for the prompt and prior conversation.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Health checks provider connectivity and credential validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the provider.
	Close() error
}

// Request for a text completion.
type Request struct {
	// Prompt is the user's current input.
	Prompt string

	// History is the prior conversation, oldest first.
	History []history.Turn

	// MaxTokens limits the response length. Zero uses the provider default.
	MaxTokens int

	// Temperature controls randomness. Zero uses the provider default.
	Temperature float64
}

// Response from a completion.
type Response struct {
	// Text is the generated completion, whitespace-trimmed.
	Text string

	// Provider names the backend that produced the text.
	Provider string

	// LatencyMs is the response time in milliseconds.
	LatencyMs int64
}

// ProviderStatus describes one provider for diagnostic displays.
type ProviderStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}
