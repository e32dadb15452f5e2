package inference

import (
	"log/slog"
	"time"
)

// Config holds provider configuration.
type Config struct {
	// Identity
	Name string

	// Connection
	BaseURL string // API base URL
	APIKey  string // API key (optional for local providers)

	// Generation
	Model        string
	MaxTokens    int
	Temperature  float64
	SystemPrompt string

	// Per-call budget applied by the chain
	Timeout time.Duration

	// Retry configuration
	MaxRetries int
	RetryDelay time.Duration

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring providers.
type Option func(*Config)

// WithName sets the provider name used in logs and status displays.
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithBaseURL sets the API base URL.
// Examples: "https://api.groq.com/openai/v1", "http://localhost:11434"
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the completion model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithMaxTokens sets the default max tokens.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithTemperature sets the default temperature.
func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

// WithSystemPrompt sets the persona instruction sent as the system message.
func WithSystemPrompt(prompt string) Option {
	return func(c *Config) { c.SystemPrompt = prompt }
}

// WithTimeout sets the per-call budget.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithRetry configures retry behavior.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for a remote chat API.
func DefaultConfig() *Config {
	return &Config{
		Name:         "remote",
		Model:        "llama-3.1-8b-instant",
		MaxTokens:    150,
		Temperature:  0.7,
		SystemPrompt: "You are aria, a helpful AI assistant. Be concise and friendly.",
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryDelay:   100 * time.Millisecond,
		Logger:       slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
