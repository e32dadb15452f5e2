package tts

import (
	"log/slog"
	"time"
)

// Default synthesis parameters.
const (
	DefaultModel   = "tts-1"
	DefaultVoice   = "nova"
	DefaultFormat  = "mp3"
	DefaultTimeout = 15 * time.Second
)

// Config holds synthesizer configuration.
// Use the Option functions to construct one; zero values fall back to
// the defaults above.
type Config struct {
	// BaseURL is the speech endpoint root.
	BaseURL string

	// APIKey authenticates requests.
	APIKey string

	// Model selects the synthesis model.
	Model string

	// Voice selects the voice preset.
	Voice string

	// Format is the requested audio container.
	Format string

	// Timeout bounds a single synthesis request.
	Timeout time.Duration

	// Logger receives synthesis diagnostics.
	Logger *slog.Logger
}

// Option configures a synthesizer.
type Option func(*Config)

// DefaultConfig returns a config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:   DefaultModel,
		Voice:   DefaultVoice,
		Format:  DefaultFormat,
		Timeout: DefaultTimeout,
		Logger:  slog.Default(),
	}
}

// Apply applies options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// WithBaseURL sets the speech endpoint root.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets the synthesis model.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithVoice sets the voice preset.
func WithVoice(voice string) Option {
	return func(c *Config) {
		c.Voice = voice
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
