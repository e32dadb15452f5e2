package inference

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aria-ai/aria/pkg/history"
)

// Chain orchestrates providers in configured-preference order with automatic
// fallback. The preferred provider is tried first, then the remaining
// providers in their fixed secondary order, and finally the rule-based
// responder, which never fails. Respond therefore always returns a response.
//
// Each attempt runs under the provider's own timeout, so the caller never
// blocks longer than the sum of the attempted providers' budgets.
type Chain struct {
	mu        sync.RWMutex
	providers []Provider // secondary order, terminal responder excluded
	terminal  Provider
	primary   string

	hist   *history.History
	logger *slog.Logger
}

// NewChain creates a provider chain.
// primary names the provider to try first; providers are the configured
// backends in their fixed secondary order. The rule-based responder is
// always appended as the terminal link.
func NewChain(hist *history.History, primary string, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		terminal:  NewResponder(),
		primary:   primary,
		hist:      hist,
		logger:    slog.Default().With("component", "inference.chain"),
	}
}

// NewChainWithLogger creates a provider chain with a custom logger.
func NewChainWithLogger(logger *slog.Logger, hist *history.History, primary string, providers ...Provider) *Chain {
	chain := NewChain(hist, primary, providers...)
	chain.logger = logger.With("component", "inference.chain")
	return chain
}

// SetPrimary switches the preferred provider at runtime.
// Unknown names are accepted; they simply match nothing and the fixed
// secondary order applies.
func (c *Chain) SetPrimary(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.primary = name
	c.logger.Info("primary provider switched", "provider", name)
}

// Primary returns the current preferred provider name.
func (c *Chain) Primary() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.primary
}

// ordered returns the attempt order: primary first, then the remaining
// providers in their fixed secondary order.
func (c *Chain) ordered() []Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Provider, 0, len(c.providers))
	for _, p := range c.providers {
		if p.Name() == c.primary {
			out = append(out, p)
		}
	}
	for _, p := range c.providers {
		if p.Name() != c.primary {
			out = append(out, p)
		}
	}
	return out
}

// Respond produces a response for the prompt. It never fails: if every
// configured provider errors out, times out, or returns an empty completion,
// the rule-based responder supplies the answer. Both the prompt and the
// response are appended to the conversation history.
func (c *Chain) Respond(ctx context.Context, prompt string) string {
	req := &Request{
		Prompt:  prompt,
		History: c.hist.Turns(),
	}

	resp := c.attempt(ctx, req)

	c.hist.Append(history.RoleUser, prompt)
	c.hist.Append(history.RoleAssistant, resp.Text)

	return resp.Text
}

// attempt walks the fallback order and returns the first success, falling
// back to the terminal responder.
func (c *Chain) attempt(ctx context.Context, req *Request) *Response {
	for i, p := range c.ordered() {
		if !p.Configured() {
			c.logger.Debug("provider unconfigured, skipping", "provider", p.Name())
			continue
		}
		if ctx.Err() != nil {
			break
		}

		attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout())
		resp, err := p.Complete(attemptCtx, req)
		cancel()

		if err == nil && resp != nil && resp.Text != "" {
			if i > 0 {
				c.logger.Info("fallback provider succeeded",
					"provider", p.Name(),
					"provider_index", i,
				)
			}
			return resp
		}

		c.logger.Warn("provider failed, trying next",
			"provider", p.Name(),
			"error", err,
		)
	}

	// Terminal rule-based responder; by construction it cannot fail.
	resp, err := c.terminal.Complete(ctx, req)
	if err != nil || resp == nil || resp.Text == "" {
		return &Response{
			Text:     "I'm having trouble with my AI services right now, but I'm still here to help with other tasks!",
			Provider: c.terminal.Name(),
		}
	}
	return resp
}

// Status reports each provider for the diagnostic display, terminal
// responder included.
func (c *Chain) Status() []ProviderStatus {
	ordered := c.ordered()
	out := make([]ProviderStatus, 0, len(ordered)+1)
	for _, p := range ordered {
		out = append(out, ProviderStatus{Name: p.Name(), Configured: p.Configured()})
	}
	out = append(out, ProviderStatus{Name: c.terminal.Name(), Configured: true})
	return out
}

// Health checks all providers and returns error if all are unhealthy.
// The terminal responder is excluded; it is always healthy.
func (c *Chain) Health(ctx context.Context) error {
	var healthy int
	var lastErr error

	for _, p := range c.ordered() {
		if err := p.Health(ctx); err != nil {
			lastErr = err
		} else {
			healthy++
		}
	}

	if healthy == 0 && lastErr != nil {
		return WrapError("chain", lastErr)
	}

	c.logger.Debug("health check complete",
		"healthy", healthy,
		"total", len(c.providers),
	)

	return nil
}

// Close closes all providers.
func (c *Chain) Close() error {
	var lastErr error
	for _, p := range c.providers {
		if err := p.Close(); err != nil {
			lastErr = err
		}
	}
	if err := c.terminal.Close(); err != nil {
		lastErr = err
	}
	return lastErr
}

// Providers returns the current attempt order, terminal responder excluded.
func (c *Chain) Providers() []Provider {
	return c.ordered()
}
