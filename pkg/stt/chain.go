package stt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Chain tries recognizers in order until one produces a transcript.
// The intended arrangement is a remote recognizer first with a local
// offline recognizer as the fallback.
//
// ErrNoSpeech short-circuits the chain: if a recognizer heard the audio
// clearly and found no speech, a fallback will not hear it better.
type Chain struct {
	recognizers []Recognizer
	logger      *slog.Logger
}

var _ Recognizer = (*Chain)(nil)

// NewChain creates a fallback chain over the given recognizers.
func NewChain(recognizers ...Recognizer) *Chain {
	return &Chain{
		recognizers: recognizers,
		logger:      slog.Default().With("component", "stt.chain"),
	}
}

// Name identifies the chain in logs and status output.
func (c *Chain) Name() string {
	return "chain"
}

// Recognize tries each recognizer in order.
func (c *Chain) Recognize(ctx context.Context, audio []byte) (string, error) {
	if len(c.recognizers) == 0 {
		return "", ErrAllRecognizersFailed
	}

	var lastErr error
	for _, r := range c.recognizers {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		text, err := r.Recognize(ctx, audio)
		if err == nil {
			return text, nil
		}
		if errors.Is(err, ErrNoSpeech) {
			return "", err
		}

		c.logger.Warn("recognizer failed, trying next",
			"recognizer", r.Name(),
			"error", err,
		)
		lastErr = err
	}

	return "", fmt.Errorf("%w: %v", ErrAllRecognizersFailed, lastErr)
}

// Close closes every recognizer, returning the last error seen.
func (c *Chain) Close() error {
	var lastErr error
	for _, r := range c.recognizers {
		if err := r.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
