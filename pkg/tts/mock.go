package tts

import (
	"context"
	"sync"
)

// Mock is a configurable Synthesizer test double with call recording.
type Mock struct {
	mu sync.Mutex

	// SynthesizeFunc overrides the default canned behavior.
	SynthesizeFunc func(ctx context.Context, text string, opts ...SpeakOption) (*AudioResult, error)

	// HealthFunc overrides the default healthy response.
	HealthFunc func(ctx context.Context) error

	// Calls records every synthesized text in order.
	Calls []string

	closed bool
}

var _ Synthesizer = (*Mock)(nil)

// NewMock creates a mock that returns a small fixed audio buffer.
func NewMock() *Mock {
	return &Mock{}
}

// FailingMock creates a mock whose Synthesize always returns err.
func FailingMock(err error) *Mock {
	return &Mock{
		SynthesizeFunc: func(ctx context.Context, text string, opts ...SpeakOption) (*AudioResult, error) {
			return nil, err
		},
	}
}

// Synthesize records the call and returns canned audio.
func (m *Mock) Synthesize(ctx context.Context, text string, opts ...SpeakOption) (*AudioResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	fn := m.SynthesizeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, text, opts...)
	}
	return &AudioResult{
		Audio:     []byte{0x01, 0x02, 0x03},
		Format:    DefaultFormat,
		CharCount: len(text),
	}, nil
}

// Health reports healthy unless overridden.
func (m *Mock) Health(ctx context.Context) error {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// CallCount returns how many Synthesize calls were made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
