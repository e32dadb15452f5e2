package stt

import (
	"context"
	"sync"
)

// Mock is a configurable Recognizer test double with call recording.
type Mock struct {
	mu sync.Mutex

	// NameOverride replaces the default name "mock".
	NameOverride string

	// RecognizeFunc overrides the default canned transcript.
	RecognizeFunc func(ctx context.Context, audio []byte) (string, error)

	// Transcript is returned when RecognizeFunc is nil.
	Transcript string

	calls int
}

var _ Recognizer = (*Mock)(nil)

// NewMock creates a mock returning the given transcript.
func NewMock(transcript string) *Mock {
	return &Mock{Transcript: transcript}
}

// FailingMock creates a mock whose Recognize always returns err.
func FailingMock(err error) *Mock {
	return &Mock{
		RecognizeFunc: func(ctx context.Context, audio []byte) (string, error) {
			return "", err
		},
	}
}

// Name identifies the recognizer in logs and status output.
func (m *Mock) Name() string {
	if m.NameOverride != "" {
		return m.NameOverride
	}
	return "mock"
}

// Recognize records the call and returns the canned transcript.
func (m *Mock) Recognize(ctx context.Context, audio []byte) (string, error) {
	m.mu.Lock()
	m.calls++
	fn := m.RecognizeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, audio)
	}
	return m.Transcript, nil
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}

// CallCount returns how many Recognize calls were made.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
