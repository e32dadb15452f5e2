package voice

import (
	"context"
	"sync"
	"time"
)

// MockPlayer records played audio buffers.
type MockPlayer struct {
	mu     sync.Mutex
	played [][]byte

	// PlayFunc overrides the default record-and-succeed behavior.
	PlayFunc func(ctx context.Context, audio []byte, format string) error
}

var _ Player = (*MockPlayer)(nil)

// Play implements Player.
func (m *MockPlayer) Play(ctx context.Context, audio []byte, format string) error {
	if m.PlayFunc != nil {
		return m.PlayFunc(ctx, audio, format)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.played = append(m.played, audio)
	return nil
}

// Close implements Player.
func (m *MockPlayer) Close() error {
	return nil
}

// PlayCount returns how many buffers were played.
func (m *MockPlayer) PlayCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.played)
}

// MockCapture returns queued audio buffers in order and supports
// calibration tracking.
type MockCapture struct {
	mu      sync.Mutex
	buffers [][]byte

	// RecordFunc overrides the default queue behavior.
	RecordFunc func(ctx context.Context, phraseLimit time.Duration) ([]byte, error)

	calibrations int
}

var (
	_ Capture    = (*MockCapture)(nil)
	_ Calibrator = (*MockCapture)(nil)
)

// NewMockCapture creates a capture that returns the given buffers in
// order, then empty audio.
func NewMockCapture(buffers ...[]byte) *MockCapture {
	return &MockCapture{buffers: buffers}
}

// Record implements Capture.
func (m *MockCapture) Record(ctx context.Context, phraseLimit time.Duration) ([]byte, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, phraseLimit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.buffers) == 0 {
		return nil, nil
	}
	buf := m.buffers[0]
	m.buffers = m.buffers[1:]
	return buf, nil
}

// Calibrate implements Calibrator.
func (m *MockCapture) Calibrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calibrations++
	return nil
}

// Calibrations returns how many times Calibrate ran.
func (m *MockCapture) Calibrations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calibrations
}

// Close implements Capture.
func (m *MockCapture) Close() error {
	return nil
}
