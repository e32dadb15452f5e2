package inference

import (
	"context"
	"sync"
	"time"
)

// Mock implements Provider for testing.
type Mock struct {
	// NameOverride replaces the default "mock" name.
	NameOverride string

	// ConfiguredOverride, when set, replaces the default of true.
	ConfiguredOverride *bool

	// CompleteFunc is called when Complete is invoked.
	CompleteFunc func(ctx context.Context, req *Request) (*Response, error)

	// HealthFunc is called when Health is invoked.
	HealthFunc func(ctx context.Context) error

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	// TimeoutOverride replaces the default 1s budget.
	TimeoutOverride time.Duration

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method string
	Prompt string
	Time   time.Time
}

// NewMock creates a mock provider that answers every prompt.
func NewMock() *Mock {
	return &Mock{
		CompleteFunc: func(ctx context.Context, req *Request) (*Response, error) {
			return &Response{Text: "Mock response", Provider: "mock"}, nil
		},
	}
}

// FailingMock creates a mock provider that always returns the given error.
func FailingMock(err error) *Mock {
	return &Mock{
		CompleteFunc: func(ctx context.Context, req *Request) (*Response, error) {
			return nil, err
		},
		HealthFunc: func(ctx context.Context) error {
			return err
		},
	}
}

// Name identifies this provider.
func (m *Mock) Name() string {
	if m.NameOverride != "" {
		return m.NameOverride
	}
	return "mock"
}

// Configured returns the override or true.
func (m *Mock) Configured() bool {
	if m.ConfiguredOverride != nil {
		return *m.ConfiguredOverride
	}
	return true
}

// Timeout returns the override or one second.
func (m *Mock) Timeout() time.Duration {
	if m.TimeoutOverride > 0 {
		return m.TimeoutOverride
	}
	return time.Second
}

// Complete calls CompleteFunc and records the call.
func (m *Mock) Complete(ctx context.Context, req *Request) (*Response, error) {
	m.record("Complete", req.Prompt)
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return nil, WrapError(m.Name(), ErrProviderUnavailable)
}

// Health calls HealthFunc and records the call.
func (m *Mock) Health(ctx context.Context) error {
	m.record("Health", "")
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.record("Close", "")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// record adds a call to the tracking list.
func (m *Mock) record(method, prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{
		Method: method,
		Prompt: prompt,
		Time:   time.Now(),
	})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify Mock implements Provider at compile time.
var _ Provider = (*Mock)(nil)
