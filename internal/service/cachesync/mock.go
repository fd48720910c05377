package cachesync

import (
	"context"
	"sync"
)

// MockInvalidator records reasons and returns Err.
type MockInvalidator struct {
	mu      sync.Mutex
	reasons []string

	Err error
}

func (m *MockInvalidator) Invalidate(_ context.Context, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reasons = append(m.reasons, reason)
	return m.Err
}

// Reasons returns the reasons passed to Invalidate so far.
func (m *MockInvalidator) Reasons() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.reasons...)
}

// Calls is len(Reasons()).
func (m *MockInvalidator) Calls() int {
	return len(m.Reasons())
}

var _ Invalidator = (*MockInvalidator)(nil)
