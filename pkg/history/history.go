// Package history keeps a bounded, ordered log of conversation turns.
//
// The log is consumed by inference providers as chat context. It holds at
// most twice the configured number of turns (one user + one assistant entry
// per exchange); the oldest turns are discarded first when the bound is hit.
package history

import (
	"sync"

	"github.com/google/uuid"
)

// Role identifies who produced a turn.
type Role string

const (
	// RoleUser marks input from the user.
	RoleUser Role = "user"

	// RoleAssistant marks responses from the assistant.
	RoleAssistant Role = "assistant"
)

// Turn is a single conversation entry.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History is a bounded FIFO of conversation turns.
// It is safe for concurrent readers (e.g. the status dashboard) alongside
// the single dispatching writer.
type History struct {
	mu        sync.RWMutex
	turns     []Turn
	maxTurns  int
	sessionID string
}

// New creates a history bounded to 2×maxTurns entries.
// A maxTurns of zero or less falls back to 10.
func New(maxTurns int) *History {
	if maxTurns <= 0 {
		maxTurns = 10
	}
	return &History{
		maxTurns:  maxTurns,
		sessionID: uuid.New().String(),
	}
}

// Append adds a turn, evicting the oldest entries beyond the bound.
func (h *History) Append(role Role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, Turn{Role: role, Content: content})
	if limit := h.maxTurns * 2; len(h.turns) > limit {
		h.turns = h.turns[len(h.turns)-limit:]
	}
}

// Turns returns a copy of the current turns in insertion order.
func (h *History) Turns() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of stored turns.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}

// Clear drops all turns but keeps the session ID.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}

// SessionID returns the identifier assigned to this conversation session.
// It is attached to logs so multi-session deployments can be correlated.
func (h *History) SessionID() string {
	return h.sessionID
}
