package history

import (
	"fmt"
	"testing"
)

func TestAppendAndOrder(t *testing.T) {
	h := New(10)
	h.Append(RoleUser, "hello")
	h.Append(RoleAssistant, "hi there")

	turns := h.Turns()
	if len(turns) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Content != "hello" {
		t.Errorf("Unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != RoleAssistant {
		t.Errorf("Unexpected second turn: %+v", turns[1])
	}
}

func TestBoundNeverExceeded(t *testing.T) {
	const maxTurns = 5
	h := New(maxTurns)

	for i := 0; i < 100; i++ {
		h.Append(RoleUser, fmt.Sprintf("user %d", i))
		h.Append(RoleAssistant, fmt.Sprintf("assistant %d", i))
		if h.Len() > maxTurns*2 {
			t.Fatalf("Bound exceeded after %d appends: len=%d", i+1, h.Len())
		}
	}

	if h.Len() != maxTurns*2 {
		t.Errorf("Expected %d turns after overflow, got %d", maxTurns*2, h.Len())
	}

	// Oldest entries must have been evicted first.
	turns := h.Turns()
	if turns[0].Content != "user 95" {
		t.Errorf("Expected oldest surviving turn to be 'user 95', got %q", turns[0].Content)
	}
	if turns[len(turns)-1].Content != "assistant 99" {
		t.Errorf("Expected newest turn to be 'assistant 99', got %q", turns[len(turns)-1].Content)
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	h := New(10)
	h.Append(RoleUser, "original")

	turns := h.Turns()
	turns[0].Content = "mutated"

	if h.Turns()[0].Content != "original" {
		t.Error("Turns must return a copy, not the backing slice")
	}
}

func TestClearKeepsSession(t *testing.T) {
	h := New(10)
	id := h.SessionID()
	if id == "" {
		t.Fatal("Expected a session ID")
	}

	h.Append(RoleUser, "hello")
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Expected empty history after Clear, got %d", h.Len())
	}
	if h.SessionID() != id {
		t.Error("Clear must not rotate the session ID")
	}
}
