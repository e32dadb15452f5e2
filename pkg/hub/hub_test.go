package hub

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPublishWithoutClientsDoesNotBlock(t *testing.T) {
	h := New()
	go h.Run()

	// Wait for the run loop to start.
	deadline := time.Now().Add(time.Second)
	for !h.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	for i := 0; i < 10; i++ {
		h.Publish(NewSpoken("hello"))
	}

	if h.ClientCount() != 0 {
		t.Errorf("Expected no clients, got %d", h.ClientCount())
	}
}

func TestEventEncoding(t *testing.T) {
	event := NewSpoken("good morning")
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Kind != "spoken" || decoded.Text != "good morning" {
		t.Errorf("Unexpected event: %+v", decoded)
	}
	if _, err := time.Parse(time.RFC3339, decoded.Timestamp); err != nil {
		t.Errorf("Timestamp not RFC 3339: %q", decoded.Timestamp)
	}
}

func TestHeardEvent(t *testing.T) {
	event := NewHeard("what time is it")
	if event.Kind != "heard" {
		t.Errorf("Kind = %q, want heard", event.Kind)
	}
}
