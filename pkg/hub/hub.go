// Package hub fans conversation events out to websocket clients using
// the channel-based broadcast pattern: one goroutine owns the client
// set, and registration, unregistration, and broadcast all flow
// through channels.
package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Event is one conversation happening pushed to transcript viewers.
type Event struct {
	// Kind is "spoken" for assistant output or "heard" for user input.
	Kind string `json:"kind"`

	// Text is the utterance.
	Text string `json:"text"`

	// Timestamp is the event time in RFC 3339 format.
	Timestamp string `json:"timestamp"`
}

// NewSpoken creates an assistant-output event stamped now.
func NewSpoken(text string) Event {
	return Event{Kind: "spoken", Text: text, Timestamp: time.Now().Format(time.RFC3339)}
}

// NewHeard creates a user-input event stamped now.
func NewHeard(text string) Event {
	return Event{Kind: "heard", Text: text, Timestamp: time.Now().Format(time.RFC3339)}
}

// Hub maintains the set of active transcript clients and broadcasts
// events to them. Start Run in a goroutine before registering clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *slog.Logger

	mu      sync.RWMutex
	running bool
}

// New creates a transcript hub.
func New() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     slog.Default().With("component", "hub"),
	}
}

// Run owns the client set. Call in a goroutine.
func (h *Hub) Run() {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("transcript client connected", "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("transcript client disconnected", "remaining", count)

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// The client's buffer is full; drop it rather
					// than stall every other viewer.
					close(client.send)
					delete(h.clients, client)
					h.logger.Warn("dropped slow transcript client")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish broadcasts an event to every connected client.
// Events are dropped, not queued unboundedly, under backpressure.
func (h *Hub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Warn("could not encode transcript event", "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("transcript broadcast buffer full, dropping event")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsRunning reports whether Run has started.
func (h *Hub) IsRunning() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.running
}
