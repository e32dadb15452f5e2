package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/aria-ai/aria/pkg/hub"
	"github.com/aria-ai/aria/pkg/inference"
)

// statusResponse is the /api/status payload.
type statusResponse struct {
	SessionID     string                     `json:"session_id"`
	UptimeSeconds int64                      `json:"uptime_seconds"`
	Providers     []inference.ProviderStatus `json:"providers"`
	Primary       string                     `json:"primary"`
	HistoryTurns  int                        `json:"history_turns"`
	NotesCount    int                        `json:"notes_count"`
	Viewers       int                        `json:"viewers"`
}

// handleStatus reports provider and store state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	resp := statusResponse{
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Viewers:       s.transcript.ClientCount(),
	}
	if s.chain != nil {
		resp.Providers = s.chain.Status()
		resp.Primary = s.chain.Primary()
	}
	if s.hist != nil {
		resp.SessionID = s.hist.SessionID()
		resp.HistoryTurns = s.hist.Len()
	}
	if s.notes != nil {
		resp.NotesCount = s.notes.Count()
	}
	return c.JSON(resp)
}

// conversationEntry is one turn in the /api/conversation payload.
type conversationEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// handleConversation returns the recent conversation turns.
func (s *Server) handleConversation(c *fiber.Ctx) error {
	entries := []conversationEntry{}
	if s.hist != nil {
		for _, turn := range s.hist.Turns() {
			entries = append(entries, conversationEntry{
				Role:    string(turn.Role),
				Content: turn.Content,
			})
		}
	}
	return c.JSON(entries)
}

// handleTranscriptWS streams transcript events to one viewer.
func (s *Server) handleTranscriptWS(conn *websocket.Conn) {
	client := hub.NewClient(s.transcript, conn)
	client.Run()
}
