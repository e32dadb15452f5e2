// Package web serves the diagnostic status dashboard: provider health,
// conversation state, and a live transcript stream over websocket.
// The server is optional; the assistant runs fully without it.
package web

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/aria-ai/aria/pkg/history"
	"github.com/aria-ai/aria/pkg/hub"
	"github.com/aria-ai/aria/pkg/inference"
	"github.com/aria-ai/aria/pkg/notes"
)

// Server exposes assistant diagnostics over HTTP.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	chain *inference.Chain
	hist  *history.History
	notes *notes.Store

	transcript *hub.Hub
	started    time.Time
}

// NewServer creates a dashboard server over the live components.
func NewServer(port string, chain *inference.Chain, hist *history.History, store *notes.Store) *Server {
	s := &Server{
		port:       port,
		logger:     slog.Default().With("component", "web"),
		chain:      chain,
		hist:       hist,
		notes:      store,
		transcript: hub.New(),
		started:    time.Now(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "aria dashboard",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/conversation", s.handleConversation)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/transcript", websocket.New(s.handleTranscriptWS))

	s.app = app
	return s
}

// Start runs the transcript hub and blocks serving HTTP.
func (s *Server) Start() error {
	go s.transcript.Run()
	s.logger.Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Spoken publishes an assistant utterance to transcript viewers.
// It satisfies the voice sink contract via voice.FuncSink(s.Spoken).
func (s *Server) Spoken(text string) {
	s.transcript.Publish(hub.NewSpoken(text))
}

// Heard publishes a recognized user utterance to transcript viewers.
func (s *Server) Heard(text string) {
	s.transcript.Publish(hub.NewHeard(text))
}
