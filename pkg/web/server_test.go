package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aria-ai/aria/pkg/history"
	"github.com/aria-ai/aria/pkg/inference"
	"github.com/aria-ai/aria/pkg/notes"
)

func newTestServer(t *testing.T) (*Server, *history.History, *notes.Store) {
	t.Helper()

	hist := history.New(10)
	store := notes.NewStore(filepath.Join(t.TempDir(), "notes.json"))
	chain := inference.NewChain(hist, "huggingface", inference.NewMock())

	return NewServer("0", chain, hist, store), hist, store
}

func TestStatusEndpoint(t *testing.T) {
	s, hist, store := newTestServer(t)

	hist.Append(history.RoleUser, "hello")
	store.Add("a note")

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d, want 200", resp.StatusCode)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if status.SessionID == "" {
		t.Error("Session ID missing")
	}
	if status.HistoryTurns != 1 {
		t.Errorf("HistoryTurns = %d, want 1", status.HistoryTurns)
	}
	if status.NotesCount != 1 {
		t.Errorf("NotesCount = %d, want 1", status.NotesCount)
	}
	if len(status.Providers) == 0 {
		t.Error("Provider status missing")
	}
}

func TestConversationEndpoint(t *testing.T) {
	s, hist, _ := newTestServer(t)

	hist.Append(history.RoleUser, "what time is it")
	hist.Append(history.RoleAssistant, "It's noon")

	req := httptest.NewRequest(http.MethodGet, "/api/conversation", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var entries []conversationEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("Bad JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(entries))
	}
	if entries[0].Role != "user" || entries[1].Role != "assistant" {
		t.Errorf("Unexpected roles: %+v", entries)
	}
}

func TestTranscriptUpgradeRequired(t *testing.T) {
	s, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ws/transcript", nil)
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Errorf("Plain GET on websocket route = %d, want 426", resp.StatusCode)
	}
}
