// Package notes provides append-only, file-persisted note storage.
//
// Notes are kept in memory and mirrored to a JSON array on disk. The full
// sequence is rewritten on every addition; there is no partial file format.
// A missing or unreadable file at load time yields an empty store, never an
// error, and a failed write keeps the note in memory for the session.
package notes

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Note is a single timestamped note. Notes are never mutated after
// creation, only appended and read.
type Note struct {
	// ID is strictly increasing within the store and never reused.
	ID int `json:"id"`

	// Text is the note body.
	Text string `json:"text"`

	// Timestamp is the creation time in RFC 3339 format.
	Timestamp string `json:"timestamp"`
}

// Store is a file-backed note store.
// Safe for concurrent readers alongside the single dispatching writer.
type Store struct {
	mu     sync.RWMutex
	path   string
	notes  []Note
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a store backed by the JSON file at path.
// Existing notes are loaded; a missing or corrupt file starts empty.
func NewStore(path string) *Store {
	s := &Store{
		path:   path,
		logger: slog.Default().With("component", "notes"),
		now:    time.Now,
	}
	s.load()
	return s
}

// load reads the persisted notes, tolerating absence and corruption.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("could not read notes file, starting empty",
				"path", s.path,
				"error", err,
			)
		}
		return
	}

	var loaded []Note
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("notes file is not valid JSON, starting empty",
			"path", s.path,
			"error", err,
		)
		return
	}
	s.notes = loaded
}

// save rewrites the full sequence to disk via a temp file and rename.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(s.notes, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Add appends a new note and persists the store.
// The note is always kept in memory; the returned error reports a
// persistence failure only, and callers may treat it as non-fatal.
func (s *Store) Add(text string) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note := Note{
		ID:        len(s.notes) + 1,
		Text:      text,
		Timestamp: s.now().Format(time.RFC3339),
	}
	s.notes = append(s.notes, note)

	if err := s.save(); err != nil {
		s.logger.Warn("could not persist notes, keeping in memory",
			"path", s.path,
			"error", err,
		)
		return note, err
	}
	return note, nil
}

// Recent returns up to n notes, most recent last.
func (s *Store) Recent(n int) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.notes) {
		n = len(s.notes)
	}
	out := make([]Note, n)
	copy(out, s.notes[len(s.notes)-n:])
	return out
}

// All returns every note in insertion order.
func (s *Store) All() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Count returns the number of stored notes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
