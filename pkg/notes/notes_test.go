package notes

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "notes.json"))

	first, err := s.Add("x")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := s.Add("x")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("Expected IDs 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if first.Text != "x" || second.Text != "x" {
		t.Error("Both notes should carry the same text")
	}
	if _, err := time.Parse(time.RFC3339, first.Timestamp); err != nil {
		t.Errorf("Timestamp not RFC 3339: %q", first.Timestamp)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")

	s := NewStore(path)
	s.Add("buy milk")
	s.Add("call the dentist")
	s.Add("water the plants")

	reloaded := NewStore(path)
	want := s.All()
	got := reloaded.All()

	if len(got) != len(want) {
		t.Fatalf("Reloaded %d notes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Note %d differs after reload: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestRecentOrder(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "notes.json"))
	s.Add("one")
	s.Add("two")
	s.Add("three")
	s.Add("four")

	recent := s.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 notes, got %d", len(recent))
	}
	// Most recent last.
	if recent[0].Text != "two" || recent[2].Text != "four" {
		t.Errorf("Unexpected order: %v", recent)
	}

	if got := s.Recent(100); len(got) != 4 {
		t.Errorf("Recent larger than store should return all, got %d", len(got))
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if s.Count() != 0 {
		t.Errorf("Missing file should give an empty store, got %d notes", s.Count())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	if s.Count() != 0 {
		t.Errorf("Corrupt file should give an empty store, got %d notes", s.Count())
	}

	// The store must still accept new notes afterwards.
	note, err := s.Add("fresh start")
	if err != nil {
		t.Fatalf("Add after corrupt load failed: %v", err)
	}
	if note.ID != 1 {
		t.Errorf("Expected ID 1 after corrupt load, got %d", note.ID)
	}
}

func TestAddUnwritablePathKeepsNoteInMemory(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing-dir-parent", "sub", "notes.json"))
	// Make the parent an unwritable file so MkdirAll fails.
	s = NewStore(string([]byte{0}))

	note, err := s.Add("survives")
	if err == nil {
		t.Skip("platform allowed the write; persistence failure not reproducible here")
	}
	if note.Text != "survives" || s.Count() != 1 {
		t.Error("Note must remain in memory when persistence fails")
	}
}

func TestReminders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")

	r := NewReminders(path)
	if _, err := r.Add("dentist appointment", "tomorrow at 3pm"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reloaded := NewReminders(path)
	all := reloaded.All()
	if len(all) != 1 {
		t.Fatalf("Expected 1 reminder after reload, got %d", len(all))
	}
	if all[0].Text != "dentist appointment" || all[0].When != "tomorrow at 3pm" {
		t.Errorf("Unexpected reminder: %+v", all[0])
	}
	if all[0].Created == "" {
		t.Error("Created timestamp missing")
	}
}
