package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.WakeWord != "aria" {
		t.Errorf("Expected default wake word, got %q", cfg.WakeWord)
	}
	if cfg.MaxConversationHistory != 10 {
		t.Errorf("Expected default history size 10, got %d", cfg.MaxConversationHistory)
	}

	// The merged defaults must have been persisted.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("Persisted config is not valid JSON: %v", err)
	}
	if onDisk["wake_word"] != "aria" {
		t.Errorf("Persisted wake_word = %v", onDisk["wake_word"])
	}
}

func TestLoadMergesMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	partial := `{"ai_service": "groq", "groq_api_key": "gk-test"}`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.AIService != "groq" {
		t.Errorf("File value lost: ai_service = %q", cfg.AIService)
	}
	if cfg.GroqAPIKey != "gk-test" {
		t.Errorf("File value lost: groq_api_key = %q", cfg.GroqAPIKey)
	}
	if cfg.VoiceRate != 200 {
		t.Errorf("Missing key not defaulted: voice_rate = %d", cfg.VoiceRate)
	}
	if cfg.NotesFile != "notes.json" {
		t.Errorf("Missing key not defaulted: notes_file = %q", cfg.NotesFile)
	}
}

func TestLoadCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err == nil {
		t.Error("Expected parse error to be reported")
	}
	if cfg == nil || cfg.WakeWord != "aria" {
		t.Error("Expected defaults on corrupt file")
	}
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gk-env")
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"groq_api_key": "gk-file"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GroqAPIKey != "gk-env" {
		t.Errorf("Environment should win over file: got %q", cfg.GroqAPIKey)
	}
}
