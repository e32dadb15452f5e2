package stt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

var sampleAudio = []byte("riff-wav-bytes")

func TestChainFallsBackToLocal(t *testing.T) {
	remote := FailingMock(errors.New("connection refused"))
	remote.NameOverride = "remote"
	local := NewMock("turn on the lights")

	chain := NewChain(remote, local)
	defer chain.Close()

	text, err := chain.Recognize(context.Background(), sampleAudio)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "turn on the lights" {
		t.Errorf("Unexpected transcript: %q", text)
	}
	if remote.CallCount() != 1 || local.CallCount() != 1 {
		t.Errorf("Expected both recognizers tried once, got %d/%d",
			remote.CallCount(), local.CallCount())
	}
}

func TestChainStopsOnFirstSuccess(t *testing.T) {
	remote := NewMock("hello world")
	local := NewMock("should not run")

	chain := NewChain(remote, local)
	defer chain.Close()

	text, err := chain.Recognize(context.Background(), sampleAudio)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("Unexpected transcript: %q", text)
	}
	if local.CallCount() != 0 {
		t.Error("Fallback must not run when the first recognizer succeeds")
	}
}

func TestChainNoSpeechShortCircuits(t *testing.T) {
	remote := FailingMock(WrapError("remote", ErrNoSpeech))
	local := NewMock("phantom transcript")

	chain := NewChain(remote, local)
	defer chain.Close()

	_, err := chain.Recognize(context.Background(), sampleAudio)
	if !errors.Is(err, ErrNoSpeech) {
		t.Fatalf("Expected ErrNoSpeech, got %v", err)
	}
	if local.CallCount() != 0 {
		t.Error("No-speech result must not trigger the fallback")
	}
}

func TestChainAllFail(t *testing.T) {
	chain := NewChain(
		FailingMock(errors.New("down")),
		FailingMock(errors.New("also down")),
	)
	defer chain.Close()

	_, err := chain.Recognize(context.Background(), sampleAudio)
	if !errors.Is(err, ErrAllRecognizersFailed) {
		t.Errorf("Expected ErrAllRecognizersFailed, got %v", err)
	}
}

func TestClientRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Missing bearer token, got %q", auth)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Expected multipart form: %v", err)
		}
		if r.FormValue("model") != DefaultModel {
			t.Errorf("Unexpected model: %q", r.FormValue("model"))
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("Missing audio file part: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "  what time is it  "})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	defer c.Close()

	text, err := c.Recognize(context.Background(), sampleAudio)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "what time is it" {
		t.Errorf("Expected trimmed transcript, got %q", text)
	}
}

func TestClientEmptyTranscriptIsNoSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": ""})
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("test-key"))
	defer c.Close()

	if _, err := c.Recognize(context.Background(), sampleAudio); !errors.Is(err, ErrNoSpeech) {
		t.Errorf("Expected ErrNoSpeech for empty transcript, got %v", err)
	}
}

func TestClientNoKey(t *testing.T) {
	c := NewClient()
	defer c.Close()

	if _, err := c.Recognize(context.Background(), sampleAudio); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got %v", err)
	}
}

func TestLocalRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/inference" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "offline transcript"})
	}))
	defer srv.Close()

	l := NewLocal(srv.URL)
	defer l.Close()

	text, err := l.Recognize(context.Background(), sampleAudio)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if text != "offline transcript" {
		t.Errorf("Unexpected transcript: %q", text)
	}
}
