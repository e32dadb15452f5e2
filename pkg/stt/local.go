package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultLocalURL is the conventional whisper-server address.
const DefaultLocalURL = "http://localhost:8178"

// Local transcribes audio through a whisper-server instance running on
// this machine. It needs no API key and works offline.
type Local struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ Recognizer = (*Local)(nil)

// NewLocal creates a local recognizer. An empty baseURL uses the
// conventional whisper-server port.
func NewLocal(baseURL string) *Local {
	if baseURL == "" {
		baseURL = DefaultLocalURL
	}
	return &Local{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default().With("component", "stt.local"),
	}
}

// Name identifies the recognizer in logs and status output.
func (l *Local) Name() string {
	return "local"
}

// Recognize posts the audio to the local server's /inference endpoint.
func (l *Local) Recognize(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", WrapError(l.Name(), ErrNoSpeech)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", l.baseURL+"/inference", bytes.NewReader(audio))
	if err != nil {
		return "", WrapError(l.Name(), fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", WrapError(l.Name(), fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", WrapError(l.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", WrapError(l.Name(), fmt.Errorf("decode response: %w", err))
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", WrapError(l.Name(), ErrNoSpeech)
	}
	return text, nil
}

// Close releases client resources.
func (l *Local) Close() error {
	l.client.CloseIdleConnections()
	return nil
}
