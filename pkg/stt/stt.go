// Package stt provides a speech-to-text capability interface.
//
// Recognition backends sit behind the Recognizer interface. The package
// ships a remote HTTP client, a local whisper-server client for offline
// use, a Chain that falls back from remote to local, and a mock.
package stt

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoSpeech is returned when the audio contains no recognizable speech.
	ErrNoSpeech = errors.New("stt: no speech recognized")

	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("stt: API key required")

	// ErrAllRecognizersFailed is returned when every recognizer in a chain fails.
	ErrAllRecognizersFailed = errors.New("stt: all recognizers failed")
)

// Recognizer converts captured audio into text.
type Recognizer interface {
	// Name identifies the recognizer in logs and status output.
	Name() string

	// Recognize transcribes the audio buffer.
	// Returns ErrNoSpeech when the audio holds no recognizable speech.
	Recognize(ctx context.Context, audio []byte) (string, error)

	// Close releases any resources held by the recognizer.
	Close() error
}

// RecognizerError wraps an underlying error with the recognizer name.
type RecognizerError struct {
	// Recognizer identifies which recognizer failed.
	Recognizer string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RecognizerError) Error() string {
	return fmt.Sprintf("stt [%s]: %v", e.Recognizer, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *RecognizerError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with the recognizer name.
func WrapError(recognizer string, err error) error {
	if err == nil {
		return nil
	}
	return &RecognizerError{Recognizer: recognizer, Err: err}
}
