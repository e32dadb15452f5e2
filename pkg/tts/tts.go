// Package tts provides a text-to-speech capability interface.
//
// Synthesis backends sit behind the Synthesizer interface so the voice
// channel never depends on a particular engine. The package ships an
// HTTP-backed client speaking the OpenAI-compatible speech endpoint and
// a mock for tests.
//
// Example usage:
//
//	synth := tts.NewClient(
//	    tts.WithAPIKey(os.Getenv("TTS_API_KEY")),
//	    tts.WithVoice("nova"),
//	)
//	defer synth.Close()
//
//	result, _ := synth.Synthesize(ctx, "Hello there", tts.WithEmotion(tts.EmotionExcited))
//	// result.Audio holds the encoded audio bytes
package tts

import (
	"context"
	"time"
)

// Emotion selects a delivery style. Styles map to a speed adjustment on
// backends without native emotion support.
type Emotion string

const (
	EmotionNeutral Emotion = "neutral"
	EmotionExcited Emotion = "excited"
	EmotionCalm    Emotion = "calm"
)

// Speed returns the playback speed multiplier for the emotion.
// Excited speech runs 10% faster, calm speech 10% slower.
func (e Emotion) Speed() float64 {
	switch e {
	case EmotionExcited:
		return 1.1
	case EmotionCalm:
		return 0.9
	default:
		return 1.0
	}
}

// Synthesizer converts text into audio.
type Synthesizer interface {
	// Synthesize converts text to audio, returning the complete buffer.
	Synthesize(ctx context.Context, text string, opts ...SpeakOption) (*AudioResult, error)

	// Health checks backend connectivity and credential validity.
	Health(ctx context.Context) error

	// Close releases any resources held by the synthesizer.
	Close() error
}

// AudioResult is a complete synthesis result.
type AudioResult struct {
	// Audio contains the encoded audio data.
	Audio []byte

	// Format names the audio container, e.g. "mp3".
	Format string

	// CharCount is the number of characters synthesized.
	CharCount int

	// LatencyMs is the request round-trip time in milliseconds.
	LatencyMs int64
}

// SpeakOptions carries per-utterance settings.
type SpeakOptions struct {
	Emotion Emotion
	Speed   float64
}

// SpeakOption configures a single Synthesize call.
type SpeakOption func(*SpeakOptions)

// WithEmotion sets the delivery style for one utterance.
func WithEmotion(e Emotion) SpeakOption {
	return func(o *SpeakOptions) {
		o.Emotion = e
	}
}

// WithSpeed overrides the speed multiplier directly, bypassing the
// emotion mapping. Values outside [0.25, 4.0] are clamped by the backend.
func WithSpeed(speed float64) SpeakOption {
	return func(o *SpeakOptions) {
		o.Speed = speed
	}
}

// ApplySpeakOptions resolves per-call options against neutral defaults.
func ApplySpeakOptions(opts ...SpeakOption) SpeakOptions {
	resolved := SpeakOptions{Emotion: EmotionNeutral}
	for _, opt := range opts {
		opt(&resolved)
	}
	if resolved.Speed == 0 {
		resolved.Speed = resolved.Emotion.Speed()
	}
	return resolved
}

// EstimateDuration approximates playback time for a text at the default
// speaking rate of roughly 200 words per minute.
func EstimateDuration(text string) time.Duration {
	words := 1
	for _, r := range text {
		if r == ' ' {
			words++
		}
	}
	return time.Duration(words) * time.Minute / 200
}
