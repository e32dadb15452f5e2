// Package voice connects speech synthesis, audio capture, and speech
// recognition into a single conversational channel.
//
// The Channel owns one background worker that drains a speak queue, so
// callers never block on synthesis or playback. Listening is a blocking
// call with an upper time bound. Every spoken utterance is also fanned
// out to registered sinks (console, web transcript) regardless of
// whether audio synthesis succeeds.
package voice

import (
	"context"
	"time"
)

// Capture records audio from the environment.
// Implementations wrap a microphone or a test fixture.
type Capture interface {
	// Record captures audio until silence, the phrase limit, or ctx expiry.
	Record(ctx context.Context, phraseLimit time.Duration) ([]byte, error)

	// Close releases the capture device.
	Close() error
}

// Calibrator is implemented by captures that support ambient-noise
// calibration. The channel calibrates once before the first listen.
type Calibrator interface {
	Calibrate(ctx context.Context) error
}

// Player plays synthesized audio.
type Player interface {
	// Play blocks until the audio has been played or ctx is cancelled.
	Play(ctx context.Context, audio []byte, format string) error

	// Close releases the playback device.
	Close() error
}

// Sink observes every utterance as it is spoken.
// Sinks fire at enqueue time, before synthesis, and must not block.
type Sink interface {
	Spoken(text string)
}

// FuncSink adapts a function to the Sink interface.
type FuncSink func(text string)

// Spoken implements Sink.
func (f FuncSink) Spoken(text string) {
	f(text)
}
