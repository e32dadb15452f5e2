package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aria-ai/aria/pkg/stt"
	"github.com/aria-ai/aria/pkg/tts"
)

// DefaultQueueSize bounds the number of utterances waiting for synthesis.
const DefaultQueueSize = 64

// utterance is one queued speak request.
type utterance struct {
	text string
	opts []tts.SpeakOption
}

// Channel is the conversational voice interface: an async speak queue
// in one direction and blocking listen in the other.
//
// Exactly one worker goroutine consumes the queue, so utterances play
// in submission order. A nil synthesizer or player degrades the channel
// to text-only output through its sinks.
type Channel struct {
	synth      tts.Synthesizer
	player     Player
	recognizer stt.Recognizer
	capture    Capture
	logger     *slog.Logger

	queue chan utterance
	done  chan struct{}

	mu     sync.Mutex
	sinks  []Sink
	closed bool

	calibrateOnce sync.Once
}

// ChannelOption configures a Channel.
type ChannelOption func(*Channel)

// WithSynthesizer sets the speech synthesizer. Nil means text-only.
func WithSynthesizer(s tts.Synthesizer) ChannelOption {
	return func(c *Channel) {
		c.synth = s
	}
}

// WithPlayer sets the audio playback device.
func WithPlayer(p Player) ChannelOption {
	return func(c *Channel) {
		c.player = p
	}
}

// WithRecognizer sets the speech recognizer used by Listen.
func WithRecognizer(r stt.Recognizer) ChannelOption {
	return func(c *Channel) {
		c.recognizer = r
	}
}

// WithCapture sets the audio capture device used by Listen.
func WithCapture(cap Capture) ChannelOption {
	return func(c *Channel) {
		c.capture = cap
	}
}

// WithSink registers an utterance observer.
func WithSink(s Sink) ChannelOption {
	return func(c *Channel) {
		c.sinks = append(c.sinks, s)
	}
}

// WithQueueSize overrides the speak queue capacity.
func WithQueueSize(n int) ChannelOption {
	return func(c *Channel) {
		if n > 0 {
			c.queue = make(chan utterance, n)
		}
	}
}

// NewChannel creates a voice channel and starts its speak worker.
// Callers must Close the channel to stop the worker.
func NewChannel(opts ...ChannelOption) *Channel {
	c := &Channel{
		logger: slog.Default().With("component", "voice"),
		queue:  make(chan utterance, DefaultQueueSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.worker()
	return c
}

// AddSink registers an utterance observer after construction.
func (c *Channel) AddSink(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

// Speak enqueues text for synthesis and playback without blocking on
// either. Sinks observe the text immediately. After Close, Speak is a
// logged no-op.
func (c *Channel) Speak(text string, opts ...tts.SpeakOption) {
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("speak after close dropped", "text", text)
		return
	}
	sinks := make([]Sink, len(c.sinks))
	copy(sinks, c.sinks)
	c.queue <- utterance{text: text, opts: opts}
	c.mu.Unlock()

	for _, s := range sinks {
		s.Spoken(text)
	}
}

// worker drains the speak queue until Close.
func (c *Channel) worker() {
	defer close(c.done)

	for utt := range c.queue {
		c.speakOne(utt)
	}
}

// speakOne synthesizes and plays one utterance, degrading to text-only
// on any failure. The sinks already delivered the text.
func (c *Channel) speakOne(utt utterance) {
	if c.synth == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := c.synth.Synthesize(ctx, utt.text, utt.opts...)
	if err != nil {
		c.logger.Warn("synthesis failed, text-only output", "error", err)
		return
	}
	if c.player == nil {
		return
	}

	if err := c.player.Play(ctx, result.Audio, result.Format); err != nil {
		c.logger.Warn("playback failed", "error", err)
	}
}

// Listen blocks until speech is recognized or timeout elapses.
// A timeout or unrecognized speech returns an empty string with a nil
// error; genuine recognizer failures are returned to the caller.
func (c *Channel) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error) {
	if c.capture == nil || c.recognizer == nil {
		return "", errors.New("voice: channel has no capture or recognizer")
	}

	if cal, ok := c.capture.(Calibrator); ok {
		c.calibrateOnce.Do(func() {
			if err := cal.Calibrate(ctx); err != nil {
				c.logger.Warn("ambient calibration failed", "error", err)
			}
		})
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	audio, err := c.capture.Record(ctx, phraseLimit)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Debug("listen timed out")
			return "", nil
		}
		return "", err
	}
	if len(audio) == 0 {
		return "", nil
	}

	text, err := c.recognizer.Recognize(ctx, audio)
	if err != nil {
		if errors.Is(err, stt.ErrNoSpeech) {
			c.logger.Debug("no speech recognized")
			return "", nil
		}
		return "", err
	}

	c.logger.Debug("recognized speech", "text", text)
	return text, nil
}

// Close stops accepting utterances, waits for the queue to drain, and
// releases the underlying devices. Safe to call more than once.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.queue)
	c.mu.Unlock()

	<-c.done

	var lastErr error
	if c.synth != nil {
		if err := c.synth.Close(); err != nil {
			lastErr = err
		}
	}
	if c.player != nil {
		if err := c.player.Close(); err != nil {
			lastErr = err
		}
	}
	if c.capture != nil {
		if err := c.capture.Close(); err != nil {
			lastErr = err
		}
	}
	if c.recognizer != nil {
		if err := c.recognizer.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
