// Package assistant runs the interactive command loop.
//
// Two modes share one dispatcher: voice mode gates commands behind a
// wake word, text mode treats every input line as a command. The loop
// is an explicit state machine so mode transitions are visible in
// debug logs and the cancellation point between listens is obvious.
package assistant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aria-ai/aria/pkg/tts"
)

// state names the run-loop phases.
type state int

const (
	stateIdle state = iota
	stateWaitingForWake
	stateListening
	stateDispatching
)

func (s state) String() string {
	switch s {
	case stateWaitingForWake:
		return "waiting-for-wake"
	case stateListening:
		return "listening"
	case stateDispatching:
		return "dispatching"
	default:
		return "idle"
	}
}

// Dispatcher routes one command. It returns false to end the session.
type Dispatcher interface {
	Dispatch(ctx context.Context, text string) bool
}

// Speaker delivers assistant output.
type Speaker interface {
	Speak(text string, opts ...tts.SpeakOption)
}

// Listener captures and recognizes one utterance.
type Listener interface {
	Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error)
}

// Default listen windows, matching a comfortable spoken exchange.
const (
	DefaultWakeTimeout    = 5 * time.Second
	DefaultCommandTimeout = 10 * time.Second
	DefaultPhraseLimit    = 10 * time.Second
)

// Assistant owns the interactive loop.
type Assistant struct {
	wakeWord   string
	dispatcher Dispatcher
	speaker    Speaker
	listener   Listener
	logger     *slog.Logger
	out        io.Writer

	wakeTimeout    time.Duration
	commandTimeout time.Duration
	phraseLimit    time.Duration
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithWakeWord sets the voice-mode trigger word.
func WithWakeWord(word string) Option {
	return func(a *Assistant) {
		a.wakeWord = strings.ToLower(word)
	}
}

// WithListener sets the voice input source.
func WithListener(l Listener) Option {
	return func(a *Assistant) {
		a.listener = l
	}
}

// WithSpeaker sets the output channel.
func WithSpeaker(s Speaker) Option {
	return func(a *Assistant) {
		a.speaker = s
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// WithOutput redirects the text-mode prompt, normally stdout.
func WithOutput(w io.Writer) Option {
	return func(a *Assistant) {
		a.out = w
	}
}

// WithTimeouts overrides the listen windows.
func WithTimeouts(wake, command, phrase time.Duration) Option {
	return func(a *Assistant) {
		a.wakeTimeout = wake
		a.commandTimeout = command
		a.phraseLimit = phrase
	}
}

// New creates an assistant around a dispatcher.
func New(dispatcher Dispatcher, opts ...Option) *Assistant {
	a := &Assistant{
		wakeWord:       "aria",
		dispatcher:     dispatcher,
		logger:         slog.Default().With("component", "assistant"),
		out:            os.Stdout,
		wakeTimeout:    DefaultWakeTimeout,
		commandTimeout: DefaultCommandTimeout,
		phraseLimit:    DefaultPhraseLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunText reads commands line by line until the input ends, the
// context is cancelled, or a command asks to exit.
func (a *Assistant) RunText(ctx context.Context, input io.Reader) error {
	scanner := bufio.NewScanner(input)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(a.out, "You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		a.logger.Debug("state", "state", stateDispatching.String(), "input", line)
		if !a.dispatcher.Dispatch(ctx, line) {
			return nil
		}
	}
}

// RunVoice listens for the wake word, then for a command, and
// dispatches it. The loop checks ctx between listens, so interrupting
// the process stops it at the next quiet moment.
func (a *Assistant) RunVoice(ctx context.Context) error {
	if a.listener == nil {
		return fmt.Errorf("assistant: voice mode requires a listener")
	}

	a.logger.Info("voice loop started", "wake_word", a.wakeWord)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		a.logger.Debug("state", "state", stateWaitingForWake.String())
		heard, err := a.listener.Listen(ctx, a.wakeTimeout, a.phraseLimit)
		if err != nil {
			a.logger.Warn("listen failed", "error", err)
			continue
		}
		if heard == "" {
			continue
		}

		heard = strings.ToLower(heard)
		switch {
		case strings.Contains(heard, a.wakeWord):
			if !a.handleWake(ctx) {
				return nil
			}
		case containsExitWord(heard):
			// Allow quitting without the wake word.
			a.logger.Debug("state", "state", stateDispatching.String(), "input", heard)
			if !a.dispatcher.Dispatch(ctx, heard) {
				return nil
			}
		}
	}
}

// handleWake acknowledges the wake word and runs one command exchange.
// It returns false when the command ends the session.
func (a *Assistant) handleWake(ctx context.Context) bool {
	if a.speaker != nil {
		a.speaker.Speak("Yes? I'm listening.")
	}

	a.logger.Debug("state", "state", stateListening.String())
	command, err := a.listener.Listen(ctx, a.commandTimeout, a.phraseLimit)
	if err != nil {
		a.logger.Warn("command listen failed", "error", err)
		return true
	}
	if command == "" {
		return true
	}

	a.logger.Debug("state", "state", stateDispatching.String(), "input", command)
	return a.dispatcher.Dispatch(ctx, command)
}

// containsExitWord mirrors the dispatcher's exit vocabulary for the
// no-wake-word shortcut.
func containsExitWord(heard string) bool {
	for _, word := range []string{"quit", "exit", "goodbye"} {
		if strings.Contains(heard, word) {
			return true
		}
	}
	return false
}
