package assistant

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aria-ai/aria/pkg/tts"
)

// scriptDispatcher records inputs and terminates on "goodbye".
type scriptDispatcher struct {
	mu     sync.Mutex
	inputs []string
}

func (d *scriptDispatcher) Dispatch(ctx context.Context, text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputs = append(d.inputs, text)
	return !strings.Contains(text, "goodbye")
}

func (d *scriptDispatcher) all() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.inputs))
	copy(out, d.inputs)
	return out
}

// scriptListener replays transcripts in order, then empty results.
type scriptListener struct {
	mu     sync.Mutex
	script []string
}

func (l *scriptListener) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.script) == 0 {
		return "", nil
	}
	next := l.script[0]
	l.script = l.script[1:]
	return next, nil
}

type nopSpeaker struct{}

func (nopSpeaker) Speak(text string, opts ...tts.SpeakOption) {}

func TestRunTextDispatchesLines(t *testing.T) {
	d := &scriptDispatcher{}
	a := New(d, WithOutput(io.Discard))

	input := strings.NewReader("weather in tokyo\n\n  \nread my notes\ngoodbye\nnever seen\n")
	if err := a.RunText(context.Background(), input); err != nil {
		t.Fatalf("RunText failed: %v", err)
	}

	got := d.all()
	want := []string{"weather in tokyo", "read my notes", "goodbye"}
	if len(got) != len(want) {
		t.Fatalf("Dispatched %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dispatch %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunTextEndsOnEOF(t *testing.T) {
	d := &scriptDispatcher{}
	a := New(d, WithOutput(io.Discard))

	if err := a.RunText(context.Background(), strings.NewReader("")); err != nil {
		t.Errorf("EOF should end the loop cleanly, got %v", err)
	}
}

func TestRunTextHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(&scriptDispatcher{}, WithOutput(io.Discard))
	err := a.RunText(ctx, strings.NewReader("hello\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRunVoiceRequiresWakeWord(t *testing.T) {
	d := &scriptDispatcher{}
	listener := &scriptListener{script: []string{
		"random chatter",       // ignored, no wake word
		"hey aria",             // wake
		"weather in tokyo",     // command
		"aria",                 // wake
		"goodbye",              // command ends the session
	}}

	a := New(d,
		WithListener(listener),
		WithSpeaker(nopSpeaker{}),
		WithOutput(io.Discard),
	)

	if err := a.RunVoice(context.Background()); err != nil {
		t.Fatalf("RunVoice failed: %v", err)
	}

	got := d.all()
	if len(got) != 2 || got[0] != "weather in tokyo" || got[1] != "goodbye" {
		t.Errorf("Dispatched %v, want the two commands after wake words", got)
	}
}

func TestRunVoiceExitWithoutWakeWord(t *testing.T) {
	d := &scriptDispatcher{}
	listener := &scriptListener{script: []string{"goodbye now"}}

	a := New(d, WithListener(listener), WithOutput(io.Discard))
	if err := a.RunVoice(context.Background()); err != nil {
		t.Fatalf("RunVoice failed: %v", err)
	}

	got := d.all()
	if len(got) != 1 || got[0] != "goodbye now" {
		t.Errorf("Exit words should dispatch without a wake word, got %v", got)
	}
}

func TestRunVoiceWithoutListener(t *testing.T) {
	a := New(&scriptDispatcher{}, WithOutput(io.Discard))
	if err := a.RunVoice(context.Background()); err == nil {
		t.Error("Voice mode without a listener must fail")
	}
}
