// Package router classifies user commands and dispatches them to the
// assistant's handlers.
//
// Classification is deliberately simple: an ordered list of keyword
// rules where the first match wins. Dispatch never lets a handler
// failure escape; every outcome becomes a spoken sentence.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aria-ai/aria/pkg/lookup"
	"github.com/aria-ai/aria/pkg/notes"
	"github.com/aria-ai/aria/pkg/tts"
)

// Speaker delivers a response to the user. The voice channel satisfies
// this in both voice and text-only modes.
type Speaker interface {
	Speak(text string, opts ...tts.SpeakOption)
}

// Responder produces a conversational reply. The inference fallback
// chain satisfies this and never fails.
type Responder interface {
	Respond(ctx context.Context, prompt string) string
}

// fallbackJokes covers the case where every inference provider is down.
var fallbackJokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"I told my computer a joke about UDP... but I'm not sure if it got it.",
	"Why do programmers prefer dark mode? Because light attracts bugs!",
}

const helpText = "I can help with conversations and questions, weather, news and " +
	"stock information, web searches, Wikipedia lookups, notes and reminders, " +
	"and telling the time. Just ask me naturally."

const farewell = "Goodbye! It was great helping you today!"

// Deps wires the dispatcher to its handlers. Nil lookup handlers are
// answered with a not-available sentence instead of panicking.
type Deps struct {
	Speaker   Speaker
	Responder Responder
	Notes     *notes.Store
	Reminders *notes.Reminders
	Weather   lookup.Handler
	News      lookup.Handler
	Stock     lookup.Handler
	Search    lookup.Handler
	Wiki      lookup.Handler
	Clock     lookup.Handler
	Logger    *slog.Logger
}

// Dispatcher routes commands and speaks the results.
type Dispatcher struct {
	deps   Deps
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher over the given dependencies.
func NewDispatcher(deps Deps) *Dispatcher {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		deps:   deps,
		logger: logger.With("component", "router"),
	}
}

// Dispatch routes the command, runs the handler, and speaks the result.
// It returns false only when the command asks the assistant to exit.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) (keepGoing bool) {
	keepGoing = true

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked", "input", text, "panic", r)
			d.speak("Something went wrong handling that. Let's try something else.")
		}
	}()

	intent, arg := Route(text)
	d.logger.Debug("routed command", "intent", intent.String(), "arg", arg)

	switch intent {
	case IntentConversation:
		d.speak(d.deps.Responder.Respond(ctx, arg))

	case IntentWeather:
		if arg == "" {
			d.speak("Which city would you like the weather for?")
			return true
		}
		d.speak(d.lookup(ctx, d.deps.Weather, arg))

	case IntentNews:
		d.speak(d.lookup(ctx, d.deps.News, arg))

	case IntentStock:
		if arg == "" {
			d.speak("Which stock would you like to check?")
			return true
		}
		d.speak(d.lookup(ctx, d.deps.Stock, arg))

	case IntentSearch:
		if arg == "" {
			d.speak("What would you like me to search for?")
			return true
		}
		d.speak(d.lookup(ctx, d.deps.Search, arg))

	case IntentWiki:
		if arg == "" {
			d.speak("What topic would you like me to look up on Wikipedia?")
			return true
		}
		d.speak(d.lookup(ctx, d.deps.Wiki, arg))

	case IntentNoteWrite:
		d.writeNote(arg)

	case IntentNoteRead:
		d.readNotes()

	case IntentReminder:
		d.setReminder(arg)

	case IntentClock:
		d.speak(d.lookup(ctx, d.deps.Clock, ""))

	case IntentJoke:
		d.tellJoke(ctx)

	case IntentExit:
		d.speak(farewell)
		return false

	case IntentHelp:
		d.speak(helpText)
	}

	return true
}

// speak guards against a missing speaker in partially wired tests.
func (d *Dispatcher) speak(text string) {
	if d.deps.Speaker != nil && text != "" {
		d.deps.Speaker.Speak(text)
	}
}

// lookup runs a handler, tolerating an unwired one.
func (d *Dispatcher) lookup(ctx context.Context, h lookup.Handler, arg string) string {
	if h == nil {
		return "That service isn't available right now."
	}
	return h.Lookup(ctx, arg)
}

func (d *Dispatcher) writeNote(text string) {
	if text == "" {
		d.speak("What would you like me to note down?")
		return
	}
	if d.deps.Notes == nil {
		d.speak("Notes aren't available right now.")
		return
	}

	note, err := d.deps.Notes.Add(text)
	if err != nil {
		// The note is still held in memory; tell the user it worked.
		d.logger.Warn("note persisted in memory only", "error", err)
	}
	d.speak(fmt.Sprintf("Note saved: %s", note.Text))
}

func (d *Dispatcher) readNotes() {
	if d.deps.Notes == nil || d.deps.Notes.Count() == 0 {
		d.speak("You don't have any notes saved.")
		return
	}

	recent := d.deps.Notes.Recent(3)
	d.speak(fmt.Sprintf("You have %d notes. Here are the recent ones:", d.deps.Notes.Count()))
	for _, note := range recent {
		d.speak(fmt.Sprintf("%s - saved on %s", note.Text, formatNoteTime(note.Timestamp)))
	}
}

// formatNoteTime renders an RFC 3339 timestamp as "January 2 at 3:04 PM".
// Unparseable timestamps are spoken verbatim.
func formatNoteTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("January 2 at 3:04 PM")
}

func (d *Dispatcher) setReminder(text string) {
	if text == "" {
		d.speak("What would you like me to remind you about?")
		return
	}
	if d.deps.Reminders == nil {
		d.speak("Reminders aren't available right now.")
		return
	}

	reminder, err := d.deps.Reminders.Add(text, "later")
	if err != nil {
		d.logger.Warn("reminder persisted in memory only", "error", err)
	}
	d.speak(fmt.Sprintf("Reminder set: %s for %s", reminder.Text, reminder.When))
}

func (d *Dispatcher) tellJoke(ctx context.Context) {
	joke := d.deps.Responder.Respond(ctx, "Tell me a clever, witty joke")
	if joke == "" {
		joke = fallbackJokes[rand.Intn(len(fallbackJokes))]
	}
	d.speak(joke)
}
