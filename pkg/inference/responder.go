package inference

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Responder is the deterministic rule-based terminal provider.
// It matches the prompt against keyword buckets in a fixed order and picks a
// canned response from the first bucket that matches. It has no external
// dependencies, is always configured, and never fails, which makes it the
// guaranteed last link of every chain.
type Responder struct {
	now func() time.Time
}

// NewResponder creates the rule-based responder.
func NewResponder() *Responder {
	return &Responder{now: time.Now}
}

// bucket pairs trigger keywords with canned responses.
// Buckets are checked in declaration order; the first whose keywords match
// wins, mirroring the router's first-match discipline.
type bucket struct {
	name      string
	keywords  []string
	responses []string
}

var greetingBucket = bucket{
	name:     "greeting",
	keywords: []string{"hello", "hi", "hey", "good morning", "good afternoon"},
	responses: []string{
		"Hello! How can I assist you today?",
		"Hi there! What can I help you with?",
		"Hey! Ready to get things done?",
	},
}

var questionBucket = bucket{
	name:     "question",
	keywords: []string{"what", "how", "why", "when", "where"},
	responses: []string{
		"That's an interesting question! Let me help you find information about that.",
		"I'd be happy to help you understand that better. Let me search for relevant information.",
		"Great question! While I process that, I can help with searches, notes, or information lookups.",
	},
}

var emotionalBucket = bucket{
	name:     "emotional",
	keywords: []string{"tired", "stressed", "frustrated", "sad"},
	responses: []string{
		"I understand that can be challenging. Is there something specific I can help you with?",
		"I'm here to help make things easier for you. What would be most helpful right now?",
		"Let me assist you with whatever you need. Sometimes organizing tasks can help reduce stress.",
	},
}

var defaultBucket = bucket{
	name: "default",
	responses: []string{
		"I understand you're asking about that. How can I assist you further?",
		"That's interesting! I can help with searches, notes, or information lookup.",
		"I'm here to help! Try asking me to search for something, take notes, or check the weather.",
		"I'd be happy to help! I can search the web, look up news, take notes, or answer questions.",
	},
}

// Name identifies this provider.
func (r *Responder) Name() string { return "rule-based" }

// Configured is always true.
func (r *Responder) Configured() bool { return true }

// Timeout is nominal; the responder never blocks.
func (r *Responder) Timeout() time.Duration { return time.Second }

// Complete pattern-matches the prompt and returns a canned response.
func (r *Responder) Complete(ctx context.Context, req *Request) (*Response, error) {
	prompt := strings.ToLower(req.Prompt)

	var choices []string
	switch {
	case greetingBucket.matches(prompt):
		// Greetings get an extra time-of-day variant.
		choices = append([]string{}, greetingBucket.responses...)
		choices = append(choices, "Good "+timePeriod(r.now())+"! How may I help you?")
	case questionBucket.matches(prompt):
		choices = questionBucket.responses
	case emotionalBucket.matches(prompt):
		choices = emotionalBucket.responses
	default:
		choices = defaultBucket.responses
	}

	return &Response{
		Text:     choices[rand.Intn(len(choices))],
		Provider: r.Name(),
	}, nil
}

// Health always succeeds.
func (r *Responder) Health(ctx context.Context) error { return nil }

// Close is a no-op.
func (r *Responder) Close() error { return nil }

// matches reports whether any keyword occurs in the prompt.
func (b bucket) matches(prompt string) bool {
	for _, kw := range b.keywords {
		if strings.Contains(prompt, kw) {
			return true
		}
	}
	return false
}

// timePeriod names the part of day for greeting responses.
func timePeriod(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}

// Verify Responder implements Provider at compile time.
var _ Provider = (*Responder)(nil)
