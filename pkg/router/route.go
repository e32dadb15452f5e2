package router

import "strings"

// Trigger word sets, checked in declaration order. The ordering is a
// contract: several sets overlap ("note" and "news" share letters,
// "weather" inputs can mention "news") and the first match always wins.
var (
	conversationTriggers = []string{
		"how are you", "what do you think", "tell me about",
		"explain", "why", "what if", "chat",
	}
	clockTriggers = []string{"time", "date", "what time"}
	exitTriggers  = []string{"goodbye", "bye", "exit", "quit", "stop"}
)

// Route classifies the input and extracts the handler argument.
// Matching is ordered substring containment over the lower-cased
// trimmed input; the first rule that matches wins.
func Route(text string) (Intent, string) {
	command := strings.ToLower(strings.TrimSpace(text))

	switch {
	case containsAny(command, conversationTriggers):
		return IntentConversation, command

	case strings.Contains(command, "weather"):
		return IntentWeather, afterWord(command, "in")

	case strings.Contains(command, "news"):
		topic := afterWord(command, "about")
		if topic == "" {
			topic = afterWord(command, "on")
		}
		if topic == "" {
			topic = "general"
		}
		return IntentNews, topic

	case strings.Contains(command, "stock"):
		symbol := afterWord(command, "of")
		if symbol == "" {
			symbol = stripTriggers(command, "stock price", "stock")
		}
		return IntentStock, symbol

	case strings.Contains(command, "search"):
		return IntentSearch, stripTriggers(command, "search for", "search")

	case strings.Contains(command, "wikipedia") || strings.Contains(command, "wiki"):
		return IntentWiki, stripTriggers(command, "wikipedia", "wiki", "search")

	case strings.Contains(command, "note"):
		if strings.Contains(command, "read") {
			return IntentNoteRead, ""
		}
		if idx := strings.Index(command, ":"); idx >= 0 {
			return IntentNoteWrite, strings.TrimSpace(command[idx+1:])
		}
		if strings.Contains(command, "write") || strings.Contains(command, "add") {
			return IntentNoteWrite, stripTriggers(command, "write a note", "add note", "write", "add", "note")
		}
		return IntentNoteWrite, ""

	case strings.Contains(command, "remind me") || strings.Contains(command, "set reminder"):
		return IntentReminder, stripTriggers(command, "remind me to", "remind me", "set reminder")

	case containsAny(command, clockTriggers):
		return IntentClock, ""

	case strings.Contains(command, "joke"):
		return IntentJoke, ""

	case containsAny(command, exitTriggers):
		return IntentExit, ""

	case strings.Contains(command, "help"):
		return IntentHelp, ""

	default:
		return IntentConversation, command
	}
}

// containsAny reports whether command contains any of the triggers.
func containsAny(command string, triggers []string) bool {
	for _, t := range triggers {
		if strings.Contains(command, t) {
			return true
		}
	}
	return false
}

// afterWord returns the trimmed text following the first occurrence of
// word as a standalone token, or empty when absent.
func afterWord(command, word string) string {
	fields := strings.Fields(command)
	for i, f := range fields {
		if f == word && i+1 < len(fields) {
			return strings.Join(fields[i+1:], " ")
		}
	}
	return ""
}

// stripTriggers removes each trigger phrase and returns the remainder.
func stripTriggers(command string, triggers ...string) string {
	for _, t := range triggers {
		command = strings.ReplaceAll(command, t, "")
	}
	return strings.TrimSpace(command)
}
