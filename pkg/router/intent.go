package router

// Intent is the closed set of recognized command categories.
type Intent int

const (
	IntentConversation Intent = iota
	IntentWeather
	IntentNews
	IntentStock
	IntentSearch
	IntentWiki
	IntentNoteWrite
	IntentNoteRead
	IntentReminder
	IntentClock
	IntentJoke
	IntentExit
	IntentHelp
)

// String returns the intent name for logs and tests.
func (i Intent) String() string {
	switch i {
	case IntentConversation:
		return "conversation"
	case IntentWeather:
		return "weather"
	case IntentNews:
		return "news"
	case IntentStock:
		return "stock"
	case IntentSearch:
		return "search"
	case IntentWiki:
		return "wiki"
	case IntentNoteWrite:
		return "note-write"
	case IntentNoteRead:
		return "note-read"
	case IntentReminder:
		return "reminder"
	case IntentClock:
		return "clock"
	case IntentJoke:
		return "joke"
	case IntentExit:
		return "exit"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}
