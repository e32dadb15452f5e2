package notes

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Reminder is a free-text reminder with a spoken "when" clause.
// Reminders are informational; the assistant reads them back on request
// rather than scheduling alarms.
type Reminder struct {
	Text    string `json:"text"`
	When    string `json:"when"`
	Created string `json:"created"`
}

// Reminders is a file-backed reminder list, persisted the same way as
// the note store: full JSON rewrite on every addition.
type Reminders struct {
	mu     sync.RWMutex
	path   string
	items  []Reminder
	logger *slog.Logger
	now    func() time.Time
}

// NewReminders creates a reminder store backed by the JSON file at path.
func NewReminders(path string) *Reminders {
	r := &Reminders{
		path:   path,
		logger: slog.Default().With("component", "reminders"),
		now:    time.Now,
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if jerr := json.Unmarshal(data, &r.items); jerr != nil {
			r.logger.Warn("reminders file is not valid JSON, starting empty",
				"path", path,
				"error", jerr,
			)
			r.items = nil
		}
	}
	return r
}

// Add appends a reminder and persists the list.
// Like Store.Add, the reminder survives in memory even when the write fails.
func (r *Reminders) Add(text, when string) (Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := Reminder{
		Text:    text,
		When:    when,
		Created: r.now().Format(time.RFC3339),
	}
	r.items = append(r.items, item)

	data, err := json.MarshalIndent(r.items, "", "  ")
	if err != nil {
		return item, err
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		r.logger.Warn("could not persist reminders, keeping in memory",
			"path", r.path,
			"error", err,
		)
		return item, err
	}
	return item, nil
}

// All returns every reminder in insertion order.
func (r *Reminders) All() []Reminder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Reminder, len(r.items))
	copy(out, r.items)
	return out
}

// Count returns the number of stored reminders.
func (r *Reminders) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
