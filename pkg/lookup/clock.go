package lookup

import (
	"context"
	"fmt"
	"time"
)

// Clock answers time and date questions from the local clock.
type Clock struct {
	// Now is replaceable in tests; defaults to time.Now.
	Now func() time.Time
}

var _ Handler = (*Clock)(nil)

// NewClock creates a clock handler.
func NewClock() *Clock {
	return &Clock{Now: time.Now}
}

// Lookup speaks the current time and date. The argument is ignored.
func (c *Clock) Lookup(ctx context.Context, _ string) string {
	now := c.Now()
	return fmt.Sprintf("It's %s on %s",
		now.Format("3:04 PM"),
		now.Format("Monday, January 2, 2006"))
}

// TimeOfDay names the current period of the day.
func (c *Clock) TimeOfDay() string {
	switch hour := c.Now().Hour(); {
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
