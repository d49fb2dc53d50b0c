// Package summary holds AI-summarized conversation notes pinned to
// calendar dates.
package summary

import (
	"time"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

// Summary is one condensed conversation note for a day.
type Summary struct {
	ID        string       `json:"id"`
	Date      dateutil.Day `json:"date"`
	Topic     string       `json:"topic"`
	Body      string       `json:"body"`
	Model     string       `json:"model,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// ForDate returns the summaries pinned to the given day.
func ForDate(all []Summary, day dateutil.Day) []Summary {
	out := make([]Summary, 0, 1)
	for _, s := range all {
		if dateutil.SameDay(s.Date, day) {
			out = append(out, s)
		}
	}
	return out
}

// RemoveByDate drops every summary pinned to the given day and reports
// whether anything was removed.
func RemoveByDate(all []Summary, day dateutil.Day) ([]Summary, bool) {
	out := all[:0]
	removed := false
	for _, s := range all {
		if dateutil.SameDay(s.Date, day) {
			removed = true
			continue
		}
		out = append(out, s)
	}
	return out, removed
}
