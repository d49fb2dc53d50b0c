// Package diary models daily and baby diary entries.
package diary

import (
	"time"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

// Kind distinguishes the two diary streams.
type Kind string

const (
	KindDaily Kind = "daily"
	KindBaby  Kind = "baby"
)

// Entry is one diary record for a calendar day.
type Entry struct {
	ID              string       `json:"id"`
	Date            dateutil.Day `json:"date"`
	Kind            Kind         `json:"kind"`
	Mood            string       `json:"mood,omitempty"`
	Body            string       `json:"body"`
	WeekOfPregnancy int          `json:"week_of_pregnancy,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// gestation is counted over 40 weeks ending at the due date.
const gestationWeeks = 40

// WeekOf derives the pregnancy week for day given the due date. Returns 0
// when either date is invalid or the day falls outside the 40-week term.
func WeekOf(due, day dateutil.Day) int {
	dueT, ok := due.Time()
	if !ok {
		return 0
	}
	dayT, ok := day.Time()
	if !ok {
		return 0
	}
	conception := dueT.AddDate(0, 0, -gestationWeeks*7)
	if dayT.Before(conception) || dayT.After(dueT) {
		return 0
	}
	week := int(dayT.Sub(conception).Hours()/(24*7)) + 1
	if week > gestationWeeks {
		week = gestationWeeks
	}
	return week
}

// ForDate returns the entry of the given kind on day, or nil.
func ForDate(all []Entry, day dateutil.Day, kind Kind) *Entry {
	for i := range all {
		if all[i].Kind == kind && dateutil.SameDay(all[i].Date, day) {
			return &all[i]
		}
	}
	return nil
}
