// Package dateutil normalizes the heterogeneous date representations the
// backend hands us into a single canonical calendar-date form.
package dateutil

import (
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

// Day is a canonical calendar date in YYYY-MM-DD form. The empty string is
// the sentinel for absent or unparseable input; callers must check Valid
// before trusting a Day.
type Day string

// None is the sentinel Day.
const None Day = ""

// Normalize converts date-like input into a Day. It accepts plain dates,
// ISO timestamps ("2024-03-05T10:00:00" or "2024-03-05 10:00:00"),
// time.Time values, and pointers to either. Anything else, including nil
// and the zero time, normalizes to the sentinel; it never panics or errors.
func Normalize(v any) Day {
	switch t := v.(type) {
	case nil:
		return None
	case Day:
		return normalizeString(string(t))
	case string:
		return normalizeString(t)
	case *string:
		if t == nil {
			return None
		}
		return normalizeString(*t)
	case time.Time:
		return FromTime(t)
	case *time.Time:
		if t == nil {
			return None
		}
		return FromTime(*t)
	default:
		return None
	}
}

func normalizeString(s string) Day {
	s = strings.TrimSpace(s)
	if s == "" {
		return None
	}
	// Strip any time suffix: "2024-03-05T10:00:00" and "2024-03-05 10:00:00"
	// both reduce to the date component.
	if idx := strings.IndexAny(s, "T "); idx > 0 {
		s = s[:idx]
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return None
	}
	return FromTime(t)
}

// FromTime converts a time.Time to a Day using its calendar components.
func FromTime(t time.Time) Day {
	if t.IsZero() {
		return None
	}
	return Day(t.Format(layoutISO))
}

// SameDay reports whether two date-like values refer to the same calendar
// date. Both sides are normalized first; a sentinel on either side is never
// the same day as anything.
func SameDay(a, b any) bool {
	da := Normalize(a)
	db := Normalize(b)
	if da == None || db == None {
		return false
	}
	return da == db
}

// Valid reports whether d holds a parseable calendar date.
func (d Day) Valid() bool {
	if d == None {
		return false
	}
	_, err := time.Parse(layoutISO, string(d))
	return err == nil
}

// Time returns the midnight UTC instant for the day. The bool is false for
// the sentinel or malformed values.
func (d Day) Time() (time.Time, bool) {
	t, err := time.Parse(layoutISO, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays returns the day shifted by n calendar days. Sentinel in, sentinel
// out.
func (d Day) AddDays(n int) Day {
	t, ok := d.Time()
	if !ok {
		return None
	}
	return FromTime(t.AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than o. Valid ISO dates order
// lexically, so the comparison is a string compare once both are normalized.
func (d Day) Before(o Day) bool {
	return d != None && o != None && d < o
}

// After reports whether d is strictly later than o.
func (d Day) After(o Day) bool {
	return d != None && o != None && d > o
}

func (d Day) String() string { return string(d) }

// Today returns the current local calendar date.
func Today() Day {
	return FromTime(time.Now())
}

// MonthWindow returns the half-open [first, next-first) range covering the
// given month.
func MonthWindow(year int, month time.Month) (Day, Day) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return FromTime(first), FromTime(first.AddDate(0, 1, 0))
}
