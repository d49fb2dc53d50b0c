package event

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

// maxOccurrences caps recurrence expansion inside one window so a malformed
// rule cannot blow up a month load.
const maxOccurrences = 370

func frequencyFor(r Recurrence) (rrule.Frequency, bool) {
	switch r {
	case RecurDaily:
		return rrule.DAILY, true
	case RecurWeekly:
		return rrule.WEEKLY, true
	case RecurMonthly:
		return rrule.MONTHLY, true
	case RecurYearly:
		return rrule.YEARLY, true
	default:
		return 0, false
	}
}

// ExpandRecurrence materializes the occurrences of e visible inside the
// half-open window [windowStart, windowEnd). Non-recurring events come back
// as themselves when visible. Each occurrence keeps the base event's span
// length and identity; only the dates shift.
func ExpandRecurrence(e Event, windowStart, windowEnd dateutil.Day) []Event {
	freq, ok := frequencyFor(e.Recurrence)
	if !ok {
		if VisibleIn(e, windowStart, windowEnd) {
			return []Event{e}
		}
		return nil
	}

	start, sok := e.StartDate.Time()
	ws, wok := windowStart.Time()
	we, eok := windowEnd.Time()
	if !sok || !wok || !eok || !we.After(ws) {
		return nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: start,
	})
	if err != nil {
		return nil
	}

	spanDays := 0
	if e.MultiDay() {
		if end, ok := e.EffectiveEnd().Time(); ok {
			spanDays = int(end.Sub(start).Hours() / 24)
		}
	}

	// Multi-day occurrences can start before the window and still overlap
	// it, so widen the probe range by the span length.
	probeStart := ws.AddDate(0, 0, -spanDays)
	times := rule.Between(probeStart, we.Add(-time.Nanosecond), true)
	if len(times) > maxOccurrences {
		times = times[:maxOccurrences]
	}

	out := make([]Event, 0, len(times))
	for _, at := range times {
		occ := e
		occ.StartDate = dateutil.FromTime(at)
		if spanDays > 0 {
			occ.EndDate = occ.StartDate.AddDays(spanDays)
		} else {
			occ.EndDate = e.EndDate
			if e.EndDate.Valid() {
				occ.EndDate = occ.StartDate
			}
		}
		if VisibleIn(occ, windowStart, windowEnd) {
			out = append(out, occ)
		}
	}
	return out
}

// ExpandAll projects recurrence across a batch for one visible window.
func ExpandAll(events []Event, windowStart, windowEnd dateutil.Day) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, ExpandRecurrence(e, windowStart, windowEnd)...)
	}
	return out
}
