package event

import (
	"regexp"
	"strings"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

var bracketTag = regexp.MustCompile(`\s*\[[^\]]*\]\s*`)

// StripTitleTags removes bracketed recurrence markers ("[weekly] checkup")
// from a display title.
func StripTitleTags(title string) string {
	return strings.TrimSpace(bracketTag.ReplaceAllString(title, " "))
}

// Project maps one backend record into the canonical event. The bool is
// false when the record has no usable start date; such records are dropped
// rather than guessed at.
func Project(raw RawEvent, opts SpanOptions) (Event, bool) {
	start := dateutil.Normalize(raw.EventDay)
	if !start.Valid() {
		return Event{}, false
	}

	span := ResolveSpan(start, RawEnd{
		Date:        dateutil.Normalize(raw.EventEndDay),
		Time:        raw.EventEndTime,
		Inclusive:   raw.InclusiveEnd,
		LegacyNoEnd: raw.LegacyNoEnd,
	}, opts)

	rec := RecurNone
	if raw.IsRecurring {
		rec = ParseRecurrence(raw.RecurrencePattern)
	}

	ev := Event{
		ID:              raw.EventID,
		Title:           StripTitleTags(raw.Title),
		Description:     raw.Description,
		StartDate:       start,
		StartTime:       raw.EventTime,
		EndDate:         span.EffectiveEnd,
		EndTime:         span.EndTime,
		OriginalEndDate: span.OriginalEnd,
		Type:            ParseType(raw.EventType),
		Recurrence:      rec,
	}
	return ev, true
}

// ProjectAll projects a batch, dropping records without a start date.
func ProjectAll(raws []RawEvent, opts SpanOptions) []Event {
	out := make([]Event, 0, len(raws))
	for _, raw := range raws {
		if ev, ok := Project(raw, opts); ok {
			out = append(out, ev)
		}
	}
	return out
}

// VisibleIn is the authoritative visibility predicate for a half-open
// window [windowStart, windowEnd): an event is visible iff it occupies at
// least one day inside the window. Single-day events occupy their start
// day; multi-day events occupy [start, effective end), so a span whose
// exclusive effective end equals the window start is not visible. Every
// view that filters events by range routes through this.
func VisibleIn(e Event, windowStart, windowEnd dateutil.Day) bool {
	if !e.StartDate.Valid() || !windowStart.Valid() || !windowEnd.Valid() {
		return false
	}
	if !e.StartDate.Before(windowEnd) {
		return false
	}
	last := e.StartDate
	if e.MultiDay() {
		last = e.EffectiveEnd().AddDays(-1)
	}
	return !last.Before(windowStart)
}

// FilterWindow keeps the events visible in [windowStart, windowEnd).
func FilterWindow(events []Event, windowStart, windowEnd dateutil.Day) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if VisibleIn(e, windowStart, windowEnd) {
			out = append(out, e)
		}
	}
	return out
}

// SegmentFor tags the event's visual role on one rendered day: start on the
// first day, end on the last rendered day (effective end minus one, since
// the grid end is exclusive), middle between, single otherwise.
func SegmentFor(e Event, day dateutil.Day) Segment {
	if !e.MultiDay() {
		return SegmentSingle
	}
	switch day {
	case e.StartDate:
		return SegmentStart
	case e.EffectiveEnd().AddDays(-1):
		return SegmentEnd
	default:
		return SegmentMiddle
	}
}

// OnDay reports whether the event occupies the given rendered day.
func OnDay(e Event, day dateutil.Day) bool {
	if !day.Valid() {
		return false
	}
	if !e.MultiDay() {
		return e.StartDate == day
	}
	return !day.Before(e.StartDate) && day.Before(e.EffectiveEnd())
}
