// Package event defines the canonical calendar event model and the
// projection from the backend wire shape into it.
package event

import (
	"strings"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

// Recurrence is how often an event repeats.
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

// ParseRecurrence maps a wire pattern onto a known Recurrence, defaulting to
// none for anything unrecognized.
func ParseRecurrence(s string) Recurrence {
	switch Recurrence(strings.ToLower(strings.TrimSpace(s))) {
	case RecurDaily:
		return RecurDaily
	case RecurWeekly:
		return RecurWeekly
	case RecurMonthly:
		return RecurMonthly
	case RecurYearly:
		return RecurYearly
	default:
		return RecurNone
	}
}

// Type categorizes a pregnancy calendar event.
type Type string

const (
	TypeCheckup    Type = "checkup"
	TypeUltrasound Type = "ultrasound"
	TypeClass      Type = "class"
	TypeMilestone  Type = "milestone"
	TypeOther      Type = "other"
)

// ParseType maps a wire event type onto a known Type, defaulting to other.
func ParseType(s string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeCheckup:
		return TypeCheckup
	case TypeUltrasound:
		return TypeUltrasound
	case TypeClass:
		return TypeClass
	case TypeMilestone:
		return TypeMilestone
	default:
		return TypeOther
	}
}

// Color returns the ANSI 256 color code used when rendering this type.
func (t Type) Color() string {
	switch t {
	case TypeCheckup:
		return "39"
	case TypeUltrasound:
		return "212"
	case TypeClass:
		return "220"
	case TypeMilestone:
		return "120"
	default:
		return "246"
	}
}

// Segment tags an event's visual position within one rendered day of a
// multi-day span.
type Segment string

const (
	SegmentStart  Segment = "start"
	SegmentMiddle Segment = "middle"
	SegmentEnd    Segment = "end"
	SegmentSingle Segment = "single"
)

// Event is the canonical calendar event. EndDate carries the exclusive
// effective end used by the render grid; OriginalEndDate preserves the
// server's un-adjusted value so edits round-trip without the adjustment.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	StartDate   dateutil.Day `json:"startDate"`
	StartTime   string       `json:"startTime,omitempty"`
	EndDate     dateutil.Day `json:"endDate,omitempty"`
	EndTime     string       `json:"endTime,omitempty"`

	OriginalEndDate dateutil.Day `json:"originalEndDate,omitempty"`

	Type       Type       `json:"eventType"`
	Recurrence Recurrence `json:"recurrenceRule,omitempty"`
}

// EffectiveEnd is the exclusive end boundary for rendering. Events without
// an end collapse to their start.
func (e Event) EffectiveEnd() dateutil.Day {
	if !e.EndDate.Valid() {
		return e.StartDate
	}
	return e.EndDate
}

// MultiDay is recomputed from the calendar date fields, never stored
// authoritatively. Wall-clock times do not participate.
func (e Event) MultiDay() bool {
	end := e.EffectiveEnd()
	return end.Valid() && e.StartDate.Valid() && end != e.StartDate
}

// RawEvent is the fixed wire shape consumed from the backend. Field names at
// this boundary are owned by the collaborator; Project translates them into
// the canonical model.
type RawEvent struct {
	EventID           string `json:"event_id"`
	Title             string `json:"title"`
	Description       string `json:"description,omitempty"`
	EventDay          string `json:"event_day"`
	EventTime         string `json:"event_time,omitempty"`
	EventEndDay       string `json:"event_end_day,omitempty"`
	EventEndTime      string `json:"event_end_time,omitempty"`
	IsRecurring       bool   `json:"is_recurring"`
	RecurrencePattern string `json:"recurrence_pattern,omitempty"`
	EventType         string `json:"event_type"`

	// InclusiveEnd marks records whose event_end_day uses the inclusive
	// convention and therefore needs one day added for the exclusive grid.
	InclusiveEnd bool `json:"inclusive_end,omitempty"`

	// LegacyNoEnd marks records repaired from sources that carry no end
	// field at all (see repository ICS ingestion).
	LegacyNoEnd bool `json:"legacy_no_end,omitempty"`
}
