package event

import (
	"github.com/nestcal/nestcal/pkg/dateutil"
)

// DefaultRepairPadding is the day count added when repairing legacy records
// that carry no end marker at all.
const DefaultRepairPadding = 3

// RawEnd describes the end marker of a raw record, pre-normalization.
type RawEnd struct {
	Date dateutil.Day
	Time string

	// Inclusive marks an upstream record using the inclusive end-date
	// convention; one day is added to produce the exclusive boundary.
	Inclusive bool

	// LegacyNoEnd marks a record whose source had no end field; the repair
	// padding heuristic applies instead of a real boundary.
	LegacyNoEnd bool
}

// SpanOptions configures span resolution.
type SpanOptions struct {
	// RepairPadding is the fallback day count for LegacyNoEnd records.
	// Zero means DefaultRepairPadding.
	RepairPadding int
}

// Span is the resolved rendering span of an event. EffectiveEnd uses the
// exclusive convention of the render grid; OriginalEnd preserves whatever
// the upstream record said so round-trips to the backend never submit the
// adjusted value.
type Span struct {
	EffectiveEnd dateutil.Day
	EndTime      string
	IsMultiDay   bool
	OriginalEnd  dateutil.Day
}

// ResolveSpan decides the rendering end boundary for an event starting at
// start. Policy, in order:
//
//  1. No end marker at all: single-day, effective end equals start. For
//     records flagged LegacyNoEnd the repair padding is added instead.
//  2. An end time-of-day is present: treat as precise. Effective end is the
//     end date (or start when absent) with that time; no padding.
//  3. Calendar-only end differing from start: multi-day. The end date passes
//     through as-is unless the record declares the inclusive convention, in
//     which case one day is added.
//
// An invalid start yields the zero Span; callers gate on start validity
// before resolving.
func ResolveSpan(start dateutil.Day, raw RawEnd, opts SpanOptions) Span {
	if !start.Valid() {
		return Span{}
	}

	end := dateutil.Normalize(raw.Date)

	if raw.LegacyNoEnd && !end.Valid() && raw.Time == "" {
		padding := opts.RepairPadding
		if padding <= 0 {
			padding = DefaultRepairPadding
		}
		return Span{
			EffectiveEnd: start.AddDays(padding),
			IsMultiDay:   padding > 0,
		}
	}

	if !end.Valid() && raw.Time == "" {
		return Span{EffectiveEnd: start, OriginalEnd: end}
	}

	if raw.Time != "" {
		// A wall-clock end is precise; only the calendar dates decide
		// multi-day status.
		if !end.Valid() {
			end = start
		}
		return Span{
			EffectiveEnd: end,
			EndTime:      raw.Time,
			IsMultiDay:   end != start,
			OriginalEnd:  dateutil.Normalize(raw.Date),
		}
	}

	if end == start {
		return Span{EffectiveEnd: start, OriginalEnd: end}
	}

	effective := end
	if raw.Inclusive {
		effective = end.AddDays(1)
	}
	return Span{
		EffectiveEnd: effective,
		IsMultiDay:   true,
		OriginalEnd:  end,
	}
}
