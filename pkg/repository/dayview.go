package repository

import (
	"context"
	"errors"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
)

// spanLookbackDays bounds how far back a non-recurring multi-day event can
// start and still cover the requested day. Recurring records are fetched
// separately and need no lookback.
const spanLookbackDays = 31

// FetchWindowEvents gathers every raw event that can occupy a day of the
// half-open window [start, end): records starting inside the range widened
// by the span lookback, plus all recurring records regardless of their
// start date. Records appearing in both fetches are collapsed by id.
func FetchWindowEvents(ctx context.Context, src Events, start, end dateutil.Day) ([]event.RawEvent, error) {
	raws, err := src.FetchEventsForRange(ctx, start.AddDays(-spanLookbackDays), end)
	if err != nil {
		return nil, err
	}
	recurring, err := src.FetchRecurringEvents(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(raws))
	for _, r := range raws {
		seen[r.EventID] = true
	}
	for _, r := range recurring {
		if r.EventID != "" && seen[r.EventID] {
			continue
		}
		raws = append(raws, r)
	}
	return raws, nil
}

// DayView adapts the event and diary repositories to the day-view loader
// contract: projected events covering one day, plus that day's diary entry.
type DayView struct {
	Events  Events
	Diaries Diaries
	Span    event.SpanOptions
}

// EventsForDate returns the projected events covering date, including
// multi-day spans that started earlier and recurring occurrences.
func (v DayView) EventsForDate(ctx context.Context, date dateutil.Day) ([]event.Event, error) {
	if v.Events == nil {
		return nil, nil
	}
	date = dateutil.Normalize(date)
	if !date.Valid() {
		return nil, E(KindServer, "day view", errors.New("invalid date"))
	}

	ws, we := date, date.AddDays(1)
	raws, err := FetchWindowEvents(ctx, v.Events, ws, we)
	if err != nil {
		return nil, err
	}

	expanded := event.ExpandAll(event.ProjectAll(raws, v.Span), ws, we)
	out := make([]event.Event, 0, len(expanded))
	for _, e := range expanded {
		if event.OnDay(e, date) {
			out = append(out, e)
		}
	}
	return out, nil
}

// DiaryForDate returns the daily entry when one exists, otherwise the baby
// entry. Absence is not an error.
func (v DayView) DiaryForDate(ctx context.Context, date dateutil.Day) (*diary.Entry, error) {
	if v.Diaries == nil {
		return nil, nil
	}
	e, err := v.Diaries.FetchDiaryForDate(ctx, date, diary.KindDaily)
	if err != nil || e != nil {
		return e, err
	}
	return v.Diaries.FetchDiaryForDate(ctx, date, diary.KindBaby)
}
