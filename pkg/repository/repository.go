// Package repository defines the data collaborators the calendar engine
// consumes: events, AI summaries, and diary entries. Implementations are
// opaque to the engine; failures carry a category so callers can log and
// degrade instead of crashing the UI.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
)

// Kind categorizes a repository failure.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindServer       Kind = "server"
	KindNotFound     Kind = "notfound"
)

// Error is the categorized failure every repository operation raises.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with a kind and operation tag.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the failure category, defaulting to server.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindServer
}

// Events is the backend event collaborator. Fetches return the wire shape;
// projection into the canonical model happens in the engine. Recurring
// records have their own fetch because their occurrences land on dates
// unrelated to the record's own start date.
type Events interface {
	FetchEventsForRange(ctx context.Context, start, end dateutil.Day) ([]event.RawEvent, error)
	FetchEventsForDate(ctx context.Context, date dateutil.Day) ([]event.RawEvent, error)
	FetchRecurringEvents(ctx context.Context) ([]event.RawEvent, error)
	CreateEvent(ctx context.Context, payload event.RawEvent) (event.RawEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// Summaries serves AI conversation summaries.
type Summaries interface {
	FetchSummariesForRange(ctx context.Context, start, end dateutil.Day) ([]summary.Summary, error)
	FetchSummariesForDate(ctx context.Context, date dateutil.Day) ([]summary.Summary, error)
	CreateSummary(ctx context.Context, s summary.Summary) (summary.Summary, error)
	DeleteSummariesForDate(ctx context.Context, date dateutil.Day) error
}

// Diaries serves daily and baby diary entries.
type Diaries interface {
	FetchDiariesForRange(ctx context.Context, start, end dateutil.Day) ([]diary.Entry, error)
	FetchDiaryForDate(ctx context.Context, date dateutil.Day, kind diary.Kind) (*diary.Entry, error)
	PutDiary(ctx context.Context, e diary.Entry) (diary.Entry, error)
	DeleteDiary(ctx context.Context, id string) error
}
