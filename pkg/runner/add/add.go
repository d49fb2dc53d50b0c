package add

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/monthload"
	"github.com/nestcal/nestcal/pkg/repository"
)

type Add struct {
	Events repository.Events
	Span   event.SpanOptions
	Bus    *bus.Bus

	Title       string
	On          dateutil.Day
	Time        string
	End         dateutil.Day
	Type        string
	Recurrence  string
	Description string
}

// Do creates the event through the month coordinator so the CLI shares the
// optimistic create path with the TUI.
func (n *Add) Do(ctx context.Context) error {
	if n.Events == nil {
		return errors.New("can not add, no event source")
	}
	if n.Title == "" {
		return errors.New("requires an event title")
	}
	if !n.On.Valid() {
		return errors.New("requires a date")
	}

	recur := event.ParseRecurrence(n.Recurrence)
	draft := event.RawEvent{
		Title:             n.Title,
		Description:       n.Description,
		EventDay:          n.On.String(),
		EventTime:         n.Time,
		EventEndDay:       n.End.String(),
		EventType:         string(event.ParseType(n.Type)),
		IsRecurring:       recur != event.RecurNone,
		RecurrencePattern: string(recur),
		InclusiveEnd:      n.End.Valid(),
	}

	coord := monthload.New(monthload.Config{
		Surface:  monthload.NopSurface{},
		Sources:  monthload.Sources{Events: n.Events},
		Bus:      n.Bus,
		SpanOpts: n.Span,
	})
	created, err := coord.CreateEvent(ctx, draft)
	if err != nil {
		return err
	}

	c := color.New(color.FgHiGreen)
	_, _ = c.Printf("added %q on %s", created.Title, created.StartDate)
	if created.MultiDay() {
		_, _ = c.Printf(" through %s", created.EffectiveEnd().AddDays(-1))
	}
	fmt.Println("")
	return nil
}
