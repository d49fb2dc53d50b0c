package ui

import (
	"context"
	"errors"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/modal"
	"github.com/nestcal/nestcal/pkg/monthload"
	"github.com/nestcal/nestcal/pkg/repository"
	"github.com/nestcal/nestcal/pkg/tui/app"
	"github.com/nestcal/nestcal/pkg/tui/surface"
)

type UI struct {
	Events    repository.Events
	Summaries repository.Summaries
	Diaries   repository.Diaries
	Span      event.SpanOptions
	DueDate   dateutil.Day
}

// Do wires the full interactive calendar: surface, orchestrator, month
// coordinator, notification bus, and the Bubble Tea program on top.
func (d *UI) Do(ctx context.Context) error {
	if d.Events == nil {
		return errors.New("can not start ui, no event source")
	}

	notes := bus.New(0)
	surf := surface.New("surface")
	sched := app.NewQueueScheduler()

	orch := modal.New(modal.Config{
		Loader: repository.DayView{
			Events:  d.Events,
			Diaries: d.Diaries,
			Span:    d.Span,
		},
		Deleter:   d.Summaries,
		Bus:       notes,
		Scheduler: sched,
	})

	coord := monthload.New(monthload.Config{
		Surface: surf,
		Sources: monthload.Sources{
			Events:    d.Events,
			Summaries: d.Summaries,
			Diaries:   d.Diaries,
		},
		Modal:    orch,
		Bus:      notes,
		SpanOpts: d.Span,
	})

	return app.Run(app.Config{
		Surface:      surf,
		Coordinator:  coord,
		Orchestrator: orch,
		Scheduler:    sched,
		Bus:          notes,
		Diaries:      d.Diaries,
		DueDate:      d.DueDate,
	})
}
