package day

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/modal"
	"github.com/nestcal/nestcal/pkg/printers"
	"github.com/nestcal/nestcal/pkg/repository"
)

type Day struct {
	Events    repository.Events
	Summaries repository.Summaries
	Diaries   repository.Diaries
	Span      event.SpanOptions

	On     dateutil.Day
	ShowID bool
}

// Do opens the day through the modal orchestrator so the CLI and the TUI
// share one load path, then prints what the day view would show.
func (n *Day) Do(ctx context.Context) error {
	if n.Events == nil {
		return errors.New("can not show day, no event source")
	}
	if !n.On.Valid() {
		return errors.New("no date to show")
	}

	orch := modal.New(modal.Config{
		Loader: repository.DayView{
			Events:  n.Events,
			Diaries: n.Diaries,
			Span:    n.Span,
		},
		Deleter:   n.Summaries,
		Scheduler: modal.SyncScheduler{},
	})
	orch.OpenDayEvents(ctx, n.On)

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")
	pp.Title(n.On.String())
	pp.Events(n.On, orch.DayEvents()...)

	if n.Summaries != nil {
		sums, err := n.Summaries.FetchSummariesForDate(ctx, n.On)
		if err != nil {
			return err
		}
		if len(sums) > 0 {
			pp.Title("AI summaries")
			pp.Summaries(sums...)
		}
	}

	if d := orch.DayDiary(); d != nil {
		pp.Title("Diary")
		pp.Diary(d)
	}
	return nil
}
