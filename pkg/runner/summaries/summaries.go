package summaries

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/modal"
	"github.com/nestcal/nestcal/pkg/printers"
	"github.com/nestcal/nestcal/pkg/repository"
)

type List struct {
	Summaries repository.Summaries

	On dateutil.Day
}

func (n *List) Do(ctx context.Context) error {
	if n.Summaries == nil {
		return errors.New("can not list, no summary source")
	}
	if !n.On.Valid() {
		return errors.New("no date to list")
	}

	sums, err := n.Summaries.FetchSummariesForDate(ctx, n.On)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.TitleWithCount("AI summaries", len(sums))
	pp.Summaries(sums...)
	return nil
}

type Delete struct {
	Summaries repository.Summaries
	Bus       *bus.Bus

	On dateutil.Day
}

// Do removes a day's summaries through the modal orchestrator so the bus
// notification fires exactly as it would from the detail overlay.
func (n *Delete) Do(ctx context.Context) error {
	if n.Summaries == nil {
		return errors.New("can not delete, no summary source")
	}
	if !n.On.Valid() {
		return errors.New("no date to delete")
	}

	orch := modal.New(modal.Config{
		Deleter:   n.Summaries,
		Bus:       n.Bus,
		Scheduler: modal.SyncScheduler{},
	})
	orch.DeleteSummary(ctx, n.On)

	fmt.Printf("deleted summaries for %s\n", n.On)
	return nil
}
