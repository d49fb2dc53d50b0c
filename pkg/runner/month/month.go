package month

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/monthload"
	"github.com/nestcal/nestcal/pkg/printers"
	"github.com/nestcal/nestcal/pkg/repository"
)

type Month struct {
	Events    repository.Events
	Summaries repository.Summaries
	Diaries   repository.Diaries
	Span      event.SpanOptions

	Year   int
	Month  time.Month
	Long   bool
	ShowID bool
}

func (n *Month) Do(ctx context.Context) error {
	if n.Events == nil {
		return errors.New("can not list, no event source")
	}

	coord := monthload.New(monthload.Config{
		Surface: monthload.NopSurface{},
		Sources: monthload.Sources{
			Events:    n.Events,
			Summaries: n.Summaries,
			Diaries:   n.Diaries,
		},
		SpanOpts: n.Span,
	})
	evs := coord.LoadMonth(ctx, n.Year, n.Month)

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	then := time.Date(n.Year, n.Month, 1, 0, 0, 0, 0, time.Local)

	fmt.Println("")
	if n.Long {
		pp.CalendarLong(then, evs...)
	} else {
		pp.Calendar(then, evs...)
	}

	if sums := coord.Summaries(); len(sums) > 0 {
		pp.Title("AI summaries")
		pp.Summaries(sums...)
	}
	return nil
}
