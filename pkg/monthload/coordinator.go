// Package monthload orchestrates loading one visible month: events, AI
// summaries, and diary entries fetched concurrently, projected, and handed
// to the render surface as one atomic replacement.
package monthload

import (
	"context"
	"sync"
	"time"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/log"
	"github.com/nestcal/nestcal/pkg/modal"
	"github.com/nestcal/nestcal/pkg/repository"
	"github.com/nestcal/nestcal/pkg/summary"
)

// RenderSurface is the injected grid abstraction. The coordinator never
// reaches past this contract into presentation internals.
type RenderSurface interface {
	ClearEvents()
	AddEvents(events []event.Event)
	GoTo(date dateutil.Day)
	Refresh()
}

// NopSurface discards all surface calls; CLI runners that print instead of
// rendering use it.
type NopSurface struct{}

func (NopSurface) ClearEvents()            {}
func (NopSurface) AddEvents([]event.Event) {}
func (NopSurface) GoTo(dateutil.Day)       {}
func (NopSurface) Refresh()                {}

// Sources bundles the three data collaborators.
type Sources struct {
	Events    repository.Events
	Summaries repository.Summaries
	Diaries   repository.Diaries
}

// Config wires a Coordinator.
type Config struct {
	Surface  RenderSurface
	Sources  Sources
	Modal    *modal.Orchestrator
	Bus      *bus.Bus
	SpanOpts event.SpanOptions
}

// Coordinator owns the shared month state. LoadMonth may be invoked from a
// render-loop command goroutine, so the small amount of shared state is
// mutex guarded; the fetches themselves join before any of it mutates.
type Coordinator struct {
	surface RenderSurface
	src     Sources
	modal   *modal.Orchestrator
	bus     *bus.Bus
	span    event.SpanOptions

	mu        sync.Mutex
	year      int
	month     time.Month
	gen       int
	events    []event.Event
	summaries []summary.Summary
	diaries   []diary.Entry
}

// New constructs a Coordinator anchored on the current month.
func New(cfg Config) *Coordinator {
	surface := cfg.Surface
	if surface == nil {
		surface = NopSurface{}
	}
	now := time.Now()
	return &Coordinator{
		surface: surface,
		src:     cfg.Sources,
		modal:   cfg.Modal,
		bus:     cfg.Bus,
		span:    cfg.SpanOpts,
		year:    now.Year(),
		month:   now.Month(),
	}
}

// Month returns the currently loaded year and month.
func (c *Coordinator) Month() (int, time.Month) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.year, c.month
}

// Events returns the last loaded, projected event list.
func (c *Coordinator) Events() []event.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events
}

// Summaries returns the last loaded summary list.
func (c *Coordinator) Summaries() []summary.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaries
}

// Diaries returns the last loaded diary list.
func (c *Coordinator) Diaries() []diary.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.diaries
}

// LoadMonth fetches events, summaries, and diaries for the month
// concurrently, joins all three, and replaces the surface contents in one
// clear-then-add pass. A failed category logs and renders empty without
// blocking the others. Late results from a superseded load are discarded.
func (c *Coordinator) LoadMonth(ctx context.Context, year int, month time.Month) []event.Event {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.year = year
	c.month = month
	c.mu.Unlock()

	start, end := dateutil.MonthWindow(year, month)

	var (
		raws  []event.RawEvent
		sums  []summary.Summary
		diars []diary.Entry

		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		if c.src.Events == nil {
			return
		}
		got, err := repository.FetchWindowEvents(ctx, c.src.Events, start, end)
		if err != nil {
			log.Error("monthload: events fetch failed", err, "month", start)
			return
		}
		raws = got
	}()
	go func() {
		defer wg.Done()
		if c.src.Summaries == nil {
			return
		}
		got, err := c.src.Summaries.FetchSummariesForRange(ctx, start, end)
		if err != nil {
			log.Error("monthload: summaries fetch failed", err, "month", start)
			return
		}
		sums = got
	}()
	go func() {
		defer wg.Done()
		if c.src.Diaries == nil {
			return
		}
		got, err := c.src.Diaries.FetchDiariesForRange(ctx, start, end)
		if err != nil {
			log.Error("monthload: diaries fetch failed", err, "month", start)
			return
		}
		diars = got
	}()
	wg.Wait()

	projected := event.FilterWindow(
		event.ExpandAll(event.ProjectAll(raws, c.span), start, end),
		start, end,
	)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		log.Debug("monthload: discarding stale month load", "month", start)
		return nil
	}
	c.events = projected
	c.summaries = sums
	c.diaries = diars
	c.mu.Unlock()

	// Atomic replacement: old events fully cleared before the new batch.
	c.surface.ClearEvents()
	c.surface.AddEvents(projected)
	if c.modal != nil {
		c.modal.SetSummaries(sums)
	}
	return projected
}

// Reload refreshes the currently loaded month.
func (c *Coordinator) Reload(ctx context.Context) []event.Event {
	year, month := c.Month()
	return c.moveTo(ctx, year, month)
}

// Next advances one month, moves the grid, loads, and forces a re-render.
func (c *Coordinator) Next(ctx context.Context) []event.Event {
	return c.navigate(ctx, 1)
}

// Prev steps back one month.
func (c *Coordinator) Prev(ctx context.Context) []event.Event {
	return c.navigate(ctx, -1)
}

// GoToMonth jumps to an arbitrary month.
func (c *Coordinator) GoToMonth(ctx context.Context, year int, month time.Month) []event.Event {
	return c.moveTo(ctx, year, month)
}

// Today jumps to the current month.
func (c *Coordinator) Today(ctx context.Context) []event.Event {
	now := time.Now()
	return c.moveTo(ctx, now.Year(), now.Month())
}

func (c *Coordinator) navigate(ctx context.Context, delta int) []event.Event {
	year, month := c.Month()
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return c.moveTo(ctx, next.Year(), next.Month())
}

func (c *Coordinator) moveTo(ctx context.Context, year int, month time.Month) []event.Event {
	first, _ := dateutil.MonthWindow(year, month)
	c.surface.GoTo(first)
	events := c.LoadMonth(ctx, year, month)
	c.surface.Refresh()
	return events
}

// CreateEvent persists a new event and inserts it optimistically: the
// surface gets the projected event immediately, without a month reload.
func (c *Coordinator) CreateEvent(ctx context.Context, payload event.RawEvent) (event.Event, error) {
	if c.src.Events == nil {
		return event.Event{}, repository.E(repository.KindServer, "create event", nil)
	}
	created, err := c.src.Events.CreateEvent(ctx, payload)
	if err != nil {
		return event.Event{}, err
	}
	ev, ok := event.Project(created, c.span)
	if !ok {
		return event.Event{}, repository.E(repository.KindServer, "project created event", nil)
	}

	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()

	c.surface.AddEvents([]event.Event{ev})
	c.surface.Refresh()
	if c.bus != nil {
		c.bus.Publish(bus.EventsChangedMsg{Date: ev.StartDate, Action: "create"})
	}
	return ev, nil
}

// DeleteEvent removes an event and drops it optimistically from the
// rendered set.
func (c *Coordinator) DeleteEvent(ctx context.Context, id string) error {
	if c.src.Events == nil {
		return repository.E(repository.KindServer, "delete event", nil)
	}
	if err := c.src.Events.DeleteEvent(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	kept := c.events[:0]
	var removed dateutil.Day
	for _, ev := range c.events {
		if ev.ID == id {
			removed = ev.StartDate
			continue
		}
		kept = append(kept, ev)
	}
	c.events = kept
	remaining := append([]event.Event(nil), kept...)
	c.mu.Unlock()

	c.surface.ClearEvents()
	c.surface.AddEvents(remaining)
	c.surface.Refresh()
	if c.bus != nil {
		c.bus.Publish(bus.EventsChangedMsg{Date: removed, Action: "delete"})
	}
	return nil
}
