// Package modal manages the layered dialog state of the calendar: one
// primary day view, optionally one detail layer stacked on it, or a single
// standalone dialog. Illegal layer combinations cannot survive an
// operation; requests that would produce one are corrected to the nearest
// legal state and logged instead of failing.
package modal

import (
	"context"
	"fmt"
	"strings"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/log"
	"github.com/nestcal/nestcal/pkg/summary"
)

// State is the set of open layers, one bit per layer.
type State uint8

const (
	// LayerDayEvents is the primary day list; the only layer that can host
	// a stacked detail.
	LayerDayEvents State = 1 << iota
	LayerEventDetail
	LayerLLMDetail
	LayerAddEvent
	LayerDiaryTypeSelect
	LayerDailyDiary
	LayerBabyDiary
)

// StateClosed is the empty layer set.
const StateClosed State = 0

// secondary layers stack on LayerDayEvents; standalone layers never stack.
const (
	secondaryMask  = LayerEventDetail | LayerLLMDetail
	standaloneMask = LayerAddEvent | LayerDiaryTypeSelect | LayerDailyDiary | LayerBabyDiary
)

// legalStates whitelists every combination of simultaneously open layers.
var legalStates = map[State]bool{
	StateClosed:                        true,
	LayerDayEvents:                     true,
	LayerDayEvents | LayerEventDetail:  true,
	LayerDayEvents | LayerLLMDetail:    true,
	LayerAddEvent:                      true,
	LayerDiaryTypeSelect:               true,
	LayerDailyDiary:                    true,
	LayerBabyDiary:                     true,
}

// Has reports whether the layer bit is open.
func (s State) Has(layer State) bool { return s&layer != 0 }

func (s State) String() string {
	if s == StateClosed {
		return "closed"
	}
	names := []struct {
		bit  State
		name string
	}{
		{LayerDayEvents, "day-events"},
		{LayerEventDetail, "event-detail"},
		{LayerLLMDetail, "llm-detail"},
		{LayerAddEvent, "add-event"},
		{LayerDiaryTypeSelect, "diary-type-select"},
		{LayerDailyDiary, "daily-diary"},
		{LayerBabyDiary, "baby-diary"},
	}
	parts := make([]string, 0, 2)
	for _, n := range names {
		if s.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// Selection tracks what is currently selected, one pointer per category.
// Setting a new value supersedes the old one, never adds to it.
type Selection struct {
	Date    dateutil.Day
	Event   *event.Event
	Summary *summary.Summary
	Diary   *diary.Entry
}

// DayLoader fetches the data backing an open day view. Both fetches are
// independent; one failing must not block the other.
type DayLoader interface {
	EventsForDate(ctx context.Context, date dateutil.Day) ([]event.Event, error)
	DiaryForDate(ctx context.Context, date dateutil.Day) (*diary.Entry, error)
}

// SummaryDeleter removes the backing record when a summary is deleted from
// the detail layer.
type SummaryDeleter interface {
	DeleteSummariesForDate(ctx context.Context, date dateutil.Day) error
}

// Scheduler runs a function after the current rendering pass. The day view
// shell must paint before its data fetch resolves; the scheduler is how
// that ordering is kept without a magic timeout.
type Scheduler interface {
	Defer(fn func())
}

// SyncScheduler runs deferred work immediately; CLI call sites use it where
// there is no render loop to wait for.
type SyncScheduler struct{}

func (SyncScheduler) Defer(fn func()) { fn() }

// Config wires an Orchestrator.
type Config struct {
	Loader    DayLoader
	Deleter   SummaryDeleter
	Bus       *bus.Bus
	Scheduler Scheduler
}

// Orchestrator owns the modal layer set, the selection context, and the
// transient per-day data cache. All mutation happens on the single control
// thread between suspension points; deferred continuations re-enter through
// the scheduler on that same thread, so there is no locking here.
type Orchestrator struct {
	state State
	sel   Selection

	dayEvents []event.Event
	dayDiary  *diary.Entry
	summaries []summary.Summary

	// gen discards stale deferred day fetches after rapid navigation.
	gen int

	loader  DayLoader
	deleter SummaryDeleter
	bus     *bus.Bus
	sched   Scheduler
}

// New constructs an Orchestrator in the closed state.
func New(cfg Config) *Orchestrator {
	sched := cfg.Scheduler
	if sched == nil {
		sched = SyncScheduler{}
	}
	return &Orchestrator{
		loader:  cfg.Loader,
		deleter: cfg.Deleter,
		bus:     cfg.Bus,
		sched:   sched,
	}
}

// State returns the current layer set.
func (o *Orchestrator) State() State { return o.state }

// Selection returns the current selection context.
func (o *Orchestrator) Selection() Selection { return o.sel }

// DayEvents returns the events populated for the open day view.
func (o *Orchestrator) DayEvents() []event.Event { return o.dayEvents }

// DayDiary returns the diary entry populated for the open day view.
func (o *Orchestrator) DayDiary() *diary.Entry { return o.dayDiary }

// Summaries returns the in-memory summary collection for the loaded month.
func (o *Orchestrator) Summaries() []summary.Summary { return o.summaries }

// SetSummaries replaces the in-memory summary collection (fed by the month
// load).
func (o *Orchestrator) SetSummaries(all []summary.Summary) {
	o.summaries = all
}

// OpenDayEvents opens the primary day list for a date-like value. Invalid
// input is a silent no-op. Selecting the already-open day while nothing is
// stacked on it toggles the view closed. The shell opens immediately; the
// day's events and diary entry populate on a deferred pass so the dialog
// paints before the fetch resolves.
func (o *Orchestrator) OpenDayEvents(ctx context.Context, date any) {
	defer o.resetOnPanic("open day events")

	d := dateutil.Normalize(date)
	if !d.Valid() {
		log.Warn("modal: ignoring day select with invalid date", "input", fmt.Sprint(date))
		return
	}

	if o.state == LayerDayEvents && o.sel.Date == d {
		// Click-to-close convention.
		o.closeDayLocked()
		return
	}

	o.sel.Event = nil
	o.closeAllLayers()
	o.sel.Date = d
	o.state = LayerDayEvents
	o.ensureLegal("open day events")

	o.gen++
	gen := o.gen
	o.sched.Defer(func() {
		o.populateDay(ctx, d, gen)
	})
}

// populateDay runs after the day shell has rendered. Each sub-fetch is
// independently fault tolerant: a diary failure neither blocks nor rolls
// back the events fetch.
func (o *Orchestrator) populateDay(ctx context.Context, d dateutil.Day, gen int) {
	defer o.resetOnPanic("populate day")

	if gen != o.gen || !o.state.Has(LayerDayEvents) || o.sel.Date != d {
		log.Debug("modal: discarding stale day fetch", "date", d)
		return
	}
	if o.loader == nil {
		return
	}

	evs, err := o.loader.EventsForDate(ctx, d)
	if err != nil {
		log.Error("modal: day events fetch failed", err, "date", d)
		evs = nil
	}
	dy, err := o.loader.DiaryForDate(ctx, d)
	if err != nil {
		log.Error("modal: day diary fetch failed", err, "date", d)
		dy = nil
	}

	if gen != o.gen || !o.state.Has(LayerDayEvents) || o.sel.Date != d {
		return
	}
	o.dayEvents = evs
	o.dayDiary = dy
}

// OpenEventDetail stacks the event detail layer on the day view. Without an
// open day view it opens the day for the event's date instead and leaves
// the detail closed; a later explicit action opens it with date context.
func (o *Orchestrator) OpenEventDetail(ctx context.Context, ev event.Event) {
	if !o.state.Has(LayerDayEvents) {
		o.OpenDayEvents(ctx, ev.StartDate)
		return
	}
	o.state = (o.state &^ secondaryMask) | LayerEventDetail
	o.sel.Event = &ev
	o.ensureLegal("open event detail")
}

// OpenSummaryDetail stacks the AI summary detail layer on the day view,
// with the same no-day fallback as event detail.
func (o *Orchestrator) OpenSummaryDetail(ctx context.Context, s summary.Summary) {
	if !o.state.Has(LayerDayEvents) {
		o.OpenDayEvents(ctx, s.Date)
		return
	}
	o.state = (o.state &^ secondaryMask) | LayerLLMDetail
	o.sel.Summary = &s
	o.ensureLegal("open summary detail")
}

// CloseDetail closes any stacked detail layer, returning to the day view.
func (o *Orchestrator) CloseDetail() {
	if !o.state.Has(secondaryMask) {
		return
	}
	o.state &^= secondaryMask
	o.sel.Event = nil
	o.sel.Summary = nil
	o.ensureLegal("close detail")
}

// CloseDayEvents closes the day view and everything stacked on it, clearing
// the selection context and the transient per-day cache.
func (o *Orchestrator) CloseDayEvents() {
	o.closeDayLocked()
}

func (o *Orchestrator) closeDayLocked() {
	o.closeAllLayers()
	o.state = StateClosed
}

// OpenAddEvent opens the standalone event creation dialog, closing every
// other layer. The date seeds the new event's start.
func (o *Orchestrator) OpenAddEvent(date dateutil.Day) {
	o.openStandalone(LayerAddEvent, date)
}

// OpenDiaryTypeSelect opens the standalone diary kind chooser.
func (o *Orchestrator) OpenDiaryTypeSelect(date dateutil.Day) {
	o.openStandalone(LayerDiaryTypeSelect, date)
}

// OpenDailyDiary opens the standalone daily diary dialog.
func (o *Orchestrator) OpenDailyDiary(date dateutil.Day) {
	o.openStandalone(LayerDailyDiary, date)
}

// OpenBabyDiary opens the standalone baby diary dialog.
func (o *Orchestrator) OpenBabyDiary(date dateutil.Day) {
	o.openStandalone(LayerBabyDiary, date)
}

func (o *Orchestrator) openStandalone(layer State, date dateutil.Day) {
	o.closeAllLayers()
	d := dateutil.Normalize(date)
	if d.Valid() {
		o.sel.Date = d
	}
	o.state = layer
	o.ensureLegal("open standalone")
}

// Close dismisses whatever is open, falling back through the close rules: a
// stacked detail returns to the day view, anything else goes to closed.
func (o *Orchestrator) Close() {
	if o.state.Has(secondaryMask) && o.state.Has(LayerDayEvents) {
		o.CloseDetail()
		return
	}
	o.closeDayLocked()
}

// DeleteSummary removes the AI summary for a date. The detail layer closes
// first and control yields once so the visual close lands before the shared
// collection mutates; the removal then broadcasts a single deleted
// notification for decoupled listeners. Fire and forget, never a
// callback return.
func (o *Orchestrator) DeleteSummary(ctx context.Context, date dateutil.Day) {
	d := dateutil.Normalize(date)
	if !d.Valid() {
		log.Warn("modal: ignoring summary delete with invalid date", "input", string(date))
		return
	}

	if o.state.Has(LayerLLMDetail) {
		o.state &^= LayerLLMDetail
		o.ensureLegal("delete summary close")
	}

	o.sched.Defer(func() {
		if o.deleter != nil {
			if err := o.deleter.DeleteSummariesForDate(ctx, d); err != nil {
				// Best effort: the in-memory removal still proceeds so the
				// grid reflects the user's intent.
				log.Error("modal: summary delete failed", err, "date", d)
			}
		}
		o.summaries, _ = summary.RemoveByDate(o.summaries, d)
		o.sel.Summary = nil
		o.bus.Publish(bus.SummaryDeletedMsg{Date: d})
	})
}

// closeAllLayers drops every layer and clears selection plus the per-day
// cache. The layer set is left for the caller to set.
func (o *Orchestrator) closeAllLayers() {
	o.state = StateClosed
	o.sel = Selection{}
	o.dayEvents = nil
	o.dayDiary = nil
}

// ensureLegal corrects the layer set if an operation left it outside the
// whitelist. This should not happen; when it does it is a bug worth a
// warning, not a crash.
func (o *Orchestrator) ensureLegal(op string) {
	if legalStates[o.state] {
		return
	}
	was := o.state
	if o.state.Has(secondaryMask) && !o.state.Has(LayerDayEvents) {
		o.state &^= secondaryMask
	}
	if !legalStates[o.state] {
		o.state = StateClosed
		o.sel = Selection{}
	}
	log.Warn("modal: corrected illegal layer state", "op", op, "from", was.String(), "to", o.state.String())
}

// resetOnPanic fully resets the orchestrator if an operation panics: the
// day view closes and every selection pointer clears, leaving the nearest
// safe state instead of a half-open dialog.
func (o *Orchestrator) resetOnPanic(op string) {
	if r := recover(); r != nil {
		o.closeAllLayers()
		log.Error("modal: "+op+" failed, state reset", fmt.Errorf("%v", r))
	}
}
