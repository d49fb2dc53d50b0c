package modal

import (
	"context"
	"errors"
	"testing"

	"github.com/nestcal/nestcal/pkg/bus"
	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
)

// manualScheduler queues deferred work until the test drains it, standing
// in for the render loop.
type manualScheduler struct {
	queue []func()
}

func (s *manualScheduler) Defer(fn func()) { s.queue = append(s.queue, fn) }

func (s *manualScheduler) drain() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

type fakeLoader struct {
	events    map[dateutil.Day][]event.Event
	diaries   map[dateutil.Day]*diary.Entry
	eventsErr error
	diaryErr  error

	eventCalls int
	diaryCalls int
}

func (f *fakeLoader) EventsForDate(_ context.Context, d dateutil.Day) ([]event.Event, error) {
	f.eventCalls++
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events[d], nil
}

func (f *fakeLoader) DiaryForDate(_ context.Context, d dateutil.Day) (*diary.Entry, error) {
	f.diaryCalls++
	if f.diaryErr != nil {
		return nil, f.diaryErr
	}
	return f.diaries[d], nil
}

type fakeDeleter struct {
	err   error
	dates []dateutil.Day
}

func (f *fakeDeleter) DeleteSummariesForDate(_ context.Context, d dateutil.Day) error {
	f.dates = append(f.dates, d)
	return f.err
}

func harness(loader *fakeLoader) (*Orchestrator, *manualScheduler, *bus.Bus) {
	sched := &manualScheduler{}
	b := bus.New(8)
	o := New(Config{
		Loader:    loader,
		Deleter:   &fakeDeleter{},
		Bus:       b,
		Scheduler: sched,
	})
	return o, sched, b
}

func TestOpenDayEventsShellBeforeData(t *testing.T) {
	loader := &fakeLoader{
		events: map[dateutil.Day][]event.Event{
			"2024-03-05": {{ID: "e1", Title: "checkup", StartDate: "2024-03-05"}},
		},
	}
	o, sched, _ := harness(loader)

	o.OpenDayEvents(context.Background(), "2024-03-05T10:00:00")

	if o.State() != LayerDayEvents {
		t.Fatalf("state = %s, want day-events", o.State())
	}
	if o.Selection().Date != "2024-03-05" {
		t.Fatalf("selected date = %q", o.Selection().Date)
	}
	if loader.eventCalls != 0 {
		t.Fatal("fetch must not run before the deferred pass")
	}
	if len(o.DayEvents()) != 0 {
		t.Fatal("shell should open empty")
	}

	sched.drain()
	if len(o.DayEvents()) != 1 || o.DayEvents()[0].ID != "e1" {
		t.Fatalf("day events after populate: %+v", o.DayEvents())
	}
}

func TestOpenDayEventsInvalidInputIsNoop(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	o.OpenDayEvents(context.Background(), "not a date")
	o.OpenDayEvents(context.Background(), nil)
	sched.drain()
	if o.State() != StateClosed {
		t.Fatalf("state = %s, want closed", o.State())
	}
}

func TestToggleCloseSameDay(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()
	o.OpenDayEvents(context.Background(), "2024-03-05")
	if o.State() != StateClosed {
		t.Fatalf("second select of the open day should close, state = %s", o.State())
	}
	if o.Selection() != (Selection{}) {
		t.Fatalf("selection should reset on close: %+v", o.Selection())
	}
}

func TestOpenDifferentDayReplaces(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()
	o.OpenDayEvents(context.Background(), "2024-03-06")
	if o.State() != LayerDayEvents {
		t.Fatalf("state = %s", o.State())
	}
	if o.Selection().Date != "2024-03-06" {
		t.Fatalf("selected date = %q", o.Selection().Date)
	}
}

func TestEventDetailWithoutDayFallsBack(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	ev := event.Event{ID: "e1", StartDate: "2024-03-05"}

	o.OpenEventDetail(context.Background(), ev)

	if o.State() != LayerDayEvents {
		t.Fatalf("state = %s, want day-events only", o.State())
	}
	if o.State().Has(LayerEventDetail) {
		t.Fatal("detail layer must stay closed without prior day context")
	}
	if o.Selection().Date != "2024-03-05" {
		t.Fatalf("selection should show the event's date, got %q", o.Selection().Date)
	}
	sched.drain()
}

func TestEventDetailStacksAndCloses(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()

	ev := event.Event{ID: "e1", StartDate: "2024-03-05"}
	o.OpenEventDetail(context.Background(), ev)
	if o.State() != LayerDayEvents|LayerEventDetail {
		t.Fatalf("state = %s", o.State())
	}

	o.CloseDetail()
	if o.State() != LayerDayEvents {
		t.Fatalf("closing detail must return to the day view, state = %s", o.State())
	}
	if o.Selection().Event != nil {
		t.Fatal("selected event should clear with the detail layer")
	}
	if o.Selection().Date != "2024-03-05" {
		t.Fatal("day selection must survive a detail close")
	}
}

func TestSecondaryLayersAreExclusive(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()

	o.OpenEventDetail(context.Background(), event.Event{ID: "e1", StartDate: "2024-03-05"})
	o.OpenSummaryDetail(context.Background(), summary.Summary{ID: "s1", Date: "2024-03-05"})

	if o.State() != LayerDayEvents|LayerLLMDetail {
		t.Fatalf("summary detail should supersede event detail, state = %s", o.State())
	}
}

func TestStandaloneClosesEverything(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()
	o.OpenEventDetail(context.Background(), event.Event{ID: "e1", StartDate: "2024-03-05"})

	o.OpenAddEvent("2024-03-09")
	if o.State() != LayerAddEvent {
		t.Fatalf("state = %s, want add-event alone", o.State())
	}
	if o.Selection().Date != "2024-03-09" {
		t.Fatalf("selected date = %q", o.Selection().Date)
	}
	if o.Selection().Event != nil {
		t.Fatal("event selection should have cleared")
	}
}

func TestPartialDayFetchResilience(t *testing.T) {
	loader := &fakeLoader{
		events: map[dateutil.Day][]event.Event{
			"2024-03-05": {{ID: "e1", StartDate: "2024-03-05"}},
		},
		diaryErr: errors.New("diary backend down"),
	}
	o, sched, _ := harness(loader)

	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()

	if !o.State().Has(LayerDayEvents) {
		t.Fatal("modal must stay open through a diary fetch failure")
	}
	if len(o.DayEvents()) != 1 {
		t.Fatalf("events must populate despite the diary failure, got %d", len(o.DayEvents()))
	}
	if o.DayDiary() != nil {
		t.Fatal("failed diary fetch should leave the diary empty")
	}
}

func TestStaleDayFetchDiscarded(t *testing.T) {
	loader := &fakeLoader{
		events: map[dateutil.Day][]event.Event{
			"2024-03-05": {{ID: "old", StartDate: "2024-03-05"}},
			"2024-03-06": {{ID: "new", StartDate: "2024-03-06"}},
		},
	}
	o, sched, _ := harness(loader)

	// Navigate twice before any deferred fetch runs; only the newest
	// generation may land.
	o.OpenDayEvents(context.Background(), "2024-03-05")
	o.OpenDayEvents(context.Background(), "2024-03-06")
	sched.drain()

	if got := o.DayEvents(); len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("stale fetch leaked into state: %+v", got)
	}
}

func TestDeleteSummaryNotification(t *testing.T) {
	o, sched, b := harness(&fakeLoader{})
	o.SetSummaries([]summary.Summary{
		{ID: "s1", Date: "2024-03-05"},
		{ID: "s2", Date: "2024-03-06"},
	})
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()
	o.OpenSummaryDetail(context.Background(), summary.Summary{ID: "s1", Date: "2024-03-05"})

	o.DeleteSummary(context.Background(), "2024-03-05")

	// The detail layer closes before the collection mutates.
	if o.State() != LayerDayEvents {
		t.Fatalf("state after delete = %s, want day-events", o.State())
	}
	if len(o.Summaries()) != 2 {
		t.Fatal("collection must not mutate before the yield")
	}

	sched.drain()

	if len(o.Summaries()) != 1 || o.Summaries()[0].ID != "s2" {
		t.Fatalf("summaries after delete: %+v", o.Summaries())
	}
	if o.Selection().Summary != nil {
		t.Fatal("selected summary should clear")
	}

	select {
	case msg := <-b.Subscribe():
		del, ok := msg.(bus.SummaryDeletedMsg)
		if !ok {
			t.Fatalf("unexpected notification %T", msg)
		}
		if del.Date != "2024-03-05" {
			t.Fatalf("notification date = %q", del.Date)
		}
	default:
		t.Fatal("expected a summary-deleted notification")
	}
	select {
	case msg := <-b.Subscribe():
		t.Fatalf("expected exactly one notification, also got %v", msg)
	default:
	}
}

func TestDeleteSummaryBackendFailureStillRemoves(t *testing.T) {
	sched := &manualScheduler{}
	b := bus.New(8)
	deleter := &fakeDeleter{err: errors.New("server 500")}
	o := New(Config{Loader: &fakeLoader{}, Deleter: deleter, Bus: b, Scheduler: sched})
	o.SetSummaries([]summary.Summary{{ID: "s1", Date: "2024-03-05"}})

	o.DeleteSummary(context.Background(), "2024-03-05")
	sched.drain()

	if len(o.Summaries()) != 0 {
		t.Fatal("in-memory removal should proceed despite the backend failure")
	}
	if len(deleter.dates) != 1 || deleter.dates[0] != "2024-03-05" {
		t.Fatalf("backend delete calls: %+v", deleter.dates)
	}
}

func TestCloseFallsBackThroughLayers(t *testing.T) {
	o, sched, _ := harness(&fakeLoader{})
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()
	o.OpenEventDetail(context.Background(), event.Event{ID: "e1", StartDate: "2024-03-05"})

	o.Close()
	if o.State() != LayerDayEvents {
		t.Fatalf("first close should drop only the detail, state = %s", o.State())
	}
	o.Close()
	if o.State() != StateClosed {
		t.Fatalf("second close should reach closed, state = %s", o.State())
	}
}

func TestLoaderPanicResetsState(t *testing.T) {
	o, sched, _ := harness(nil)
	o.loader = panicLoader{}
	o.OpenDayEvents(context.Background(), "2024-03-05")
	sched.drain()

	if o.State() != StateClosed {
		t.Fatalf("panic during populate must reset, state = %s", o.State())
	}
	if o.Selection() != (Selection{}) {
		t.Fatalf("selection should be fully cleared: %+v", o.Selection())
	}
}

type panicLoader struct{}

func (panicLoader) EventsForDate(context.Context, dateutil.Day) ([]event.Event, error) {
	panic("boom")
}

func (panicLoader) DiaryForDate(context.Context, dateutil.Day) (*diary.Entry, error) {
	return nil, nil
}
