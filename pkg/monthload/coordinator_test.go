package monthload

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/modal"
	"github.com/nestcal/nestcal/pkg/repository"
	"github.com/nestcal/nestcal/pkg/summary"
)

type recordingSurface struct {
	mu    sync.Mutex
	calls []string
	last  []event.Event
}

func (s *recordingSurface) ClearEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "clear")
	s.last = nil
}

func (s *recordingSurface) AddEvents(events []event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "add")
	s.last = append(s.last, events...)
}

func (s *recordingSurface) GoTo(dateutil.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "goto")
}

func (s *recordingSurface) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "refresh")
}

func (s *recordingSurface) snapshot() ([]string, []event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...), append([]event.Event(nil), s.last...)
}

type fakeEvents struct {
	raws  []event.RawEvent
	err   error
	block chan struct{} // when set, FetchEventsForRange waits on it
}

func (f *fakeEvents) FetchEventsForRange(ctx context.Context, start, end dateutil.Day) ([]event.RawEvent, error) {
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.raws, nil
}

func (f *fakeEvents) FetchEventsForDate(ctx context.Context, date dateutil.Day) ([]event.RawEvent, error) {
	return f.raws, f.err
}

func (f *fakeEvents) CreateEvent(ctx context.Context, payload event.RawEvent) (event.RawEvent, error) {
	if f.err != nil {
		return event.RawEvent{}, f.err
	}
	payload.EventID = "created"
	return payload, nil
}

func (f *fakeEvents) FetchRecurringEvents(ctx context.Context) ([]event.RawEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]event.RawEvent, 0)
	for _, raw := range f.raws {
		if raw.IsRecurring {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (f *fakeEvents) DeleteEvent(ctx context.Context, id string) error { return f.err }

// rangedEvents honors the fetch range, unlike fakeEvents which returns its
// whole fixture for any window.
type rangedEvents struct {
	fakeEvents
}

func (f *rangedEvents) FetchEventsForRange(ctx context.Context, start, end dateutil.Day) ([]event.RawEvent, error) {
	out := make([]event.RawEvent, 0)
	for _, raw := range f.raws {
		day := dateutil.Normalize(raw.EventDay)
		if !day.Before(start) && day.Before(end) {
			out = append(out, raw)
		}
	}
	return out, nil
}

type fakeSummaries struct {
	sums []summary.Summary
	err  error
}

func (f *fakeSummaries) FetchSummariesForRange(ctx context.Context, start, end dateutil.Day) ([]summary.Summary, error) {
	return f.sums, f.err
}

func (f *fakeSummaries) FetchSummariesForDate(ctx context.Context, date dateutil.Day) ([]summary.Summary, error) {
	return f.sums, f.err
}

func (f *fakeSummaries) CreateSummary(ctx context.Context, s summary.Summary) (summary.Summary, error) {
	return s, f.err
}

func (f *fakeSummaries) DeleteSummariesForDate(ctx context.Context, date dateutil.Day) error {
	return f.err
}

type fakeDiaries struct {
	entries []diary.Entry
	err     error
}

func (f *fakeDiaries) FetchDiariesForRange(ctx context.Context, start, end dateutil.Day) ([]diary.Entry, error) {
	return f.entries, f.err
}

func (f *fakeDiaries) FetchDiaryForDate(ctx context.Context, date dateutil.Day, kind diary.Kind) (*diary.Entry, error) {
	return nil, f.err
}

func (f *fakeDiaries) PutDiary(ctx context.Context, e diary.Entry) (diary.Entry, error) {
	return e, f.err
}

func (f *fakeDiaries) DeleteDiary(ctx context.Context, id string) error { return f.err }

func TestLoadMonthAtomicReplacement(t *testing.T) {
	surface := &recordingSurface{}
	c := New(Config{
		Surface: surface,
		Sources: Sources{
			Events: &fakeEvents{raws: []event.RawEvent{
				{EventID: "e1", Title: "checkup", EventDay: "2024-03-05"},
				{EventID: "out", Title: "elsewhere", EventDay: "2024-05-01"},
			}},
			Summaries: &fakeSummaries{},
			Diaries:   &fakeDiaries{},
		},
	})

	got := c.LoadMonth(context.Background(), 2024, time.March)
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("projected events: %+v", got)
	}

	calls, last := surface.snapshot()
	if len(calls) < 2 || calls[len(calls)-2] != "clear" || calls[len(calls)-1] != "add" {
		t.Fatalf("surface must clear before adding, calls = %v", calls)
	}
	if len(last) != 1 {
		t.Fatalf("surface holds %d events, want 1", len(last))
	}
}

func TestLoadMonthExpandsRecurringFromEarlierMonths(t *testing.T) {
	// The weekly record starts in January, past any lookback widening of
	// March's fetch range; its March occurrences must still surface.
	events := &rangedEvents{fakeEvents: fakeEvents{raws: []event.RawEvent{
		{
			EventID:           "yoga",
			Title:             "prenatal yoga",
			EventDay:          "2024-01-02",
			IsRecurring:       true,
			RecurrencePattern: "weekly",
		},
	}}}
	c := New(Config{Sources: Sources{Events: events}})

	got := c.LoadMonth(context.Background(), 2024, time.March)
	if len(got) != 4 {
		t.Fatalf("got %d march occurrences, want 4: %+v", len(got), got)
	}
	want := []dateutil.Day{"2024-03-05", "2024-03-12", "2024-03-19", "2024-03-26"}
	for i, occ := range got {
		if occ.StartDate != want[i] {
			t.Fatalf("occurrence %d on %q, want %q", i, occ.StartDate, want[i])
		}
	}
}

func TestLoadMonthPartialFailure(t *testing.T) {
	surface := &recordingSurface{}
	c := New(Config{
		Surface: surface,
		Sources: Sources{
			Events:    &fakeEvents{err: repository.E(repository.KindNetwork, "fetch", errors.New("down"))},
			Summaries: &fakeSummaries{sums: []summary.Summary{{ID: "s1", Date: "2024-03-05"}}},
			Diaries:   &fakeDiaries{entries: []diary.Entry{{ID: "d1", Date: "2024-03-05", Kind: diary.KindDaily}}},
		},
	})

	got := c.LoadMonth(context.Background(), 2024, time.March)
	if len(got) != 0 {
		t.Fatalf("failed events fetch must surface as empty, got %+v", got)
	}
	if len(c.Summaries()) != 1 || len(c.Diaries()) != 1 {
		t.Fatal("other categories must still load")
	}
}

func TestLoadMonthFeedsModal(t *testing.T) {
	orch := modal.New(modal.Config{})
	c := New(Config{
		Modal: orch,
		Sources: Sources{
			Summaries: &fakeSummaries{sums: []summary.Summary{{ID: "s1", Date: "2024-03-05"}}},
		},
	})
	c.LoadMonth(context.Background(), 2024, time.March)
	if len(orch.Summaries()) != 1 {
		t.Fatal("month load should feed summaries to the modal orchestrator")
	}
}

func TestStaleMonthLoadDiscarded(t *testing.T) {
	block := make(chan struct{})
	events := &seqEvents{
		block:   block,
		started: make(chan struct{}),
		byMonth: map[string][]event.RawEvent{
			"2024-03": {{EventID: "march", EventDay: "2024-03-05"}},
			"2024-04": {{EventID: "april", EventDay: "2024-04-10"}},
		},
	}
	surface := &recordingSurface{}
	c := New(Config{Surface: surface, Sources: Sources{Events: events}})

	done := make(chan []event.Event)
	go func() {
		done <- c.LoadMonth(context.Background(), 2024, time.March)
	}()
	<-events.started

	// A second navigation supersedes the first while it is still in
	// flight.
	c.LoadMonth(context.Background(), 2024, time.April)

	close(block)
	if got := <-done; got != nil {
		t.Fatalf("superseded load must return nil, got %+v", got)
	}

	if got := c.Events(); len(got) != 1 || got[0].ID != "april" {
		t.Fatalf("stale month leaked into state: %+v", got)
	}
}

// seqEvents blocks the first range fetch until released so a later load can
// overtake it.
type seqEvents struct {
	fakeEvents
	block   chan struct{}
	started chan struct{}
	byMonth map[string][]event.RawEvent

	mu    sync.Mutex
	calls int
}

func (s *seqEvents) FetchEventsForRange(ctx context.Context, start, end dateutil.Day) ([]event.RawEvent, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()
	if first {
		if s.started != nil {
			close(s.started)
		}
		<-s.block
	}
	return s.byMonth[string(start)[:7]], nil
}

func TestNavigationSequence(t *testing.T) {
	surface := &recordingSurface{}
	c := New(Config{Surface: surface, Sources: Sources{Events: &fakeEvents{}}})
	c.LoadMonth(context.Background(), 2024, time.March)

	c.Next(context.Background())
	if year, month := c.Month(); year != 2024 || month != time.April {
		t.Fatalf("after next: %d-%s", year, month)
	}
	c.Prev(context.Background())
	if year, month := c.Month(); year != 2024 || month != time.March {
		t.Fatalf("after prev: %d-%s", year, month)
	}

	calls, _ := surface.snapshot()
	// Every navigation moves the grid, replaces events, then refreshes.
	var navCalls []string
	for _, call := range calls {
		if call == "goto" || call == "refresh" {
			navCalls = append(navCalls, call)
		}
	}
	if len(navCalls) != 4 || navCalls[0] != "goto" || navCalls[1] != "refresh" {
		t.Fatalf("navigation surface calls = %v", navCalls)
	}
}

func TestDecemberRollover(t *testing.T) {
	c := New(Config{Sources: Sources{}})
	c.LoadMonth(context.Background(), 2024, time.December)
	c.Next(context.Background())
	if year, month := c.Month(); year != 2025 || month != time.January {
		t.Fatalf("after december next: %d-%s", year, month)
	}
}

func TestOptimisticCreateAndDelete(t *testing.T) {
	surface := &recordingSurface{}
	c := New(Config{Surface: surface, Sources: Sources{Events: &fakeEvents{}}})
	c.LoadMonth(context.Background(), time.Now().Year(), time.Now().Month())

	ev, err := c.CreateEvent(context.Background(), event.RawEvent{Title: "birth class", EventDay: "2024-03-09"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ev.ID != "created" {
		t.Fatalf("created id = %q", ev.ID)
	}
	if got := c.Events(); len(got) != 1 {
		t.Fatalf("optimistic insert missing: %+v", got)
	}

	if err := c.DeleteEvent(context.Background(), "created"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := c.Events(); len(got) != 0 {
		t.Fatalf("optimistic removal missing: %+v", got)
	}
}
