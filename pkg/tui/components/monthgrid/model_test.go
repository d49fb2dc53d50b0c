package monthgrid

import (
	"strings"
	"testing"
	"time"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
	"github.com/nestcal/nestcal/pkg/tui/theme"
)

func testModel() *Model {
	m := NewModel("grid", theme.Default().Grid)
	m.SetMonth(2025, time.March)
	return m
}

func TestSetDataMarksCells(t *testing.T) {
	m := testModel()
	m.SetData(
		[]event.Event{
			{ID: "a", Title: "checkup", StartDate: dateutil.Day("2025-03-10")},
			{ID: "b", Title: "class", StartDate: dateutil.Day("2025-03-20"), EndDate: dateutil.Day("2025-03-23")},
		},
		[]summary.Summary{{ID: "s", Date: dateutil.Day("2025-03-05"), Topic: "week"}},
	)

	if c := m.cells[10]; !c.HasEvent || c.InSpan {
		t.Fatalf("day 10 should be a single-day event cell, got %+v", c)
	}
	for _, d := range []int{20, 21, 22} {
		if c := m.cells[d]; !c.HasEvent || !c.InSpan {
			t.Fatalf("day %d should be inside the span, got %+v", d, c)
		}
	}
	if c := m.cells[23]; c.HasEvent {
		t.Fatalf("day 23 is past the exclusive end, got %+v", c)
	}
	if c := m.cells[5]; !c.HasSummary {
		t.Fatalf("day 5 should carry a summary badge, got %+v", c)
	}
}

func TestSetMonthClampsCursor(t *testing.T) {
	m := testModel()
	m.cursor = 31
	m.SetMonth(2025, time.February)
	if m.cursor != 28 {
		t.Fatalf("expected cursor clamped to 28, got %d", m.cursor)
	}
	if got := m.Cursor(); got != dateutil.Day("2025-02-28") {
		t.Fatalf("unexpected cursor day %s", got)
	}
}

func TestViewListsEveryDay(t *testing.T) {
	m := testModel()
	m.SetData(nil, nil)

	view := m.View()
	if !strings.Contains(view, "March 2025") {
		t.Fatalf("missing title in view:\n%s", view)
	}
	if !strings.Contains(view, "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("missing weekday header in view:\n%s", view)
	}
	if !strings.Contains(view, "31") {
		t.Fatalf("missing last day in view:\n%s", view)
	}
}
