package event

import (
	"testing"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

func TestProjectTranslatesWireShape(t *testing.T) {
	raw := RawEvent{
		EventID:           "ev-1",
		Title:             "[weekly] prenatal yoga",
		Description:       "bring a mat",
		EventDay:          "2024-03-05T09:00:00",
		EventTime:         "09:00",
		IsRecurring:       true,
		RecurrencePattern: "WEEKLY",
		EventType:         "Class",
	}
	ev, ok := Project(raw, SpanOptions{})
	if !ok {
		t.Fatal("expected projection to succeed")
	}
	if ev.Title != "prenatal yoga" {
		t.Fatalf("bracketed tag not stripped: %q", ev.Title)
	}
	if ev.StartDate != "2024-03-05" {
		t.Fatalf("start not normalized: %q", ev.StartDate)
	}
	if ev.Type != TypeClass {
		t.Fatalf("type = %q", ev.Type)
	}
	if ev.Recurrence != RecurWeekly {
		t.Fatalf("recurrence = %q", ev.Recurrence)
	}
	if ev.MultiDay() {
		t.Fatal("single-day event reported multi-day")
	}
}

func TestProjectDefaults(t *testing.T) {
	ev, ok := Project(RawEvent{EventID: "x", Title: "?", EventDay: "2024-03-05", EventType: "mystery"}, SpanOptions{})
	if !ok {
		t.Fatal("expected projection to succeed")
	}
	if ev.Type != TypeOther {
		t.Fatalf("unknown type should default to other, got %q", ev.Type)
	}
	if ev.Recurrence != RecurNone {
		t.Fatalf("recurrence should default to none, got %q", ev.Recurrence)
	}
}

func TestProjectDropsMissingStart(t *testing.T) {
	if _, ok := Project(RawEvent{EventID: "x", EventDay: "nope"}, SpanOptions{}); ok {
		t.Fatal("record without a usable start must be dropped")
	}
	if got := ProjectAll([]RawEvent{{EventDay: ""}, {EventID: "a", EventDay: "2024-03-05"}}, SpanOptions{}); len(got) != 1 {
		t.Fatalf("ProjectAll kept %d records, want 1", len(got))
	}
}

func TestVisibilityPredicate(t *testing.T) {
	span := Event{ID: "s", StartDate: "2024-03-05", EndDate: "2024-03-07"}

	if !VisibleIn(span, "2024-03-06", "2024-03-10") {
		t.Fatal("overlapping window should include the event")
	}
	if VisibleIn(span, "2024-03-08", "2024-03-10") {
		t.Fatal("window past the effective end should exclude the event")
	}
	// The effective end is exclusive: a span ending exactly where the
	// window starts occupies no day of it.
	if VisibleIn(span, "2024-03-07", "2024-03-10") {
		t.Fatal("window starting at the exclusive effective end must exclude the event")
	}
	if !VisibleIn(span, "2024-03-06", "2024-03-07") {
		t.Fatal("window covering the span's last occupied day should include the event")
	}
	single := Event{ID: "d", StartDate: "2024-03-07"}
	if VisibleIn(single, "2024-03-01", "2024-03-07") {
		t.Fatal("window end is exclusive of the event start")
	}
	if !VisibleIn(single, "2024-03-07", "2024-03-08") {
		t.Fatal("single-day event on the window start should be included")
	}
}

func TestSegmentFor(t *testing.T) {
	span := Event{StartDate: "2024-03-05", EndDate: "2024-03-08"}
	cases := map[string]Segment{
		"2024-03-05": SegmentStart,
		"2024-03-06": SegmentMiddle,
		"2024-03-07": SegmentEnd, // effective end minus one render unit
	}
	for day, want := range cases {
		if got := SegmentFor(span, dateutil.Day(day)); got != want {
			t.Fatalf("SegmentFor(%s) = %q, want %q", day, got, want)
		}
	}
	single := Event{StartDate: "2024-03-05"}
	if got := SegmentFor(single, "2024-03-05"); got != SegmentSingle {
		t.Fatalf("single-day segment = %q", got)
	}
}

func TestOnDay(t *testing.T) {
	span := Event{StartDate: "2024-03-05", EndDate: "2024-03-08"}
	if !OnDay(span, "2024-03-05") || !OnDay(span, "2024-03-07") {
		t.Fatal("span should occupy interior days")
	}
	if OnDay(span, "2024-03-08") {
		t.Fatal("exclusive end day must not be occupied")
	}
	if OnDay(span, "") {
		t.Fatal("sentinel day is never occupied")
	}
}

func TestStripTitleTags(t *testing.T) {
	cases := map[string]string{
		"[weekly] checkup":        "checkup",
		"scan [monthly]":          "scan",
		"a [x] b":                 "a b",
		"no tags here":            "no tags here",
		"[daily][extra] vitamins": "vitamins",
	}
	for in, want := range cases {
		if got := StripTitleTags(in); got != want {
			t.Fatalf("StripTitleTags(%q) = %q, want %q", in, got, want)
		}
	}
}
