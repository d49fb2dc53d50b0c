package event

import (
	"testing"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

func TestResolveSpanSingleDay(t *testing.T) {
	span := ResolveSpan("2024-03-05", RawEnd{}, SpanOptions{})
	if span.IsMultiDay {
		t.Fatal("no end marker should be single-day")
	}
	if span.EffectiveEnd != "2024-03-05" {
		t.Fatalf("effective end = %q, want start", span.EffectiveEnd)
	}
	if span.OriginalEnd != dateutil.None {
		t.Fatalf("original end should stay empty, got %q", span.OriginalEnd)
	}
}

func TestResolveSpanMultiDayExclusivePassthrough(t *testing.T) {
	span := ResolveSpan("2024-03-05", RawEnd{Date: "2024-03-07"}, SpanOptions{})
	if !span.IsMultiDay {
		t.Fatal("differing calendar end should be multi-day")
	}
	// Exclusive convention upstream: the boundary passes through unchanged.
	if span.EffectiveEnd != "2024-03-07" {
		t.Fatalf("effective end = %q, want 2024-03-07", span.EffectiveEnd)
	}
	if span.OriginalEnd != "2024-03-07" {
		t.Fatalf("original end = %q, want unadjusted 2024-03-07", span.OriginalEnd)
	}
}

func TestResolveSpanInclusiveConventionAddsOneDay(t *testing.T) {
	span := ResolveSpan("2024-03-05", RawEnd{Date: "2024-03-07", Inclusive: true}, SpanOptions{})
	if span.EffectiveEnd != "2024-03-08" {
		t.Fatalf("inclusive record: effective end = %q, want 2024-03-08", span.EffectiveEnd)
	}
	if span.OriginalEnd != "2024-03-07" {
		t.Fatalf("original end must round-trip unadjusted, got %q", span.OriginalEnd)
	}
}

func TestResolveSpanPreciseEndTimeSkipsPadding(t *testing.T) {
	span := ResolveSpan("2024-03-05", RawEnd{Date: "2024-03-07", Time: "14:30", Inclusive: true}, SpanOptions{})
	if span.EffectiveEnd != "2024-03-07" || span.EndTime != "14:30" {
		t.Fatalf("precise end mangled: %#v", span)
	}
	if !span.IsMultiDay {
		t.Fatal("calendar dates still decide multi-day status")
	}

	sameDay := ResolveSpan("2024-03-05", RawEnd{Time: "14:30"}, SpanOptions{})
	if sameDay.IsMultiDay || sameDay.EffectiveEnd != "2024-03-05" {
		t.Fatalf("timed same-day event mangled: %#v", sameDay)
	}
}

func TestResolveSpanLegacyRepairPadding(t *testing.T) {
	span := ResolveSpan("2024-03-05", RawEnd{LegacyNoEnd: true}, SpanOptions{})
	if span.EffectiveEnd != "2024-03-08" {
		t.Fatalf("default repair padding: effective end = %q, want 2024-03-08", span.EffectiveEnd)
	}
	custom := ResolveSpan("2024-03-05", RawEnd{LegacyNoEnd: true}, SpanOptions{RepairPadding: 1})
	if custom.EffectiveEnd != "2024-03-06" {
		t.Fatalf("custom repair padding: effective end = %q, want 2024-03-06", custom.EffectiveEnd)
	}
}

func TestResolveSpanSameDayEnd(t *testing.T) {
	span := ResolveSpan("2024-03-05", RawEnd{Date: "2024-03-05"}, SpanOptions{})
	if span.IsMultiDay || span.EffectiveEnd != "2024-03-05" {
		t.Fatalf("end equal to start should stay single-day: %#v", span)
	}
}

func TestResolveSpanInvalidStart(t *testing.T) {
	span := ResolveSpan(dateutil.None, RawEnd{Date: "2024-03-07"}, SpanOptions{})
	if span.EffectiveEnd != dateutil.None {
		t.Fatalf("invalid start should yield zero span, got %#v", span)
	}
}
