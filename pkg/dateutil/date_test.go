package dateutil

import (
	"testing"
	"time"
)

func TestNormalizeForms(t *testing.T) {
	when := time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		in   any
		want Day
	}{
		{"plain date", "2024-03-05", "2024-03-05"},
		{"iso timestamp", "2024-03-05T10:00:00", "2024-03-05"},
		{"space timestamp", "2024-03-05 10:00:00", "2024-03-05"},
		{"padded", "  2024-03-05 ", "2024-03-05"},
		{"time value", when, "2024-03-05"},
		{"time pointer", &when, "2024-03-05"},
		{"nil", nil, None},
		{"nil time pointer", (*time.Time)(nil), None},
		{"zero time", time.Time{}, None},
		{"empty string", "", None},
		{"garbage", "not a date", None},
		{"bad month", "2024-13-05", None},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"2024-03-05", "2024-03-05T10:00:00", "junk", ""}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSameDay(t *testing.T) {
	if !SameDay("2024-03-05T23:59:59", "2024-03-05") {
		t.Fatal("timestamp and plain date should compare as the same day")
	}
	if SameDay("2024-03-05", "2024-03-06") {
		t.Fatal("different dates compared equal")
	}
	if SameDay("", "") {
		t.Fatal("sentinel must never equal sentinel")
	}
}

func TestAddDaysAndOrdering(t *testing.T) {
	d := Day("2024-02-28")
	if got := d.AddDays(2); got != "2024-03-01" {
		t.Fatalf("leap-year rollover: got %q", got)
	}
	if got := d.AddDays(-1); got != "2024-02-27" {
		t.Fatalf("negative shift: got %q", got)
	}
	if None.AddDays(1) != None {
		t.Fatal("sentinel should stay sentinel")
	}
	if !Day("2024-03-05").Before("2024-03-06") {
		t.Fatal("Before failed")
	}
	if Day("2024-03-05").Before(None) || None.After("2024-03-05") {
		t.Fatal("sentinel must not order against valid days")
	}
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2024, time.December)
	if start != "2024-12-01" || end != "2025-01-01" {
		t.Fatalf("window = [%q, %q)", start, end)
	}
}
