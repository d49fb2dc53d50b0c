package diary

import (
	"testing"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

func TestWeekOf(t *testing.T) {
	due := dateutil.Day("2024-10-01")
	cases := []struct {
		day  string
		want int
	}{
		{"2024-10-01", 40}, // due day caps at term
		{"2024-09-24", 40},
		{"2024-09-23", 39},
		{"2023-12-26", 1},
		{"2023-12-25", 0}, // before term
		{"2024-10-02", 0}, // past due date
	}
	for _, tc := range cases {
		if got := WeekOf(due, dateutil.Day(tc.day)); got != tc.want {
			t.Fatalf("WeekOf(%s, %s) = %d, want %d", due, tc.day, got, tc.want)
		}
	}
	if WeekOf(dateutil.None, "2024-05-01") != 0 {
		t.Fatal("missing due date should yield week 0")
	}
}

func TestForDate(t *testing.T) {
	all := []Entry{
		{ID: "1", Date: "2024-03-05", Kind: KindDaily},
		{ID: "2", Date: "2024-03-05", Kind: KindBaby},
	}
	if e := ForDate(all, "2024-03-05T08:00:00", KindBaby); e == nil || e.ID != "2" {
		t.Fatalf("ForDate picked %+v", e)
	}
	if e := ForDate(all, "2024-03-06", KindDaily); e != nil {
		t.Fatalf("expected nil for empty day, got %+v", e)
	}
}
