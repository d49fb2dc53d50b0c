package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints a compact month grid. Days with events are highlighted,
// days inside a multi-day span are underlined.
func (pp *PrettyPrint) Calendar(then time.Time, events ...event.Event) {
	days := DaysIn(then)

	count := make([]int, days)
	multi := make([]bool, days)

	for i := 0; i < days; i++ {
		day := dateutil.FromTime(time.Date(then.Year(), then.Month(), i+1, 0, 0, 0, 0, time.Local))
		for _, e := range events {
			if !event.OnDay(e, day) {
				continue
			}
			count[i]++
			if e.MultiDay() {
				multi[i] = true
			}
		}
	}

	pp.printMonthCount(then, count, multi)
}

func (pp *PrettyPrint) printMonthCount(then time.Time, count []int, multi []bool) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Printf("%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		fmt.Print("   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.Bold, color.FgHiWhite, color.Underline)

	for i := 0; i < days; i++ {
		printer := l1
		if i < len(count) && count[i] > 0 {
			printer = l2
			if multi[i] {
				printer = l3
			}
		}
		_, _ = printer.Printf("%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			fmt.Print("\n")
		}
	}
	fmt.Print("\n\n")
}

// CalendarLong prints one line per day of the month with that day's events.
func (pp *PrettyPrint) CalendarLong(then time.Time, events ...event.Event) {
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	now := time.Now()
	d := StartDay(then)
	for i := 0; i < DaysIn(then); i++ {
		printer := p
		today := now.Month() == then.Month() && now.Year() == then.Year() && now.Day() == i+1
		if today {
			printer = b
		}
		if d == time.Sunday {
			printer = s
			if today {
				printer = bs
			}
		}
		_, _ = printer.Printf("%2d %s", i+1, d.String()[0:1])

		day := dateutil.FromTime(time.Date(then.Year(), then.Month(), i+1, 0, 0, 0, 0, time.Local))
		found := false
		for _, e := range events {
			if !event.OnDay(e, day) {
				continue
			}
			if found {
				_, _ = p.Print("      ")
			} else {
				_, _ = p.Print("  ")
			}
			tc := color.New(typeAttr(e.Type))
			_, _ = tc.Printf("%s ", segmentGlyph(event.SegmentFor(e, day)))
			_, _ = p.Printf("%s\n", e.Title)
			found = true
		}
		if !found {
			_, _ = p.Printf("\n")
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
		}
	}
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.UTC().Year(), then.UTC().Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.UTC().Year(), then.UTC().Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
