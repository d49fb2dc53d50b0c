package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9-9dca  "))
)

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" entry")
	default:
		_, _ = c.Println(" entries")
	}
}

// Events prints a flat listing, one event per line. Multi-day events carry a
// segment glyph for the day being listed.
func (pp *PrettyPrint) Events(on dateutil.Day, events ...event.Event) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Print(" none\n\n")
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, e := range events {
		if pp.ShowID {
			id := e.ID
			if len(id) > len(spacing)-2 {
				id = id[:len(spacing)-2]
			}
			_, _ = y.Print(id)
			_, _ = y.Print(strings.Repeat(" ", len(spacing)-len(id)))
		}
		tc := color.New(typeAttr(e.Type))
		_, _ = tc.Printf("%s ", segmentGlyph(event.SegmentFor(e, on)))
		when := e.StartTime
		if when == "" {
			when = "all-day"
		}
		_, _ = t.Printf("%s  %-9s %s\n", when, e.Type, e.Title)
	}
	_, _ = t.Println("")
}

// Summaries renders daily summaries in a table keyed by topic.
func (pp *PrettyPrint) Summaries(summaries ...summary.Summary) {
	if len(summaries) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("DATE", "TOPIC", "SUMMARY")
	for _, s := range summaries {
		table.AddRow(s.Date.String(), s.Topic, s.Body)
	}
	fmt.Println(table)
	fmt.Println("")
}

// Diary prints a diary entry with the pregnancy week when known.
func (pp *PrettyPrint) Diary(d *diary.Entry) {
	if d == nil {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" no entry\n\n")
		return
	}

	h := color.New(color.Bold)
	p := color.New()
	if d.WeekOfPregnancy > 0 {
		_, _ = h.Printf("%s (%s, week %d)\n", d.Date, d.Kind, d.WeekOfPregnancy)
	} else {
		_, _ = h.Printf("%s (%s)\n", d.Date, d.Kind)
	}
	if d.Mood != "" {
		_, _ = p.Printf("mood: %s\n", d.Mood)
	}
	_, _ = p.Printf("%s\n\n", d.Body)
}

func typeAttr(t event.Type) color.Attribute {
	switch t {
	case event.TypeCheckup:
		return color.FgHiCyan
	case event.TypeUltrasound:
		return color.FgHiMagenta
	case event.TypeClass:
		return color.FgHiGreen
	case event.TypeMilestone:
		return color.FgHiYellow
	default:
		return color.FgWhite
	}
}

func segmentGlyph(s event.Segment) string {
	switch s {
	case event.SegmentStart:
		return "├"
	case event.SegmentMiddle:
		return "─"
	case event.SegmentEnd:
		return "┤"
	default:
		return "•"
	}
}
