// Package monthgrid renders the month view: a weekday-aligned grid where
// each day cell reflects events, multi-day spans, and summary badges.
package monthgrid

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
	"github.com/nestcal/nestcal/pkg/tui/events"
	"github.com/nestcal/nestcal/pkg/tui/theme"
)

// Cell describes a single day rendered in the grid.
type Cell struct {
	Day        int
	HasEvent   bool
	InSpan     bool
	HasSummary bool
	IsToday    bool
	IsSelected bool
}

// Model owns the grid cursor and the current month's cell data.
type Model struct {
	id    events.ComponentID
	theme theme.GridTheme

	year  int
	month time.Month
	cells map[int]Cell

	cursor int

	width  int
	height int
}

// NewModel constructs a grid anchored on the current month.
func NewModel(id events.ComponentID, t theme.GridTheme) *Model {
	now := time.Now()
	return &Model{
		id:     id,
		theme:  t,
		year:   now.Year(),
		month:  now.Month(),
		cursor: now.Day(),
		cells:  map[int]Cell{},
	}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetSize records the available area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the highlighted day as a canonical date.
func (m *Model) Cursor() dateutil.Day {
	return dateutil.FromTime(time.Date(m.year, m.month, m.cursor, 0, 0, 0, 0, time.Local))
}

// SetMonth re-anchors the grid and clamps the cursor into the new month.
func (m *Model) SetMonth(year int, month time.Month) {
	m.year = year
	m.month = month
	if days := daysIn(year, month); m.cursor > days {
		m.cursor = days
	}
	if m.cursor < 1 {
		m.cursor = 1
	}
}

// SetData rebuilds the cell map from the month's projected events and
// summaries.
func (m *Model) SetData(evs []event.Event, sums []summary.Summary) {
	cells := map[int]Cell{}
	days := daysIn(m.year, m.month)
	today := dateutil.Today()

	for d := 1; d <= days; d++ {
		day := dateutil.FromTime(time.Date(m.year, m.month, d, 0, 0, 0, 0, time.Local))
		c := Cell{Day: d, IsToday: dateutil.SameDay(day, today)}
		for _, e := range evs {
			if !event.OnDay(e, day) {
				continue
			}
			c.HasEvent = true
			if e.MultiDay() {
				c.InSpan = true
			}
		}
		for _, s := range sums {
			if dateutil.SameDay(s.Date, day) {
				c.HasSummary = true
				break
			}
		}
		if c.HasEvent || c.HasSummary || c.IsToday {
			cells[d] = c
		}
	}
	m.cells = cells
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update moves the cursor and emits select events. Month boundary moves are
// left to the root model via MonthChangeMsg.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	days := daysIn(m.year, m.month)
	switch key.String() {
	case "left", "h":
		if m.cursor > 1 {
			m.cursor--
		} else {
			return m, m.monthChangeCmd(-1)
		}
	case "right", "l":
		if m.cursor < days {
			m.cursor++
		} else {
			return m, m.monthChangeCmd(1)
		}
	case "up", "k":
		if m.cursor > 7 {
			m.cursor -= 7
		}
	case "down", "j":
		if m.cursor+7 <= days {
			m.cursor += 7
		}
	case "enter":
		return m, events.DaySelectCmd(m.id, m.Cursor())
	default:
		return m, nil
	}

	return m, func() tea.Msg {
		return events.DayHighlightMsg{Component: m.id, Date: m.Cursor()}
	}
}

// monthChangeCmd moves the cursor across a month boundary and announces the
// crossing; the root model reloads the coordinator for the new month.
func (m *Model) monthChangeCmd(delta int) tea.Cmd {
	t := time.Date(m.year, m.month+time.Month(delta), 1, 0, 0, 0, 0, time.Local)
	m.year = t.Year()
	m.month = t.Month()
	if delta < 0 {
		m.cursor = daysIn(m.year, m.month)
	} else {
		m.cursor = 1
	}
	m.cells = map[int]Cell{}
	return func() tea.Msg {
		return events.MonthChangeMsg{Component: m.id, Year: t.Year(), Month: t.Month()}
	}
}

// View renders the grid with a month title and weekday header.
func (m *Model) View() string {
	title := fmt.Sprintf("%s %d", m.month, m.year)
	lines := []string{
		m.theme.Header.Render(centerText(title, 20)),
		m.theme.Header.Render("Su Mo Tu We Th Fr Sa"),
	}

	first := time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.Local)
	days := daysIn(m.year, m.month)
	offset := int(first.Weekday())
	rows := (offset + days + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > days {
				cells = append(cells, m.theme.Empty.Render("  "))
				continue
			}
			c := m.cells[day]
			c.Day = day
			c.IsSelected = day == m.cursor
			cells = append(cells, m.renderCell(c))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderCell(c Cell) string {
	text := fmt.Sprintf("%2d", c.Day)

	style := m.theme.Empty
	if c.HasEvent {
		style = m.theme.HasEvent
	}
	if c.InSpan {
		style = style.Inherit(m.theme.Span)
	}
	if c.HasSummary {
		style = style.Inherit(m.theme.Summary)
	}
	if c.IsToday {
		style = style.Inherit(m.theme.Today)
	}
	if c.IsSelected {
		style = style.Inherit(m.theme.Selected)
	}
	return style.Render(text)
}

func centerText(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	left := (width - lipgloss.Width(s)) / 2
	return strings.Repeat(" ", left) + s
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
