// Package daypanel renders the day-events overlay: the selected day's
// events, AI summaries, and diary entry, with a row cursor.
package daypanel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
	"github.com/nestcal/nestcal/pkg/tui/events"
	"github.com/nestcal/nestcal/pkg/tui/theme"
)

type rowKind int

const (
	rowEvent rowKind = iota
	rowSummary
)

type row struct {
	kind    rowKind
	event   event.Event
	summary summary.Summary
}

// Model is the day-events overlay.
type Model struct {
	id    events.ComponentID
	theme theme.PanelTheme

	date    dateutil.Day
	rows    []row
	diary   *diary.Entry
	cursor  int
	loading bool
	width   int
	height  int
}

// NewModel constructs an empty panel.
func NewModel(id events.ComponentID, t theme.PanelTheme) *Model {
	return &Model{id: id, theme: t, loading: true}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetSize records the available area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetLoading marks the panel as an empty shell awaiting data.
func (m *Model) SetLoading(date dateutil.Day) {
	m.date = date
	m.rows = nil
	m.diary = nil
	m.cursor = 0
	m.loading = true
}

// SetContent replaces the panel content after the day fetch lands.
func (m *Model) SetContent(date dateutil.Day, evs []event.Event, sums []summary.Summary, d *diary.Entry) {
	m.date = date
	m.diary = d
	m.loading = false
	m.rows = m.rows[:0]
	for _, e := range evs {
		m.rows = append(m.rows, row{kind: rowEvent, event: e})
	}
	for _, s := range sums {
		if dateutil.SameDay(s.Date, date) {
			m.rows = append(m.rows, row{kind: rowSummary, summary: s})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = 0
	}
}

// CursorEvent returns the event under the cursor, if the cursor is on an
// event row.
func (m *Model) CursorEvent() (event.Event, bool) {
	if m.cursor >= len(m.rows) || m.rows[m.cursor].kind != rowEvent {
		return event.Event{}, false
	}
	return m.rows[m.cursor].event, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles row navigation and activation.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor >= len(m.rows) {
			return m, nil
		}
		r := m.rows[m.cursor]
		switch r.kind {
		case rowEvent:
			ev := r.event
			return m, func() tea.Msg {
				return events.EventSelectMsg{Component: m.id, Event: ev}
			}
		case rowSummary:
			s := r.summary
			return m, func() tea.Msg {
				return events.SummarySelectMsg{Component: m.id, Summary: s}
			}
		}
	case "esc":
		return m, func() tea.Msg {
			return events.OverlayDismissMsg{Component: m.id}
		}
	}
	return m, nil
}

// View renders the framed panel.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.date.String()))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.theme.Faint.Render("loading..."))
		return m.theme.Frame.Render(b.String())
	}

	if len(m.rows) == 0 {
		b.WriteString(m.theme.Faint.Render("no events"))
	}
	for i, r := range m.rows {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		switch r.kind {
		case rowEvent:
			when := r.event.StartTime
			if when == "" {
				when = "all-day"
			}
			line := fmt.Sprintf("%s%s  %-10s %s", marker, when, r.event.Type, r.event.Title)
			if i == m.cursor {
				b.WriteString(m.theme.Title.Render(line))
			} else {
				style := lipgloss.NewStyle().Foreground(lipgloss.Color(r.event.Type.Color()))
				b.WriteString(style.Render(line))
			}
		case rowSummary:
			line := fmt.Sprintf("%sAI  %s", marker, r.summary.Topic)
			if i == m.cursor {
				b.WriteString(m.theme.Title.Render(line))
			} else {
				b.WriteString(m.theme.Faint.Render(line))
			}
		}
		b.WriteString("\n")
	}

	if m.diary != nil {
		b.WriteString("\n")
		label := fmt.Sprintf("diary (%s)", m.diary.Kind)
		if m.diary.WeekOfPregnancy > 0 {
			label = fmt.Sprintf("diary (%s, week %d)", m.diary.Kind, m.diary.WeekOfPregnancy)
		}
		b.WriteString(m.theme.Faint.Render(label))
	}

	return m.theme.Frame.Render(strings.TrimRight(b.String(), "\n"))
}
