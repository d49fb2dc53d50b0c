// Package detailpane renders the secondary overlay: either a full event or
// a full AI summary stacked above the day panel.
package detailpane

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
	"github.com/nestcal/nestcal/pkg/tui/events"
	"github.com/nestcal/nestcal/pkg/tui/theme"
)

// Mode selects which detail the pane shows.
type Mode int

const (
	ModeEvent Mode = iota
	ModeSummary
)

// Model is the detail overlay.
type Model struct {
	id    events.ComponentID
	theme theme.ModalTheme

	mode    Mode
	event   event.Event
	summary summary.Summary

	width  int
	height int
}

// NewModel constructs an empty pane.
func NewModel(id events.ComponentID, t theme.ModalTheme) *Model {
	return &Model{id: id, theme: t}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetSize records the available area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShowEvent switches the pane to an event.
func (m *Model) ShowEvent(e event.Event) {
	m.mode = ModeEvent
	m.event = e
}

// ShowSummary switches the pane to a summary.
func (m *Model) ShowSummary(s summary.Summary) {
	m.mode = ModeSummary
	m.summary = s
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles dismissal and the summary delete shortcut.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "enter":
		return m, func() tea.Msg {
			return events.OverlayDismissMsg{Component: m.id}
		}
	case "d":
		if m.mode == ModeSummary {
			date := m.summary.Date
			return m, func() tea.Msg {
				return events.SummaryDeleteRequestMsg{Component: m.id, Date: date}
			}
		}
	}
	return m, nil
}

// View renders the framed detail.
func (m *Model) View() string {
	var b strings.Builder
	switch m.mode {
	case ModeEvent:
		e := m.event
		b.WriteString(m.theme.Title.Render(e.Title))
		b.WriteString("\n")
		when := e.StartDate.String()
		if e.StartTime != "" {
			when += " " + e.StartTime
		}
		if e.MultiDay() {
			when += fmt.Sprintf("  (through %s)", e.EffectiveEnd().AddDays(-1))
		}
		b.WriteString(m.theme.Body.Render(when))
		b.WriteString("\n")
		b.WriteString(m.theme.Body.Render(fmt.Sprintf("type: %s", e.Type)))
		if e.Recurrence != event.RecurNone {
			b.WriteString("\n")
			b.WriteString(m.theme.Body.Render(fmt.Sprintf("repeats: %s", e.Recurrence)))
		}
		if e.Description != "" {
			b.WriteString("\n\n")
			b.WriteString(m.theme.Body.Render(e.Description))
		}
	case ModeSummary:
		s := m.summary
		b.WriteString(m.theme.Title.Render(fmt.Sprintf("%s - %s", s.Date, s.Topic)))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Body.Render(s.Body))
		b.WriteString("\n\n")
		b.WriteString(m.theme.Error.Render("d: delete this day's summaries"))
	}
	return m.theme.Frame.Render(b.String())
}
