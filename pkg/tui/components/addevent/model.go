// Package addevent renders the overlay for creating a calendar event.
package addevent

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/tui/events"
	"github.com/nestcal/nestcal/pkg/tui/theme"
)

type focusField int

const (
	fieldTitle focusField = iota
	fieldDate
	fieldTime
	fieldEndDate
	fieldType
	fieldRecurrence
	fieldCount
)

// Model renders an overlay for inserting new events.
type Model struct {
	id    events.ComponentID
	theme theme.ModalTheme

	focus focusField

	titleInput textinput.Model
	dateInput  textinput.Model
	timeInput  textinput.Model
	endInput   textinput.Model

	typeOptions []event.Type
	typeIndex   int

	recurOptions []event.Recurrence
	recurIndex   int

	errorMsg string

	width  int
	height int
}

// NewModel constructs the form prefilled with the given day.
func NewModel(id events.ComponentID, t theme.ModalTheme, date dateutil.Day) *Model {
	title := textinput.New()
	title.Placeholder = "Event title"
	title.Prompt = ""
	title.Focus()

	di := textinput.New()
	di.Prompt = ""
	di.SetValue(date.String())

	ti := textinput.New()
	ti.Placeholder = "HH:MM (blank for all-day)"
	ti.Prompt = ""

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD (blank for single day)"
	ei.Prompt = ""

	return &Model{
		id:         id,
		theme:      t,
		titleInput: title,
		dateInput:  di,
		timeInput:  ti,
		endInput:   ei,
		typeOptions: []event.Type{
			event.TypeCheckup,
			event.TypeUltrasound,
			event.TypeClass,
			event.TypeMilestone,
			event.TypeOther,
		},
		recurOptions: []event.Recurrence{
			event.RecurNone,
			event.RecurDaily,
			event.RecurWeekly,
			event.RecurMonthly,
			event.RecurYearly,
		},
	}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetSize records the available area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return m.titleInput.Focus() }

// Update routes keys to the focused field.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg {
				return events.AddEventCancelMsg{Component: m.id}
			}
		case "tab", "shift+tab":
			m.advanceFocus(key.String() == "tab")
			return m, nil
		case "enter":
			return m, m.submit()
		case "left", "right":
			delta := 1
			if key.String() == "left" {
				delta = -1
			}
			switch m.focus {
			case fieldType:
				m.typeIndex = cycle(m.typeIndex, delta, len(m.typeOptions))
				return m, nil
			case fieldRecurrence:
				m.recurIndex = cycle(m.recurIndex, delta, len(m.recurOptions))
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case fieldTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	case fieldEndDate:
		m.endInput, cmd = m.endInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) advanceFocus(forward bool) {
	m.blurAll()
	if forward {
		m.focus = (m.focus + 1) % fieldCount
	} else {
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	}
	switch m.focus {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldDate:
		m.dateInput.Focus()
	case fieldTime:
		m.timeInput.Focus()
	case fieldEndDate:
		m.endInput.Focus()
	}
}

func (m *Model) blurAll() {
	m.titleInput.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
	m.endInput.Blur()
}

func (m *Model) submit() tea.Cmd {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		m.errorMsg = "title is required"
		return nil
	}
	date := dateutil.Normalize(m.dateInput.Value())
	if !date.Valid() {
		m.errorMsg = "date must be YYYY-MM-DD"
		return nil
	}
	end := dateutil.Normalize(m.endInput.Value())
	if strings.TrimSpace(m.endInput.Value()) != "" && !end.Valid() {
		m.errorMsg = "end date must be YYYY-MM-DD"
		return nil
	}
	m.errorMsg = ""

	recur := m.recurOptions[m.recurIndex]
	draft := event.RawEvent{
		Title:             title,
		EventDay:          date.String(),
		EventTime:         strings.TrimSpace(m.timeInput.Value()),
		EventEndDay:       end.String(),
		EventType:         string(m.typeOptions[m.typeIndex]),
		IsRecurring:       recur != event.RecurNone,
		RecurrencePattern: string(recur),
		// Users type the last day of the event, so the form always uses
		// the inclusive convention.
		InclusiveEnd: end.Valid(),
	}
	return func() tea.Msg {
		return events.AddEventSubmitMsg{Component: m.id, Draft: draft}
	}
}

// View renders the framed form.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("New event"))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(fieldTitle, "Title", m.titleInput.View()))
	b.WriteString(m.renderField(fieldDate, "Date", m.dateInput.View()))
	b.WriteString(m.renderField(fieldTime, "Time", m.timeInput.View()))
	b.WriteString(m.renderField(fieldEndDate, "Ends", m.endInput.View()))
	b.WriteString(m.renderField(fieldType, "Type", string(m.typeOptions[m.typeIndex])))
	b.WriteString(m.renderField(fieldRecurrence, "Repeat", string(m.recurOptions[m.recurIndex])))

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render(m.errorMsg))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Body.Render("tab: next field  enter: save  esc: cancel"))

	return m.theme.Frame.Render(b.String())
}

func (m *Model) renderField(f focusField, label, value string) string {
	marker := "  "
	if m.focus == f {
		marker = "> "
	}
	return fmt.Sprintf("%s%-7s %s\n", marker, label+":", value)
}

func cycle(idx, delta, size int) int {
	return (idx + delta + size) % size
}
