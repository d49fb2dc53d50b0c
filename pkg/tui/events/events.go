// Package events defines the typed messages components exchange through the
// Bubble Tea update loop.
package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/diary"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/summary"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// ChangeType enumerates supported change actions across components.
type ChangeType string

const (
	// ChangeCreate indicates a new resource was created.
	ChangeCreate ChangeType = "create"
	// ChangeDelete indicates a resource was removed.
	ChangeDelete ChangeType = "delete"
)

// DayHighlightMsg is emitted when the grid cursor moves to a new day.
type DayHighlightMsg struct {
	Component ComponentID
	Date      dateutil.Day
}

// Describe renders the highlight in a human-friendly format for logs.
func (m DayHighlightMsg) Describe() string {
	return fmt.Sprintf(`date:%q`, m.Date)
}

// DaySelectMsg is emitted when the user activates the highlighted day.
type DaySelectMsg struct {
	Component ComponentID
	Date      dateutil.Day
}

// Describe renders the selection in a human-friendly format for logs.
func (m DaySelectMsg) Describe() string {
	return fmt.Sprintf(`date:%q`, m.Date)
}

// DaySelectCmd wraps DaySelectMsg in a tea.Cmd.
func DaySelectCmd(component ComponentID, date dateutil.Day) tea.Cmd {
	return func() tea.Msg {
		return DaySelectMsg{Component: component, Date: date}
	}
}

// MonthChangeMsg announces that the visible month moved.
type MonthChangeMsg struct {
	Component ComponentID
	Year      int
	Month     time.Month
}

// Describe implements the logging helper.
func (m MonthChangeMsg) Describe() string {
	return fmt.Sprintf(`year:%d month:%q`, m.Year, m.Month)
}

// SurfaceUpdatedMsg signals that the render surface holds new month data and
// the grid should repaint.
type SurfaceUpdatedMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m SurfaceUpdatedMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// EventSelectMsg fires when the day panel activates an event row.
type EventSelectMsg struct {
	Component ComponentID
	Event     event.Event
}

// Describe renders the event selection for logs.
func (m EventSelectMsg) Describe() string {
	return fmt.Sprintf(`event:%q date:%q`, m.Event.Title, m.Event.StartDate)
}

// SummarySelectMsg fires when the day panel activates a summary row.
type SummarySelectMsg struct {
	Component ComponentID
	Summary   summary.Summary
}

// Describe renders the summary selection for logs.
func (m SummarySelectMsg) Describe() string {
	return fmt.Sprintf(`topic:%q date:%q`, m.Summary.Topic, m.Summary.Date)
}

// EventChangeMsg announces lifecycle changes to calendar events so other
// components can refresh their state.
type EventChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	EventID   string
	Date      dateutil.Day
}

// Describe renders the change in a human-friendly format for logs.
func (m EventChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q event:%q date:%q`, m.Action, m.EventID, m.Date)
}

// EventChangeCmd wraps EventChangeMsg in a tea.Cmd.
func EventChangeCmd(component ComponentID, action ChangeType, eventID string, date dateutil.Day) tea.Cmd {
	return func() tea.Msg {
		return EventChangeMsg{
			Component: component,
			Action:    action,
			EventID:   eventID,
			Date:      date,
		}
	}
}

// AddEventSubmitMsg carries a completed add-event form back to the root model.
type AddEventSubmitMsg struct {
	Component ComponentID
	Draft     event.RawEvent
}

// Describe renders the submission for logs.
func (m AddEventSubmitMsg) Describe() string {
	return fmt.Sprintf(`title:%q date:%q`, m.Draft.Title, m.Draft.EventDay)
}

// AddEventCancelMsg is emitted when the add-event form is dismissed.
type AddEventCancelMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m AddEventCancelMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// SummaryDeleteRequestMsg asks the root model to delete the summaries shown
// for a day.
type SummaryDeleteRequestMsg struct {
	Component ComponentID
	Date      dateutil.Day
}

// Describe renders the request for logs.
func (m SummaryDeleteRequestMsg) Describe() string {
	return fmt.Sprintf(`date:%q`, m.Date)
}

// DiaryKindChosenMsg is emitted by the diary type selector.
type DiaryKindChosenMsg struct {
	Component ComponentID
	Kind      diary.Kind
}

// Describe implements the logging helper.
func (m DiaryKindChosenMsg) Describe() string {
	return fmt.Sprintf(`kind:%q`, m.Kind)
}

// DiarySubmitMsg carries a completed diary form back to the root model.
type DiarySubmitMsg struct {
	Component ComponentID
	Entry     diary.Entry
}

// Describe renders the submission for logs.
func (m DiarySubmitMsg) Describe() string {
	return fmt.Sprintf(`kind:%q date:%q`, m.Entry.Kind, m.Entry.Date)
}

// OverlayDismissMsg asks the root model to close the topmost overlay.
type OverlayDismissMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m OverlayDismissMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// DebugMsg captures optional diagnostic notes emitted by components.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`component:%q context:%q detail:%q`, m.Component, m.Context, m.Detail)
}
