// Package surface bridges the month coordinator to the Bubble Tea grid.
// State lives locally behind a mutex, and repaint signals travel over a
// buffered channel the program subscribes to, so loads finishing on other
// goroutines never block.
package surface

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/nestcal/nestcal/pkg/dateutil"
	"github.com/nestcal/nestcal/pkg/event"
	"github.com/nestcal/nestcal/pkg/tui/events"
)

// Snapshot is a consistent copy of the current surface state. Callers treat
// the slices as immutable.
type Snapshot struct {
	Year   int
	Month  time.Month
	Events []event.Event
}

// Surface accumulates the visible month's render data.
type Surface struct {
	component events.ComponentID

	mu     sync.RWMutex
	year   int
	month  time.Month
	events []event.Event

	repaint chan tea.Msg
}

// New creates an empty surface anchored on the current month.
func New(component events.ComponentID) *Surface {
	if component == "" {
		component = events.ComponentID("surface")
	}
	now := time.Now()
	return &Surface{
		component: component,
		year:      now.Year(),
		month:     now.Month(),
		repaint:   make(chan tea.Msg, 64),
	}
}

// Repaint exposes the channel the Bubble Tea program subscribes to.
func (s *Surface) Repaint() <-chan tea.Msg {
	return s.repaint
}

// ClearEvents drops the event collection ahead of an atomic replacement.
func (s *Surface) ClearEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// AddEvents appends to the event collection.
func (s *Surface) AddEvents(evs []event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evs...)
}

// GoTo re-anchors the surface on the month containing date.
func (s *Surface) GoTo(date dateutil.Day) {
	t, ok := date.Time()
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.year = t.Year()
	s.month = t.Month()
}

// Refresh signals the program to repaint. Drops the signal when the channel
// is full; a later repaint covers it.
func (s *Surface) Refresh() {
	select {
	case s.repaint <- events.SurfaceUpdatedMsg{Component: s.component}:
	default:
	}
}

// View returns a copy of the current state.
func (s *Surface) View() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Year:   s.year,
		Month:  s.month,
		Events: append([]event.Event(nil), s.events...),
	}
}
