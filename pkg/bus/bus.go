// Package bus is the process-wide publish mechanism for decoupled
// listeners. Publishing never blocks: when the subscriber is not draining,
// messages are dropped and a later refresh picks up the state.
package bus

import (
	"fmt"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

// Msg is a notification payload. Describe renders it for logs.
type Msg interface {
	Describe() string
}

// SummaryDeletedMsg announces that the AI summary for a date was removed.
type SummaryDeletedMsg struct {
	Date dateutil.Day
}

func (m SummaryDeletedMsg) Describe() string {
	return fmt.Sprintf(`summary-deleted date:%q`, m.Date)
}

// EventsChangedMsg announces an optimistic local event mutation.
type EventsChangedMsg struct {
	Date   dateutil.Day
	Action string
}

func (m EventsChangedMsg) Describe() string {
	return fmt.Sprintf(`events-changed action:%q date:%q`, m.Action, m.Date)
}

// Bus fans notifications out to a single subscriber channel.
type Bus struct {
	ch chan Msg
}

// New creates a bus with the given buffer size (64 when zero or negative).
func New(size int) *Bus {
	if size <= 0 {
		size = 64
	}
	return &Bus{ch: make(chan Msg, size)}
}

// Publish emits the message without blocking. Fire and forget.
func (b *Bus) Publish(msg Msg) {
	if b == nil {
		return
	}
	select {
	case b.ch <- msg:
	default:
	}
}

// Subscribe returns the notification channel.
func (b *Bus) Subscribe() <-chan Msg {
	return b.ch
}
