package bus

import (
	"testing"

	"github.com/nestcal/nestcal/pkg/dateutil"
)

func TestPublishDelivers(t *testing.T) {
	b := New(4)
	sub := b.Subscribe()

	b.Publish(SummaryDeletedMsg{Date: dateutil.Day("2025-03-10")})

	select {
	case msg := <-sub:
		del, ok := msg.(SummaryDeletedMsg)
		if !ok {
			t.Fatalf("expected SummaryDeletedMsg, got %T", msg)
		}
		if del.Date != dateutil.Day("2025-03-10") {
			t.Fatalf("wrong date: %s", del.Date)
		}
	default:
		t.Fatal("expected a buffered message")
	}
}

func TestPublishNeverBlocksWhenFull(t *testing.T) {
	b := New(1)
	_ = b.Subscribe()

	for i := 0; i < 50; i++ {
		b.Publish(EventsChangedMsg{Date: dateutil.Day("2025-03-10"), Action: "create"})
	}
}
