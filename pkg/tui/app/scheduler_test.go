package app

import "testing"

func TestQueueSchedulerDrainOrder(t *testing.T) {
	q := NewQueueScheduler()

	var got []int
	q.Defer(func() { got = append(got, 1) })
	q.Defer(func() { got = append(got, 2) })
	q.Defer(nil)

	fns := q.Drain()
	if len(fns) != 2 {
		t.Fatalf("expected 2 queued fns, got %d", len(fns))
	}
	for _, fn := range fns {
		fn()
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected in-order execution, got %v", got)
	}

	if again := q.Drain(); len(again) != 0 {
		t.Fatalf("expected empty queue after drain, got %d", len(again))
	}
}
