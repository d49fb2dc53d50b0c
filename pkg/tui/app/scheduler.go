package app

import "sync"

// QueueScheduler collects deferred continuations so the root model can run
// them in a command goroutine after the current frame renders.
type QueueScheduler struct {
	mu  sync.Mutex
	fns []func()
}

// NewQueueScheduler returns an empty queue.
func NewQueueScheduler() *QueueScheduler {
	return &QueueScheduler{}
}

// Defer enqueues fn.
func (q *QueueScheduler) Defer(fn func()) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, fn)
}

// Drain removes and returns everything queued so far, in order.
func (q *QueueScheduler) Drain() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	fns := q.fns
	q.fns = nil
	return fns
}
