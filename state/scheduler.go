package state

import "sync"

// Scheduler dispatches subscription callbacks.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(func())

// Schedule dispatches fn using the wrapped function.
func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// DirectScheduler runs callbacks immediately in the caller goroutine.
var DirectScheduler Scheduler = SchedulerFunc(func(fn func()) {
	if fn != nil {
		fn()
	}
})

// AsyncScheduler runs callbacks in a new goroutine.
type AsyncScheduler struct{}

// Schedule dispatches fn asynchronously.
func (AsyncScheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	go fn()
}

// Queue collects callbacks for explicit flushing on the render
// goroutine. It is the marshaling point for cross-goroutine Set calls:
// subscribers registered with a Queue have their callbacks enqueued
// and delivered when the render loop flushes.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule enqueues a callback for later flushing. Scheduling onto a
// closed queue is a silent no-op: once the render loop has shut down
// there is nothing left to deliver to.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	if !q.closed {
		q.pending = append(q.pending, fn)
	}
	q.mu.Unlock()
}

// Flush executes queued callbacks and returns the count. Panicking
// callbacks are isolated so the rest of the queue still drains.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	pending := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range pending {
		invoke(fn)
	}
	return len(pending)
}

// Close drops pending callbacks and makes further Schedule calls
// no-ops.
func (q *Queue) Close() {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.closed = true
	q.pending = nil
	q.mu.Unlock()
}
