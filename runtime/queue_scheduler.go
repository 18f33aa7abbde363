package runtime

import (
	"sync/atomic"

	"github.com/i2y/castella-go/state"
)

// QueueScheduler enqueues callbacks onto the app's state queue and
// wakes the frame to flush them on the UI goroutine. Wake requests are
// coalesced until the next redraw drains the queue.
type QueueScheduler struct {
	queue   *state.Queue
	wake    func()
	pending atomic.Bool
}

// NewQueueScheduler wires a queue to a wake function.
func NewQueueScheduler(queue *state.Queue, wake func()) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{
		queue: queue,
		wake:  wake,
	}
}

// Schedule enqueues the callback and requests a wakeup.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || s.queue == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	if s.wake == nil {
		return
	}
	if s.pending.CompareAndSwap(false, true) {
		s.wake()
	}
}

func (s *QueueScheduler) resetPending() {
	if s == nil {
		return
	}
	s.pending.Store(false)
}
