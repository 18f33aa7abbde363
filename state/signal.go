// Package state provides the observable value cells driving component
// rebuilds: typed signals, derived values, and scoped update batching.
package state

import (
	"sort"
	"sync"
)

// EqualFunc compares two values for equality.
type EqualFunc[T any] func(a, b T) bool

// EqualComparable compares comparable values with ==.
func EqualComparable[T comparable](a, b T) bool {
	return a == b
}

// Subscribable emits change notifications.
type Subscribable interface {
	Subscribe(fn func()) func()
}

type subscriber struct {
	id        int
	fn        func()
	scheduler Scheduler
}

// Signal holds a value and notifies subscribers on change.
//
// Set may be called from any goroutine. Subscribers registered with a
// Scheduler have their callbacks marshaled through it; subscribers
// without one run synchronously in the caller's goroutine. Callbacks
// run in subscription order, and a panicking callback does not stop
// the remaining ones.
type Signal[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]subscriber
	next  int
	equal EqualFunc[T]
}

// NewSignal creates a signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// SetEqualFunc configures the equality check used to suppress
// redundant notifications.
func (s *Signal[T]) SetEqualFunc(fn EqualFunc[T]) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	if s == nil {
		var zero T
		return zero
	}
	s.mu.Lock()
	value := s.value
	s.mu.Unlock()
	return value
}

// Set replaces the value and notifies subscribers if it changed.
// Inside a batch scope the notification is deferred and coalesced; see
// Batch.
func (s *Signal[T]) Set(value T) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, value) {
		s.mu.Unlock()
		return false
	}
	s.value = value
	s.mu.Unlock()

	s.Notify()
	return true
}

// Update replaces the value using fn.
// fn runs outside the signal lock; Update is not atomic across
// goroutines.
func (s *Signal[T]) Update(fn func(T) T) bool {
	if s == nil || fn == nil {
		return false
	}
	return s.Set(fn(s.Get()))
}

// Notify delivers a change notification to every subscriber, or defers
// it when a batch scope is open.
func (s *Signal[T]) Notify() {
	if s == nil {
		return
	}
	if deferNotify(s) {
		return
	}
	s.notifyNow()
}

func (s *Signal[T]) notifyNow() {
	s.mu.Lock()
	subs := s.copySubscribersLocked()
	s.mu.Unlock()

	for _, sub := range subs {
		deliver(sub)
	}
}

// Subscribe registers a listener for change notifications and returns
// an idempotent unsubscribe function.
func (s *Signal[T]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener whose callback is
// dispatched through scheduler. A nil scheduler runs the callback
// synchronously.
func (s *Signal[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]subscriber)
	}
	id := s.next
	s.next++
	s.subs[id] = subscriber{id: id, fn: fn, scheduler: scheduler}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// copySubscribersLocked snapshots subscribers in subscription order.
func (s *Signal[T]) copySubscribersLocked() []subscriber {
	if len(s.subs) == 0 {
		return nil
	}
	subs := make([]subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].id < subs[j].id })
	return subs
}

func deliver(sub subscriber) {
	if sub.fn == nil {
		return
	}
	if sub.scheduler == nil {
		invoke(sub.fn)
		return
	}
	sub.scheduler.Schedule(sub.fn)
}

// invoke isolates a subscriber panic so later subscribers still run.
func invoke(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
