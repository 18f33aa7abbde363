package state

import "sync"

// List is an observable slice. Every mutation emits one change
// notification (coalesced like any signal inside a batch scope), which
// makes it the natural backing store for list-shaped component views.
type List[T any] struct {
	mu    sync.Mutex
	items []T
	rev   *Signal[uint64]
}

// NewList creates a list seeded with items.
func NewList[T any](items ...T) *List[T] {
	l := &List[T]{rev: NewSignal(uint64(0))}
	l.items = append(l.items, items...)
	return l
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	n := len(l.items)
	l.mu.Unlock()
	return n
}

// At returns the item at index i. Out-of-range indices return the zero
// value.
func (l *List[T]) At(i int) T {
	var zero T
	if l == nil {
		return zero
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return zero
	}
	return l.items[i]
}

// Items returns a copy of the current contents.
func (l *List[T]) Items() []T {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	items := make([]T, len(l.items))
	copy(items, l.items)
	l.mu.Unlock()
	return items
}

// Append adds items at the end.
func (l *List[T]) Append(items ...T) {
	if l == nil || len(items) == 0 {
		return
	}
	l.mu.Lock()
	l.items = append(l.items, items...)
	l.mu.Unlock()
	l.bump()
}

// Insert places item at index i, clamping i into range.
func (l *List[T]) Insert(i int, item T) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if i < 0 {
		i = 0
	}
	if i > len(l.items) {
		i = len(l.items)
	}
	l.items = append(l.items[:i], append([]T{item}, l.items[i:]...)...)
	l.mu.Unlock()
	l.bump()
}

// Set replaces the item at index i. Out-of-range indices are ignored.
func (l *List[T]) Set(i int, item T) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return
	}
	l.items[i] = item
	l.mu.Unlock()
	l.bump()
}

// RemoveAt deletes the item at index i. Out-of-range indices are
// ignored.
func (l *List[T]) RemoveAt(i int) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.mu.Unlock()
	l.bump()
}

// Replace swaps the whole contents for items.
func (l *List[T]) Replace(items []T) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.items = append(l.items[:0:0], items...)
	l.mu.Unlock()
	l.bump()
}

// Clear removes all items.
func (l *List[T]) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
	l.bump()
}

// Subscribe registers a listener for change notifications.
func (l *List[T]) Subscribe(fn func()) func() {
	if l == nil {
		return func() {}
	}
	return l.rev.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener using a scheduler.
func (l *List[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if l == nil {
		return func() {}
	}
	return l.rev.SubscribeWithScheduler(scheduler, fn)
}

func (l *List[T]) bump() {
	l.rev.Update(func(v uint64) uint64 { return v + 1 })
}
