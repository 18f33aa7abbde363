package state

import "sync"

// notifier is the batch-internal view of a signal: deliver the pending
// notification now.
type notifier interface {
	notifyNow()
}

// The batch scope is process-wide scheduler state: while a scope is
// open, Set calls record the touched signal instead of notifying, and
// the outermost End delivers exactly one notification per distinct
// signal, in touch order. Scopes nest; only the outermost End flushes.
var batch struct {
	mu      sync.Mutex
	depth   int
	order   []notifier
	pending map[notifier]struct{}
}

// Begin opens a batch scope. Every Begin must be paired with End;
// prefer Batch for scoped use.
func Begin() {
	batch.mu.Lock()
	batch.depth++
	if batch.pending == nil {
		batch.pending = make(map[notifier]struct{})
	}
	batch.mu.Unlock()
}

// End closes the innermost batch scope. Closing the outermost scope
// delivers the coalesced notifications.
func End() {
	batch.mu.Lock()
	if batch.depth == 0 {
		batch.mu.Unlock()
		return
	}
	batch.depth--
	if batch.depth > 0 {
		batch.mu.Unlock()
		return
	}
	order := batch.order
	batch.order = nil
	batch.pending = make(map[notifier]struct{})
	batch.mu.Unlock()

	for _, n := range order {
		n.notifyNow()
	}
}

// Batch runs fn inside a batch scope. All signal mutations made by fn
// collapse into a single notification per distinct signal when the
// outermost scope exits, even if fn panics.
func Batch(fn func()) {
	if fn == nil {
		return
	}
	Begin()
	defer End()
	fn()
}

// InBatch reports whether a batch scope is currently open.
func InBatch() bool {
	batch.mu.Lock()
	open := batch.depth > 0
	batch.mu.Unlock()
	return open
}

// deferNotify records n for delivery at scope exit. It reports false
// when no scope is open and the caller should notify immediately.
func deferNotify(n notifier) bool {
	batch.mu.Lock()
	defer batch.mu.Unlock()
	if batch.depth == 0 {
		return false
	}
	if _, seen := batch.pending[n]; !seen {
		batch.pending[n] = struct{}{}
		batch.order = append(batch.order, n)
	}
	return true
}
