package state

// Computed derives its value from other signals and re-evaluates when
// any dependency notifies. Recomputation produces at most one
// downstream notification per change (none when the derived value is
// equal under the configured EqualFunc).
//
// A Computed is itself Subscribable, so components and bound widgets
// can observe derived values the same way they observe signals.
type Computed[T any] struct {
	out    *Signal[T]
	derive func() T
	subs   Subscriptions
}

// NewComputed creates a derived value from dependencies. Recomputation
// runs synchronously on the goroutine that wrote the dependency.
func NewComputed[T any](derive func() T, deps ...Subscribable) *Computed[T] {
	return NewComputedWithScheduler(nil, derive, deps...)
}

// NewComputedWithScheduler creates a derived value whose recomputation
// is dispatched through scheduler.
func NewComputedWithScheduler[T any](scheduler Scheduler, derive func() T, deps ...Subscribable) *Computed[T] {
	if derive == nil {
		derive = func() T {
			var zero T
			return zero
		}
	}
	c := &Computed[T]{out: NewSignal(derive()), derive: derive}
	c.subs.SetScheduler(scheduler)
	for _, dep := range deps {
		c.subs.Observe(dep, c.refresh)
	}
	return c
}

// SetEqualFunc configures the equality check used to suppress
// redundant downstream updates.
func (c *Computed[T]) SetEqualFunc(fn EqualFunc[T]) {
	if c == nil {
		return
	}
	c.out.SetEqualFunc(fn)
}

// Get returns the current computed value.
func (c *Computed[T]) Get() T {
	if c == nil {
		var zero T
		return zero
	}
	return c.out.Get()
}

// Subscribe registers a listener for change notifications.
func (c *Computed[T]) Subscribe(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.out.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener using a scheduler.
// If scheduler is nil, callbacks run synchronously.
func (c *Computed[T]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.out.SubscribeWithScheduler(scheduler, fn)
}

// Stop releases the dependency subscriptions; the last computed value
// stays readable.
func (c *Computed[T]) Stop() {
	if c == nil {
		return
	}
	c.subs.Clear()
}

func (c *Computed[T]) refresh() {
	c.out.Set(c.derive())
}
