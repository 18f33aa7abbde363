package runtime

import (
	"sort"
	"sync"
)

// BuildOwner coalesces component rebuilds. Signal notifications mark
// components dirty; the application flushes the owner once per frame
// tick, so any number of notifications between ticks costs each
// component at most one view() call. Parents rebuild before children
// so a parent rebuild cannot invalidate freshly built child work.
type BuildOwner struct {
	mu      sync.Mutex
	order   []*Component
	pending map[*Component]struct{}
	wake    func()
}

// NewBuildOwner creates a build owner. wake is called (at most once
// per pending batch) when a rebuild becomes necessary; the app uses it
// to request a frame.
func NewBuildOwner(wake func()) *BuildOwner {
	return &BuildOwner{
		pending: make(map[*Component]struct{}),
		wake:    wake,
	}
}

// ScheduleBuild marks c dirty. Duplicate schedules between flushes are
// collapsed.
func (o *BuildOwner) ScheduleBuild(c *Component) {
	if o == nil || c == nil {
		return
	}
	o.mu.Lock()
	_, queued := o.pending[c]
	if !queued {
		o.pending[c] = struct{}{}
		o.order = append(o.order, c)
	}
	first := !queued && len(o.order) == 1
	wake := o.wake
	o.mu.Unlock()

	if first && wake != nil {
		wake()
	}
}

// Discard removes c from the pending set. Called when a component is
// unmounted so an in-flight notification is dropped rather than
// applied to a half-torn-down tree.
func (o *BuildOwner) Discard(c *Component) {
	if o == nil || c == nil {
		return
	}
	o.mu.Lock()
	if _, queued := o.pending[c]; queued {
		delete(o.pending, c)
		for i, q := range o.order {
			if q == c {
				o.order = append(o.order[:i], o.order[i+1:]...)
				break
			}
		}
	}
	o.mu.Unlock()
}

// Dirty reports whether any rebuilds are pending.
func (o *BuildOwner) Dirty() bool {
	if o == nil {
		return false
	}
	o.mu.Lock()
	dirty := len(o.order) > 0
	o.mu.Unlock()
	return dirty
}

// Flush rebuilds every pending component, parents before children, and
// returns how many components were rebuilt. Rebuilds scheduled during
// the flush (by views touching signals) are processed in the same
// flush until the set drains.
func (o *BuildOwner) Flush() int {
	if o == nil {
		return 0
	}
	total := 0
	for {
		o.mu.Lock()
		if len(o.order) == 0 {
			o.mu.Unlock()
			return total
		}
		batch := o.order
		o.order = nil
		o.pending = make(map[*Component]struct{})
		o.mu.Unlock()

		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].depth() < batch[j].depth()
		})
		for _, c := range batch {
			if c.rebuild() {
				total++
			}
		}
	}
}
