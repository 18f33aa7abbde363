package runtime

import (
	"strings"
	"testing"

	"github.com/i2y/castella-go/state"
)

func TestComponent_RebuildsOnObservedSignal(t *testing.T) {
	frame := newFakeFrame(100, 100)
	count := state.NewSignal(0)
	builds := 0
	c := NewComponent(func() Widget {
		builds++
		return newStubLeaf("leaf", 10, 10)
	}).Observe(count)
	app := NewApp(AppConfig{Frame: frame, Root: c})

	tick(app, frame)
	if builds != 1 {
		t.Fatalf("expected initial build, got %d", builds)
	}

	count.Set(1)
	if builds != 1 {
		t.Fatalf("expected rebuild deferred to the next tick, got %d builds", builds)
	}
	tick(app, frame)
	if builds != 2 {
		t.Fatalf("expected rebuild after signal change, got %d builds", builds)
	}
}

func TestComponent_BatchedSetsCostOneRebuild(t *testing.T) {
	frame := newFakeFrame(100, 100)
	count := state.NewSignal(0)
	builds := 0
	c := NewComponent(func() Widget {
		builds++
		return newStubLeaf("leaf", 10, 10)
	}).Observe(count)
	app := NewApp(AppConfig{Frame: frame, Root: c})
	tick(app, frame)

	state.Batch(func() {
		count.Set(1)
		count.Set(2)
		count.Set(3)
	})
	tick(app, frame)

	if builds != 2 {
		t.Fatalf("expected exactly one rebuild for the batch, got %d builds", builds)
	}
	if count.Get() != 3 {
		t.Fatalf("expected final value 3, got %d", count.Get())
	}
}

func TestComponent_ViewPanicBecomesBuildError(t *testing.T) {
	frame := newFakeFrame(100, 100)
	boom := state.NewSignal(false)
	c := NewComponent(func() Widget {
		if boom.Get() {
			panic("exploded")
		}
		return newStubLeaf("leaf", 10, 10)
	}).Observe(boom)
	sibling := NewComponent(func() Widget { return newStubLeaf("ok", 10, 10) })
	root := newStubColumn(c, sibling)
	app := NewApp(AppConfig{Frame: frame, Root: root})
	tick(app, frame)

	boom.Set(true)
	tick(app, frame)

	if c.BuildError() == nil {
		t.Fatalf("expected build error after panicking view")
	}
	if !strings.Contains(c.BuildError().Error(), "exploded") {
		t.Fatalf("unexpected build error: %v", c.BuildError())
	}
	if sibling.BuildError() != nil {
		t.Fatalf("sibling must be unaffected, got %v", sibling.BuildError())
	}

	// Recovery: the next successful build clears the error.
	boom.Set(false)
	tick(app, frame)
	if c.BuildError() != nil {
		t.Fatalf("expected error cleared after recovery, got %v", c.BuildError())
	}
	if c.Child() == nil {
		t.Fatalf("expected subtree rebuilt after recovery")
	}
}

func TestComponent_SignalWriteDuringRebuildIgnored(t *testing.T) {
	frame := newFakeFrame(100, 100)
	sig := state.NewSignal(0)
	builds := 0
	var c *Component
	c = NewComponent(func() Widget {
		builds++
		if builds > 1 {
			// An impure view writing its own dependency must not
			// schedule itself forever.
			sig.Set(sig.Get() + 1)
		}
		return newStubLeaf("leaf", 10, 10)
	}).Observe(sig)
	app := NewApp(AppConfig{Frame: frame, Root: c})
	tick(app, frame)

	sig.Set(100)
	tick(app, frame)
	if builds != 2 {
		t.Fatalf("expected self-notification suppressed, got %d builds", builds)
	}
	if app.buildOwner.Dirty() {
		t.Fatalf("expected no pending rebuild after tick")
	}
}

func TestComponent_UnmountDiscardsPendingRebuild(t *testing.T) {
	frame := newFakeFrame(100, 100)
	sig := state.NewSignal(0)
	show := state.NewSignal(true)
	innerBuilds := 0
	var inner *Component
	outer := NewComponent(func() Widget {
		if !show.Get() {
			return newStubLeaf("empty", 10, 10)
		}
		inner = NewComponent(func() Widget {
			innerBuilds++
			return newStubLeaf("inner", 10, 10)
		}).Observe(sig)
		return inner
	}).Observe(show)
	app := NewApp(AppConfig{Frame: frame, Root: outer})
	tick(app, frame)

	mounted := inner
	sig.Set(1)   // schedules inner
	show.Set(false) // outer rebuild will unmount inner
	tick(app, frame)

	if mounted.App() != nil {
		t.Fatalf("expected inner component unmounted")
	}
	if innerBuilds != 1 {
		t.Fatalf("expected discarded rebuild, got %d builds", innerBuilds)
	}
}

func TestComponent_UnmountReleasesSubscriptions(t *testing.T) {
	frame := newFakeFrame(100, 100)
	sig := state.NewSignal(0)
	show := state.NewSignal(true)
	innerBuilds := 0
	inner := NewComponent(func() Widget {
		innerBuilds++
		return newStubLeaf("inner", 10, 10)
	}).Observe(sig)
	outer := NewComponent(func() Widget {
		if show.Get() {
			return newStubColumn(inner)
		}
		return newStubColumn()
	}).Observe(show)
	app := NewApp(AppConfig{Frame: frame, Root: outer})
	tick(app, frame)
	if innerBuilds != 1 {
		t.Fatalf("inner builds = %d, want 1", innerBuilds)
	}

	show.Set(false)
	tick(app, frame)

	// A released subscription must not reach the scheduler anymore.
	before := frame.updates
	sig.Set(1)
	if frame.updates != before {
		t.Fatalf("unmounted component still subscribed, frame woken")
	}
	tick(app, frame)
	if innerBuilds != 1 {
		t.Fatalf("unmounted component rebuilt, builds = %d", innerBuilds)
	}
}

func TestComponent_NestedComponentKeepsSubtree(t *testing.T) {
	frame := newFakeFrame(100, 100)
	title := state.NewSignal("a")
	innerBuilds := 0
	outer := NewComponent(func() Widget {
		label := title.Get()
		return NewComponent(func() Widget {
			innerBuilds++
			return newStubLeaf(label, 10, 10)
		})
	}).Observe(title)
	app := NewApp(AppConfig{Frame: frame, Root: outer})
	tick(app, frame)

	inner := outer.Child().(*Component)
	leaf := inner.Child().(*stubLeaf)
	if innerBuilds != 1 {
		t.Fatalf("inner builds = %d after mount, want 1", innerBuilds)
	}

	title.Set("b")
	tick(app, frame)

	if outer.Child().(*Component) != inner {
		t.Fatalf("expected nested component identity kept across parent rebuild")
	}
	if inner.App() == nil {
		t.Fatalf("expected nested component to stay mounted")
	}
	kept, ok := inner.Child().(*stubLeaf)
	if !ok || kept != leaf {
		t.Fatalf("expected nested leaf identity kept, got %T", inner.Child())
	}
	if kept.name != "b" {
		t.Fatalf("expected the adopted view to produce the subtree, got %q", kept.name)
	}
	if innerBuilds != 2 {
		t.Fatalf("inner builds = %d after parent rebuild, want 2", innerBuilds)
	}
}
