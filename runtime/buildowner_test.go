package runtime

import "testing"

func TestBuildOwner_WakesOncePerBatch(t *testing.T) {
	wakes := 0
	owner := NewBuildOwner(func() { wakes++ })
	a := NewComponent(func() Widget { return newStubLeaf("a", 1, 1) })
	b := NewComponent(func() Widget { return newStubLeaf("b", 1, 1) })

	owner.ScheduleBuild(a)
	owner.ScheduleBuild(a)
	owner.ScheduleBuild(b)
	if wakes != 1 {
		t.Fatalf("expected 1 wake for the batch, got %d", wakes)
	}
	if !owner.Dirty() {
		t.Fatalf("expected owner dirty")
	}
}

func TestBuildOwner_DiscardDropsPending(t *testing.T) {
	owner := NewBuildOwner(nil)
	c := NewComponent(func() Widget { return newStubLeaf("c", 1, 1) })

	owner.ScheduleBuild(c)
	owner.Discard(c)
	if owner.Dirty() {
		t.Fatalf("expected discard to clear pending set")
	}
	if n := owner.Flush(); n != 0 {
		t.Fatalf("expected no rebuilds after discard, got %d", n)
	}
}

func TestBuildOwner_FlushParentsFirst(t *testing.T) {
	frame := newFakeFrame(100, 100)
	var order []string

	var child *Component
	child = NewComponent(func() Widget {
		order = append(order, "child")
		return newStubLeaf("leaf", 10, 10)
	})
	parent := NewComponent(func() Widget {
		order = append(order, "parent")
		return child
	})
	app := NewApp(AppConfig{Frame: frame, Root: parent})
	tick(app, frame)

	order = nil
	// Schedule deliberately child-first; flush must still run the
	// parent's view before the child's.
	app.buildOwner.ScheduleBuild(child)
	app.buildOwner.ScheduleBuild(parent)
	app.buildOwner.Flush()

	if len(order) < 2 || order[0] != "parent" || order[1] != "child" {
		t.Fatalf("unexpected rebuild order: %v", order)
	}
}

func TestBuildOwner_FlushDrainsScheduledDuringFlush(t *testing.T) {
	frame := newFakeFrame(100, 100)
	var app *App
	var a, b *Component
	push := false
	b = NewComponent(func() Widget { return newStubLeaf("b", 10, 10) })
	a = NewComponent(func() Widget {
		// A rebuild that dirties a sibling: the same flush must pick
		// the sibling up.
		if push {
			push = false
			app.buildOwner.ScheduleBuild(b)
		}
		return newStubLeaf("a", 10, 10)
	})
	root := newStubColumn(a, b)
	app = NewApp(AppConfig{Frame: frame, Root: root})
	tick(app, frame)

	push = true
	app.buildOwner.ScheduleBuild(a)
	if n := app.buildOwner.Flush(); n != 2 {
		t.Fatalf("expected flush to drain both rebuilds, got %d", n)
	}
	if app.buildOwner.Dirty() {
		t.Fatalf("expected owner clean after flush")
	}
}
