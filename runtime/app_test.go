package runtime

import (
	"strconv"
	"testing"
	"time"

	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/state"
)

func TestApp_CounterEndToEnd(t *testing.T) {
	frame := newFakeFrame(100, 100)
	count := state.NewSignal(0)
	builds := 0
	view := func() Widget {
		builds++
		label := newStubLeaf(strconv.Itoa(count.Get()), 30, 10)
		button := newStubLeaf("increment", 30, 10)
		button.onUp = func() {
			count.Update(func(v int) int { return v + 1 })
		}
		return newStubColumn(label, button)
	}
	app := NewApp(AppConfig{Frame: frame, Root: NewComponent(view).Observe(count)})
	tick(app, frame)

	click := func() {
		p := geom.Point{X: 5, Y: 15}
		app.dispatch.mouseDown(event.Mouse{Pos: p, Button: event.ButtonLeft})
		app.dispatch.mouseUp(event.Mouse{Pos: p, Button: event.ButtonLeft})
		tick(app, frame)
	}
	click()
	click()
	click()

	if count.Get() != 3 {
		t.Fatalf("expected count 3 after 3 clicks, got %d", count.Get())
	}
	// One initial build plus one rebuild per click.
	if builds != 4 {
		t.Fatalf("expected 4 builds, got %d", builds)
	}

	root := app.topLayer().(*Component)
	label := root.Child().(*stubColumn).Children()[0].(*stubLeaf)
	if label.name != "3" {
		t.Fatalf("expected label updated to 3, got %q", label.name)
	}
}

func TestApp_BatchedClicksRebuildOnce(t *testing.T) {
	frame := newFakeFrame(100, 100)
	count := state.NewSignal(0)
	builds := 0
	app := NewApp(AppConfig{Frame: frame, Root: NewComponent(func() Widget {
		builds++
		return newStubLeaf("leaf", 10, 10)
	}).Observe(count)})
	tick(app, frame)

	state.Batch(func() {
		for i := 0; i < 3; i++ {
			count.Update(func(v int) int { return v + 1 })
		}
	})
	tick(app, frame)

	if count.Get() != 3 {
		t.Fatalf("expected count 3, got %d", count.Get())
	}
	if builds != 2 {
		t.Fatalf("expected single rebuild for the batch, got %d builds", builds)
	}
}

func TestApp_SignalWakesFrame(t *testing.T) {
	frame := newFakeFrame(100, 100)
	sig := state.NewSignal(0)
	app := NewApp(AppConfig{Frame: frame, Root: NewComponent(func() Widget {
		return newStubLeaf("leaf", 10, 10)
	}).Observe(sig)})
	tick(app, frame)

	before := frame.updates
	sig.Set(1)
	if frame.updates == before {
		t.Fatalf("expected signal change to wake the frame")
	}
}

func TestApp_StateSchedulerRunsOnTick(t *testing.T) {
	frame := newFakeFrame(100, 100)
	app := NewApp(AppConfig{Frame: frame, Root: NewComponent(func() Widget {
		return newStubLeaf("leaf", 10, 10)
	})})

	ran := false
	app.StateScheduler().Schedule(func() { ran = true })
	if ran {
		t.Fatalf("expected callback deferred to the tick")
	}
	tick(app, frame)
	if !ran {
		t.Fatalf("expected scheduled callback run by the tick")
	}
}

func TestApp_OnFrameRunsUntilDone(t *testing.T) {
	frame := newFakeFrame(100, 100)
	app := NewApp(AppConfig{Frame: frame, Root: NewComponent(func() Widget {
		return newStubLeaf("leaf", 10, 10)
	})})

	ticks := 0
	app.OnFrame(func(now time.Time) bool {
		ticks++
		return ticks < 3
	})

	tick(app, frame)
	tick(app, frame)
	tick(app, frame)
	tick(app, frame)
	if ticks != 3 {
		t.Fatalf("expected callback removed after returning false, got %d ticks", ticks)
	}
}

func TestApp_PaintClearsDirtyFlags(t *testing.T) {
	frame := newFakeFrame(100, 100)
	leaf := newStubLeaf("leaf", 10, 10)
	root := newStubColumn(leaf)
	app := NewApp(AppConfig{Frame: frame, Root: root})

	tick(app, frame)
	if leaf.paints != 1 {
		t.Fatalf("expected leaf painted once, got %d", leaf.paints)
	}
	if leaf.IsDirty() {
		t.Fatalf("expected dirty flag cleared after paint")
	}
}

func TestApp_OnFrameRegisteredDuringTickSurvives(t *testing.T) {
	frame := newFakeFrame(100, 100)
	app := NewApp(AppConfig{Frame: frame, Root: NewComponent(func() Widget {
		return newStubLeaf("leaf", 10, 10)
	})})

	chained := 0
	app.OnFrame(func(now time.Time) bool {
		// A callback chaining another one, the way a finished tween
		// starts the next animation.
		app.OnFrame(func(time.Time) bool {
			chained++
			return false
		})
		return false
	})

	tick(app, frame)
	if chained != 0 {
		t.Fatalf("expected chained callback deferred to the next tick")
	}
	tick(app, frame)
	if chained != 1 {
		t.Fatalf("chained callback runs = %d, want 1", chained)
	}
}
