package animation

import (
	"time"

	"github.com/i2y/castella-go/runtime"
	"github.com/i2y/castella-go/state"
)

// Tween animates a float signal from one value to another over a fixed
// duration, stepping once per frame tick. Each step writes through
// Signal.Set, so subscribers see the value exactly as they would any
// other state change, with the whole tick batched.
type Tween struct {
	target   *state.Signal[float64]
	from     float64
	to       float64
	duration time.Duration
	easing   Easing
	loop     bool

	running bool
	started time.Time
}

// NewTween creates a tween writing into target. A nil easing defaults
// to Linear.
func NewTween(target *state.Signal[float64], from, to float64, duration time.Duration, easing Easing) *Tween {
	if easing == nil {
		easing = Linear
	}
	return &Tween{
		target:   target,
		from:     from,
		to:       to,
		duration: duration,
		easing:   easing,
	}
}

// Loop makes the tween restart from the beginning when it completes.
func (t *Tween) Loop(loop bool) *Tween {
	t.loop = loop
	return t
}

// Running reports whether the tween is currently advancing.
func (t *Tween) Running() bool {
	if t == nil {
		return false
	}
	return t.running
}

// Start registers the tween with the app's frame tick. Starting an
// already running tween restarts it from the beginning.
func (t *Tween) Start(app *runtime.App) {
	if t == nil || app == nil || t.target == nil {
		return
	}
	restart := t.running
	t.running = true
	t.started = time.Time{}
	if restart {
		return
	}
	app.OnFrame(t.tick)
}

// Cancel stops the tween. The target keeps the last value written; no
// snap to the end value happens.
func (t *Tween) Cancel() {
	if t == nil {
		return
	}
	t.running = false
}

// Finish stops the tween and snaps the target to the end value.
func (t *Tween) Finish() {
	if t == nil {
		return
	}
	running := t.running
	t.running = false
	if running {
		t.target.Set(t.to)
	}
}

// To returns the end value the tween drives toward.
func (t *Tween) To() float64 {
	if t == nil {
		return 0
	}
	return t.to
}

func (t *Tween) tick(now time.Time) bool {
	if !t.running {
		return false
	}
	if t.started.IsZero() {
		t.started = now
	}
	progress := 1.0
	if t.duration > 0 {
		progress = float64(now.Sub(t.started)) / float64(t.duration)
	}
	if progress >= 1 {
		t.target.Set(t.easing(1)*(t.to-t.from) + t.from)
		if t.loop {
			t.started = now
			return true
		}
		t.running = false
		return false
	}
	if progress < 0 {
		progress = 0
	}
	t.target.Set(t.easing(progress)*(t.to-t.from) + t.from)
	return true
}
