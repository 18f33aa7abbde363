package animation

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/i2y/castella-go/runtime"
	"github.com/i2y/castella-go/state"
)

// Value is a float signal with a convenience animation handle: at most
// one tween runs against it, and retargeting picks up from wherever
// the previous animation left off.
type Value struct {
	sig   *state.Signal[float64]
	tween *Tween
}

// NewValue creates an animated value at initial.
func NewValue(initial float64) *Value {
	return &Value{sig: state.NewSignal(initial)}
}

// Signal exposes the underlying signal for subscription and reads.
func (v *Value) Signal() *state.Signal[float64] { return v.sig }

// Get returns the current value.
func (v *Value) Get() float64 { return v.sig.Get() }

// Set jumps to a value immediately, cancelling any running animation.
func (v *Value) Set(value float64) {
	v.tween.Cancel()
	v.sig.Set(value)
}

// AnimateTo eases from the current value to target over duration.
func (v *Value) AnimateTo(app *runtime.App, target float64, duration time.Duration, easing Easing) {
	v.tween.Cancel()
	v.tween = NewTween(v.sig, v.sig.Get(), target, duration, easing)
	v.tween.Start(app)
}

// Running reports whether an animation is in flight.
func (v *Value) Running() bool { return v.tween.Running() }

// Stop halts the running animation, keeping the last written value.
func (v *Value) Stop() { v.tween.Cancel() }

// Finish halts the running animation and snaps to its target.
func (v *Value) Finish() { v.tween.Finish() }

// Target returns the value the running animation is heading for, or
// the current value when nothing is animating.
func (v *Value) Target() float64 {
	if v.tween.Running() {
		return v.tween.To()
	}
	return v.sig.Get()
}

// ColorTween animates a hex color signal by interpolating in Luv
// space, which keeps intermediate colors perceptually even.
type ColorTween struct {
	target *state.Signal[string]
	driver *state.Signal[float64]
	tween  *Tween
	unsub  func()
}

// NewColorTween creates a tween writing eased colors into target.
func NewColorTween(target *state.Signal[string], from, to string, duration time.Duration, easing Easing) *ColorTween {
	fromC, _ := colorful.Hex(from)
	toC, _ := colorful.Hex(to)
	driver := state.NewSignal(0.0)
	ct := &ColorTween{
		target: target,
		driver: driver,
		tween:  NewTween(driver, 0, 1, duration, easing),
	}
	ct.unsub = driver.Subscribe(func() {
		ct.target.Set(fromC.BlendLuv(toC, driver.Get()).Clamped().Hex())
	})
	return ct
}

// Loop makes the color tween restart when it completes.
func (ct *ColorTween) Loop(loop bool) *ColorTween {
	ct.tween.Loop(loop)
	return ct
}

// Start registers the tween with the app's frame tick.
func (ct *ColorTween) Start(app *runtime.App) {
	ct.tween.Start(app)
}

// Cancel stops the tween, keeping the last written color.
func (ct *ColorTween) Cancel() {
	ct.tween.Cancel()
}

// Stop cancels the tween and releases the driver subscription.
func (ct *ColorTween) Stop() {
	ct.tween.Cancel()
	if ct.unsub != nil {
		ct.unsub()
		ct.unsub = nil
	}
}
