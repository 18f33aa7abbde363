package widgets

import (
	"fmt"

	"github.com/i2y/castella-go/runtime"
	"github.com/i2y/castella-go/state"
)

// SignalText is a Text bound directly to a signal: the label repaints
// on change without going through a component rebuild. Useful for
// high-frequency values like counters and clocks.
type SignalText struct {
	Text
	source state.Subscribable
	render func() string
	subs   state.Subscriptions
}

// NewSignalText creates a label tracking source.
func NewSignalText(source *state.Signal[string]) *SignalText {
	return newSignalText(source, source.Get)
}

// NewSignalTextf creates a label rendering source through a format
// string.
func NewSignalTextf[T any](format string, source *state.Signal[T]) *SignalText {
	return newSignalText(source, func() string {
		return fmt.Sprintf(format, source.Get())
	})
}

// NewComputedText creates a label tracking a derived value.
func NewComputedText(source *state.Computed[string]) *SignalText {
	return newSignalText(source, source.Get)
}

// NewComputedTextf creates a label rendering a derived value through a
// format string.
func NewComputedTextf[T any](format string, source *state.Computed[T]) *SignalText {
	return newSignalText(source, func() string {
		return fmt.Sprintf(format, source.Get())
	})
}

func newSignalText(source state.Subscribable, render func() string) *SignalText {
	st := &SignalText{source: source, render: render}
	st.Text = *NewText(render())
	return st
}

// Bind picks up the app's UI-thread scheduler for change delivery.
func (st *SignalText) Bind(app *runtime.App) {
	st.subs.SetScheduler(app.StateScheduler())
}

// Mount starts tracking the source signal.
func (st *SignalText) Mount() {
	st.subs.Observe(st.source, func() {
		st.SetText(st.render())
	})
	st.SetText(st.render())
}

// Unmount stops tracking.
func (st *SignalText) Unmount() {
	st.subs.Clear()
}

// Update rebinds to the peer's source on reconciliation.
func (st *SignalText) Update(next runtime.Widget) {
	n, ok := next.(*SignalText)
	if !ok {
		return
	}
	if n.source != st.source {
		st.subs.Clear()
		st.source = n.source
		st.render = n.render
		st.Mount()
		return
	}
	st.render = n.render
	st.Text.Update(&n.Text)
}
