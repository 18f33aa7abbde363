package runtime

import (
	"fmt"
	"sync/atomic"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/state"
)

// buildState tracks where a component is in its rebuild cycle.
type buildState int

const (
	buildClean buildState = iota
	buildDirty
	buildRebuilding
)

// Component is a widget whose subtree is produced by a view function.
// When a signal the component observes notifies, the component is
// marked dirty and the build owner re-invokes the view on the next
// flush, reconciling the result against the mounted subtree.
//
// The view must be a pure function of the component's current signal
// values: no I/O, no goroutine starts, no signal writes. Side effects
// belong in constructors and event handlers.
type Component struct {
	Base
	view     func() Widget
	child    Widget
	observed []state.Subscribable
	subs     state.Subscriptions
	phase    atomic.Int32 // buildState
	err      error
}

var (
	_ Widget    = (*Component)(nil)
	_ Container = (*Component)(nil)
	_ Updater   = (*Component)(nil)
	_ Lifecycle = (*Component)(nil)
	_ Binder    = (*Component)(nil)
)

// NewComponent creates a component around a view function.
func NewComponent(view func() Widget) *Component {
	c := &Component{Base: NewBase(), view: view}
	return c
}

// Observe subscribes the component to signals: any notification marks
// it dirty through the build owner, marshaled onto the UI goroutine by
// the app's scheduler. Subscriptions start at mount and are released
// when the component unmounts; a component built during a rebuild and
// then discarded by reconciliation never subscribes at all.
func (c *Component) Observe(sigs ...state.Subscribable) *Component {
	for _, sig := range sigs {
		if sig == nil {
			continue
		}
		c.observed = append(c.observed, sig)
		if c.App() != nil {
			c.subscribe(sig)
		}
	}
	return c
}

// ObserveFunc runs fn on the UI goroutine whenever sig notifies, in
// addition to the component's own dirty marking. Use it for handler
// logic that must see a consistent tree.
func (c *Component) ObserveFunc(sig state.Subscribable, fn func()) {
	if sig == nil || fn == nil {
		return
	}
	c.subs.Observe(sig, fn)
}

// BuildError returns the error recovered from the last view
// invocation, or nil if the last build succeeded.
func (c *Component) BuildError() error { return c.err }

// Child returns the currently mounted subtree root, or nil before the
// first build.
func (c *Component) Child() Widget { return c.child }

// Children implements Container.
func (c *Component) Children() []Widget {
	if c.child == nil {
		return nil
	}
	return []Widget{c.child}
}

// ReplaceChildren implements the reconciler's child rewrite hook.
func (c *Component) ReplaceChildren(children []Widget) {
	if len(children) == 0 {
		c.child = nil
		return
	}
	c.child = children[0]
	c.child.WidgetBase().SetParent(c)
}

// Arrange gives the whole component area to the child, building it
// first if this is the initial layout pass.
func (c *Component) Arrange(p backend.Painter) {
	c.ensureBuilt()
	if c.child == nil {
		return
	}
	c.child.WidgetBase().Resize(c.Size())
	c.child.WidgetBase().MoveTo(c.Pos())
}

// Measure reports the child's intrinsic size.
func (c *Component) Measure(p backend.TextMeasurer) geom.Size {
	c.ensureBuilt()
	if c.child == nil {
		return geom.Size{}
	}
	if m, ok := c.child.(Measurable); ok {
		return m.Measure(p)
	}
	return c.child.WidgetBase().Size()
}

// Paint draws nothing itself unless the last build failed, in which
// case an error placeholder is painted so sibling subtrees keep
// working.
func (c *Component) Paint(p backend.Painter) {
	if c.err == nil {
		return
	}
	paintBuildError(p, c.Size(), c.err)
}

// Bind is called by the lifecycle walker when the component enters an
// app's tree.
func (c *Component) Bind(app *App) {
	c.subs.SetScheduler(app.StateScheduler())
}

// Mount starts the observed subscriptions.
func (c *Component) Mount() {
	for _, sig := range c.observed {
		c.subscribe(sig)
	}
}

// subscribe registers signalChanged synchronously: the filter must see
// the build phase at notification time, before the scheduler hand-off.
func (c *Component) subscribe(sig state.Subscribable) {
	c.subs.SubscribeWithScheduler(sig, nil, c.signalChanged)
}

// Unmount releases the component's subscriptions; the build owner
// discard happens in the app's widgetUnmounted hook.
func (c *Component) Unmount() {
	c.subs.Clear()
}

// Update adopts the freshly built peer's view function during
// reconciliation. The mounted subtree is kept as is and a rebuild is
// scheduled, so the new closure produces the children on the flush
// that is already running.
func (c *Component) Update(next Widget) {
	n, ok := next.(*Component)
	if !ok || n == c {
		return
	}
	c.view = n.view
	c.markDirty()
}

// childrenPending reports whether the view has yet to run. The
// reconciler skips the child pass for a freshly built component: it
// has no children to compare against the mounted subtree.
func (c *Component) childrenPending() bool { return c.child == nil }

// signalChanged runs on whichever goroutine wrote the signal. It only
// reads the atomic phase and hands off to the UI scheduler, so build
// state is never touched off the UI goroutine.
func (c *Component) signalChanged() {
	if c.buildPhase() == buildRebuilding {
		// A view writing signals it observes would rebuild forever.
		return
	}
	if sched := c.subs.Scheduler(); sched != nil {
		sched.Schedule(c.markDirty)
		return
	}
	c.markDirty()
}

// markDirty runs on the UI goroutine.
func (c *Component) markDirty() {
	if c.buildPhase() == buildRebuilding {
		return
	}
	c.setBuildPhase(buildDirty)
	if app := c.App(); app != nil {
		app.buildOwner.ScheduleBuild(c)
	}
}

func (c *Component) buildPhase() buildState     { return buildState(c.phase.Load()) }
func (c *Component) setBuildPhase(p buildState) { c.phase.Store(int32(p)) }

// ensureBuilt performs the first build lazily, when layout first needs
// the subtree.
func (c *Component) ensureBuilt() {
	if c.child != nil || c.view == nil {
		return
	}
	built := c.safeBuild()
	c.child = built
	if built != nil {
		built.WidgetBase().SetParent(c)
		if app := c.App(); app != nil {
			bindTree(built, app)
			mountTree(built)
		}
	}
	c.setBuildPhase(buildClean)
}

// rebuild re-invokes the view and reconciles the result against the
// mounted subtree. It reports whether a rebuild actually ran; a
// component unmounted since it was scheduled is skipped.
func (c *Component) rebuild() bool {
	if c.view == nil || c.App() == nil {
		return false
	}
	if c.child == nil {
		// Never built: the next layout pass will build it.
		c.setBuildPhase(buildClean)
		return false
	}
	c.setBuildPhase(buildRebuilding)
	built := c.safeBuild()
	merged := reconcile(c.App(), c.child, built)
	c.child = merged
	if merged != nil {
		merged.WidgetBase().SetParent(c)
	}
	c.setBuildPhase(buildClean)
	c.Invalidate()
	return true
}

// safeBuild invokes the view, converting a panic into a build error
// placeholder instead of tearing down the render loop.
func (c *Component) safeBuild() (w Widget) {
	defer func() {
		if r := recover(); r != nil {
			c.err = fmt.Errorf("view: %v", r)
			w = nil
		}
	}()
	c.err = nil
	return c.view()
}

// depth counts ancestors; the build owner rebuilds shallow components
// first.
func (c *Component) depth() int {
	d := 0
	for p := c.Parent(); p != nil; p = p.WidgetBase().Parent() {
		d++
	}
	return d
}

// buildErrorStyle is the placeholder appearance for failed builds.
var buildErrorStyle = backend.Style{
	Fill:   backend.FillStyle{Color: "#7f1d1d"},
	Stroke: backend.StrokeStyle{Color: "#fecaca", Width: 1},
	Font:   backend.Font{Size: backend.DefaultFontSize},
}

func paintBuildError(p backend.Painter, size geom.Size, err error) {
	p.SetStyle(buildErrorStyle)
	r := geom.Rect{Size: size}
	p.FillRect(r)
	p.StrokeRect(r)
	msg := "build failed: " + err.Error()
	p.SetStyle(backend.Style{
		Fill: backend.FillStyle{Color: "#fecaca"},
		Font: backend.Font{Size: backend.DefaultFontSize},
	})
	p.FillText(msg, geom.Point{X: 4, Y: size.Height / 2}, size.Width-8)
}
