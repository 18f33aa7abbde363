package runtime

import (
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
)

// Hit-testing and input routing. Points are absolute surface
// coordinates until delivery, when they are translated into the
// target's local space.

// pointAdjuster shifts an incoming point into child coordinate space;
// scrollable containers add their scroll offset here.
type pointAdjuster interface {
	AdjustPoint(p geom.Point) geom.Point
}

// hitOrderer overrides the order children are hit-tested in. The
// default is reverse declaration order (last sibling declared wins);
// Box returns descending z-index.
type hitOrderer interface {
	HitOrder() []Widget
}

// contentArea distinguishes a container's content region from chrome
// such as scrollbars: points in the chrome hit the container itself.
type contentArea interface {
	ContainsInContentArea(p geom.Point) bool
}

// hitTest walks w's subtree and returns the deepest widget containing
// p, together with p adjusted into that widget's parent coordinate
// space.
func hitTest(w Widget, p geom.Point) (Widget, geom.Point) {
	if w == nil {
		return nil, geom.Point{}
	}
	container, isContainer := w.(Container)
	if !isContainer {
		if w.WidgetBase().ContainsPoint(p) {
			return w, p
		}
		return nil, geom.Point{}
	}

	inContent := w.WidgetBase().ContainsPoint(p)
	if ca, ok := w.(contentArea); ok {
		inContent = ca.ContainsInContentArea(p)
	}
	if inContent {
		adjusted := p
		if adj, ok := w.(pointAdjuster); ok {
			adjusted = adj.AdjustPoint(p)
		}
		for _, child := range hitOrder(container) {
			if target, tp := hitTest(child, adjusted); target != nil {
				return target, tp
			}
		}
		return w, adjusted
	}
	if w.WidgetBase().ContainsPoint(p) {
		// Chrome region (e.g. the scrollbar) hits the container.
		return w, p
	}
	return nil, geom.Point{}
}

// hitTestScrollable returns the innermost ScrollTarget under p that
// scrolls along the wheel's dominant axis.
func hitTestScrollable(w Widget, p geom.Point, horizontal bool) Widget {
	if w == nil {
		return nil
	}
	container, isContainer := w.(Container)
	if !isContainer {
		return nil
	}
	inContent := w.WidgetBase().ContainsPoint(p)
	if ca, ok := w.(contentArea); ok {
		inContent = ca.ContainsInContentArea(p)
	}
	target, isTarget := w.(ScrollTarget)
	if inContent {
		adjusted := p
		if adj, ok := w.(pointAdjuster); ok {
			adjusted = adj.AdjustPoint(p)
		}
		for _, child := range hitOrder(container) {
			if found := hitTestScrollable(child, adjusted, horizontal); found != nil {
				return found
			}
		}
		if isTarget && target.HasScrollbar(horizontal) {
			return w
		}
		return nil
	}
	if w.WidgetBase().ContainsPoint(p) && isTarget && target.HasScrollbar(horizontal) {
		return w
	}
	return nil
}

func hitOrder(c Container) []Widget {
	if o, ok := c.(hitOrderer); ok {
		return o.HitOrder()
	}
	children := c.Children()
	ordered := make([]Widget, len(children))
	for i, child := range children {
		ordered[len(children)-1-i] = child
	}
	return ordered
}

// dispatcher tracks pointer and keyboard routing state between
// platform callbacks: the pressed widget for drag delivery, the
// hovered widget for over/out pairs, and the running absolute/relative
// positions used to accumulate drag deltas.
type dispatcher struct {
	app        *App
	downed     Widget
	hovered    Widget
	hoverLayer Widget
	prevAbs    geom.Point
	prevRel    geom.Point
}

func (d *dispatcher) mouseDown(ev event.Mouse) {
	root := d.app.topLayer()
	target, p := hitTest(root, ev.Pos)
	if target == nil {
		// A press outside a non-base layer dismisses it.
		if d.app.LayerCount() > 1 {
			d.app.PopLayer()
		}
		return
	}
	d.prevAbs = ev.Pos
	local := p.Sub(target.WidgetBase().Pos())
	d.prevRel = local
	if h, ok := target.(PointerHandler); ok {
		h.MouseDown(event.Mouse{Pos: local, Button: ev.Button})
	}
	d.downed = target
}

func (d *dispatcher) mouseUp(ev event.Mouse) {
	downed := d.downed
	if downed == nil {
		return
	}
	d.downed = nil

	// Focus always follows the release: clicking a non-focusable
	// widget clears keyboard focus rather than leaving it behind.
	d.app.focus.SetFocus(focusableOrNil(downed))

	diff := ev.Pos.Sub(d.prevAbs)
	d.prevAbs = ev.Pos
	local := d.prevRel.Add(diff)
	d.prevRel = local
	if h, ok := downed.(PointerHandler); ok {
		h.MouseUp(event.Mouse{Pos: local, Button: ev.Button})
	}
}

func (d *dispatcher) cursorPos(ev event.Mouse) {
	layer := d.app.topLayer()
	target, _ := hitTest(layer, ev.Pos)
	if target == nil {
		return
	}
	if d.downed == nil {
		if d.hovered != target {
			if d.hovered != nil && d.hoverLayer == layer {
				if h, ok := d.hovered.(HoverHandler); ok {
					h.MouseOut()
				}
			}
			d.hovered = target
			d.hoverLayer = layer
			if h, ok := target.(HoverHandler); ok {
				h.MouseOver()
			}
		}
		return
	}
	if target != d.downed {
		if within, _ := hitTest(d.downed, ev.Pos); within == nil {
			return
		}
	}
	diff := ev.Pos.Sub(d.prevAbs)
	d.prevAbs = ev.Pos
	local := d.prevRel.Add(diff)
	d.prevRel = local
	if h, ok := d.downed.(DragHandler); ok {
		h.MouseDrag(event.Mouse{Pos: local, Button: ev.Button})
	}
}

func (d *dispatcher) mouseWheel(ev event.Wheel) {
	target := hitTestScrollable(d.app.topLayer(), ev.Pos, ev.IsHorizontal())
	if target == nil {
		return
	}
	if h, ok := target.(WheelHandler); ok {
		h.MouseWheel(ev)
	}
}

func (d *dispatcher) inputChar(ev event.Char) {
	focused := d.app.focus.Current()
	if focused == nil {
		return
	}
	if h, ok := focused.(CharHandler); ok {
		h.InputChar(ev)
	}
}

func (d *dispatcher) inputKey(ev event.Key) {
	if hook := d.app.keyHook; hook != nil && hook(ev) {
		return
	}
	if ev.IsPressed() {
		switch ev.Code {
		case event.KeyTab:
			if ev.IsShift() {
				d.app.focus.FocusPrev()
			} else {
				d.app.focus.FocusNext()
			}
			d.app.RequestRepaint(false)
			return
		case event.KeyEnter, event.KeySpace:
			if a, ok := d.app.focus.Current().(Activatable); ok {
				a.Activate()
				return
			}
		}
	}
	focused := d.app.focus.Current()
	if focused == nil {
		return
	}
	if h, ok := focused.(KeyHandler); ok {
		h.InputKey(ev)
	}
}

// widgetUnmounted clears any routing state pointing at w.
func (d *dispatcher) widgetUnmounted(w Widget) {
	if d.downed == w {
		d.downed = nil
	}
	if d.hovered == w {
		d.hovered = nil
		d.hoverLayer = nil
	}
}

func focusableOrNil(w Widget) Widget {
	if f, ok := w.(Focusable); ok && f.CanFocus() {
		return w
	}
	return nil
}
