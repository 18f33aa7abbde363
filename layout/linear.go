// Package layout provides the flow and stacking containers that turn
// size policies and flex weights into concrete widget geometry.
package layout

import (
	"fmt"
	"math"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/runtime"
	"github.com/i2y/castella-go/scroll"
)

// ScrollBarSize is the thickness reserved for a visible scrollbar.
const ScrollBarSize = 16.0

// wheelStep converts one wheel unit into surface units.
const wheelStep = 24.0

type axis int

const (
	axisHorizontal axis = iota
	axisVertical
)

func (a axis) main(s geom.Size) float64 {
	if a == axisHorizontal {
		return s.Width
	}
	return s.Height
}

func (a axis) cross(s geom.Size) float64 {
	if a == axisHorizontal {
		return s.Height
	}
	return s.Width
}

func (a axis) size(main, cross float64) geom.Size {
	if a == axisHorizontal {
		return geom.Size{Width: main, Height: cross}
	}
	return geom.Size{Width: cross, Height: main}
}

func (a axis) advance(p geom.Point, by float64) geom.Point {
	if a == axisHorizontal {
		return geom.Point{X: p.X + by, Y: p.Y}
	}
	return geom.Point{X: p.X, Y: p.Y + by}
}

func (a axis) mainPolicy(b *runtime.Base) runtime.SizePolicy {
	if a == axisHorizontal {
		return b.WidthPolicy()
	}
	return b.HeightPolicy()
}

func (a axis) crossPolicy(b *runtime.Base) runtime.SizePolicy {
	if a == axisHorizontal {
		return b.HeightPolicy()
	}
	return b.WidthPolicy()
}

// linear is the shared flow engine behind Row and Column: children are
// laid out along one axis, leftover space is split among Expanding
// children by flex weight, and main-axis overflow can scroll.
//
// self points at the embedding Row or Column so parent back-references
// and reconciliation see the concrete widget.
type linear struct {
	runtime.Base
	self       runtime.Widget
	children   []runtime.Widget
	axis       axis
	spacing    float64
	scrollable bool
	scroll     *scroll.State

	dragging bool
	grabPos  float64
}

func (l *linear) init(self runtime.Widget, a axis, children []runtime.Widget) {
	l.Base = runtime.NewBase()
	l.self = self
	l.axis = a
	l.children = children
	assertMeasurable(children)
	for _, child := range children {
		child.WidgetBase().SetParent(self)
	}
}

// assertMeasurable panics when a child asks for Content sizing without
// being able to measure itself. That is a programming error, caught at
// construction rather than surfacing as a zero-sized widget at layout
// time.
func assertMeasurable(children []runtime.Widget) {
	for _, child := range children {
		b := child.WidgetBase()
		if b.WidthPolicy() != runtime.Content && b.HeightPolicy() != runtime.Content {
			continue
		}
		if _, ok := child.(runtime.Measurable); !ok {
			panic(fmt.Sprintf("layout: %T uses Content sizing but does not implement Measurable", child))
		}
	}
}

func (l *linear) setScrollable(st *scroll.State) {
	l.scrollable = true
	if st == nil {
		st = scroll.NewState()
	}
	l.scroll = st
}

// Children returns the child widgets in declaration order.
func (l *linear) Children() []runtime.Widget { return l.children }

// ReplaceChildren installs a reconciled child list.
func (l *linear) ReplaceChildren(children []runtime.Widget) {
	assertMeasurable(children)
	l.children = children
	for _, child := range children {
		child.WidgetBase().SetParent(l.self)
	}
}

// Update copies flow configuration from a freshly built peer during
// reconciliation.
func (l *linear) Update(next runtime.Widget) {
	type flow interface{ flowConfig() (float64, bool, *scroll.State) }
	if f, ok := next.(flow); ok {
		spacing, scrollable, _ := f.flowConfig()
		l.spacing = spacing
		l.scrollable = scrollable
		if l.scrollable && l.scroll == nil {
			l.scroll = scroll.NewState()
		}
	}
}

func (l *linear) flowConfig() (float64, bool, *scroll.State) {
	return l.spacing, l.scrollable, l.scroll
}

// Paint draws the background and, when overflowing, the scrollbar.
func (l *linear) Paint(p backend.Painter) {
	size := l.Size()
	if bg := l.Background(); bg != "" {
		p.SetStyle(backend.Style{Fill: backend.FillStyle{Color: bg}})
		p.FillRect(geom.RectXYWH(0, 0, size.Width, size.Height))
	}
	if !l.overflowing() {
		return
	}
	track, thumb := l.scrollbarRects()
	p.SetStyle(backend.Style{Fill: backend.FillStyle{Color: "#2b2b33"}})
	p.FillRect(track)
	p.SetStyle(backend.Style{Fill: backend.FillStyle{Color: "#72727e"}})
	p.FillRect(thumb)
}

// Measure reports the content footprint: children stacked along the
// main axis with spacing, the cross extent being the widest child.
func (l *linear) Measure(tm backend.TextMeasurer) geom.Size {
	var mainTotal, crossMax float64
	for i, child := range l.children {
		s := measureChild(child, tm)
		mainTotal += l.axis.main(s)
		if i > 0 {
			mainTotal += l.spacing
		}
		crossMax = max(crossMax, l.axis.cross(s))
	}
	return l.axis.size(mainTotal, crossMax)
}

// Arrange resolves every child's size and absolute position within the
// container's bounds. When the main axis is scrollable, Expanding
// children fall back to their content size there and overflow is
// tracked by the scroll state instead of clamped.
func (l *linear) Arrange(p backend.Painter) {
	bounds := l.Bounds()
	availMain := l.axis.main(bounds.Size)
	availCross := l.axis.cross(bounds.Size)

	mains := make([]float64, len(l.children))
	var used float64
	var flexTotal float64
	for i, child := range l.children {
		b := child.WidgetBase()
		policy := l.axis.mainPolicy(b)
		if l.scrollable && policy == runtime.Expanding {
			policy = runtime.Content
		}
		switch policy {
		case runtime.Fixed:
			mains[i] = l.axis.main(b.Size())
		case runtime.Content:
			mains[i] = l.axis.main(measureChild(child, p))
		default:
			flexTotal += b.FlexWeight()
		}
		used += mains[i]
	}
	spacingTotal := l.spacing * float64(max(0, len(l.children)-1))
	used += spacingTotal

	if flexTotal > 0 {
		leftover := max(0, availMain-used)
		distributed := 0.0
		for i, child := range l.children {
			b := child.WidgetBase()
			if l.axis.mainPolicy(b) != runtime.Expanding {
				continue
			}
			share := math.Floor(leftover * b.FlexWeight() / flexTotal)
			mains[i] = share
			distributed += share
		}
		// Spread the rounding remainder one unit at a time in child
		// order so totals always fill the container exactly. Weight-0
		// children take no share and get no remainder either.
		remainder := leftover - distributed
		for i, child := range l.children {
			if remainder <= 0 {
				break
			}
			b := child.WidgetBase()
			if l.axis.mainPolicy(b) != runtime.Expanding || b.FlexWeight() == 0 {
				continue
			}
			extra := min(1, remainder)
			mains[i] += extra
			remainder -= extra
		}
	}

	contentMain := spacingTotal
	for _, m := range mains {
		contentMain += m
	}
	if l.scrollable {
		if contentMain > availMain {
			availCross = max(0, availCross-ScrollBarSize)
		}
		l.scroll.Update(l.axis.size(contentMain, availCross), l.axis.size(availMain, availCross))
	}

	pos := bounds.Origin
	for i, child := range l.children {
		b := child.WidgetBase()
		crossSize := availCross
		switch l.axis.crossPolicy(b) {
		case runtime.Fixed:
			crossSize = l.axis.cross(b.Size())
		case runtime.Content:
			crossSize = l.axis.cross(measureChild(child, p))
		}
		b.Resize(l.axis.size(mains[i], crossSize))
		b.MoveTo(pos)
		pos = l.axis.advance(pos, mains[i]+l.spacing)
	}
}

func measureChild(child runtime.Widget, tm backend.TextMeasurer) geom.Size {
	b := child.WidgetBase()
	s := b.Size()
	if m, ok := child.(runtime.Measurable); ok {
		s = m.Measure(tm)
	}
	if b.WidthPolicy() == runtime.Fixed {
		s.Width = b.Size().Width
	}
	if b.HeightPolicy() == runtime.Fixed {
		s.Height = b.Size().Height
	}
	return s
}

func (l *linear) overflowing() bool {
	if !l.scrollable || l.scroll == nil {
		return false
	}
	return l.axis.main(l.scroll.ContentSize()) > l.axis.main(l.scroll.ViewSize())
}

// HasScrollbar reports whether wheel input on the given axis should be
// routed here.
func (l *linear) HasScrollbar(horizontal bool) bool {
	if !l.overflowing() {
		return false
	}
	return horizontal == (l.axis == axisHorizontal)
}

// MouseWheel applies a user wheel delta along the main axis.
func (l *linear) MouseWheel(ev event.Wheel) {
	if l.scroll == nil {
		return
	}
	if l.axis == axisHorizontal {
		l.scroll.UserScrollBy(ev.OffsetX*wheelStep, 0)
	} else {
		l.scroll.UserScrollBy(0, ev.OffsetY*wheelStep)
	}
	l.Invalidate()
}

// AdjustPoint shifts an absolute point into the scrolled child space.
func (l *linear) AdjustPoint(p geom.Point) geom.Point {
	if l.scroll == nil {
		return p
	}
	x, y := l.scroll.Offset()
	return geom.Point{X: p.X + x, Y: p.Y + y}
}

// PaintOffset returns how far child painting shifts against layout
// positions.
func (l *linear) PaintOffset() geom.Point {
	if l.scroll == nil {
		return geom.Point{}
	}
	x, y := l.scroll.Offset()
	return geom.Point{X: x, Y: y}
}

// ContainsInContentArea reports whether p falls inside the bounds
// excluding the scrollbar strip.
func (l *linear) ContainsInContentArea(p geom.Point) bool {
	if !l.ContainsPoint(p) {
		return false
	}
	if !l.overflowing() {
		return true
	}
	track, _ := l.scrollbarRects()
	return !track.Translate(l.Pos()).Contains(p)
}

// scrollbarRects returns the track and thumb rectangles in local
// coordinates.
func (l *linear) scrollbarRects() (track, thumb geom.Rect) {
	size := l.Size()
	contentMain := l.axis.main(l.scroll.ContentSize())
	viewMain := l.axis.main(l.scroll.ViewSize())
	if contentMain <= 0 {
		contentMain = 1
	}
	trackLen := l.axis.main(size)
	thumbLen := max(ScrollBarSize, trackLen*viewMain/contentMain)
	maxOff := max(1, contentMain-viewMain)
	offX, offY := l.scroll.Offset()
	off := offY
	if l.axis == axisHorizontal {
		off = offX
	}
	thumbPos := (trackLen - thumbLen) * (off / maxOff)
	if l.axis == axisHorizontal {
		track = geom.RectXYWH(0, size.Height-ScrollBarSize, size.Width, ScrollBarSize)
		thumb = geom.RectXYWH(thumbPos, size.Height-ScrollBarSize, thumbLen, ScrollBarSize)
	} else {
		track = geom.RectXYWH(size.Width-ScrollBarSize, 0, ScrollBarSize, size.Height)
		thumb = geom.RectXYWH(size.Width-ScrollBarSize, thumbPos, ScrollBarSize, thumbLen)
	}
	return track, thumb
}

// MouseDown starts a thumb drag or pages toward a track click.
func (l *linear) MouseDown(ev event.Mouse) {
	if !l.overflowing() {
		return
	}
	track, thumb := l.scrollbarRects()
	if !track.Contains(ev.Pos) {
		return
	}
	if thumb.Contains(ev.Pos) {
		l.dragging = true
		if l.axis == axisHorizontal {
			l.grabPos = ev.Pos.X
		} else {
			l.grabPos = ev.Pos.Y
		}
		return
	}
	// Track click pages the view toward the pointer.
	viewMain := l.axis.main(l.scroll.ViewSize())
	var clickMain, thumbMain float64
	if l.axis == axisHorizontal {
		clickMain, thumbMain = ev.Pos.X, thumb.Origin.X
	} else {
		clickMain, thumbMain = ev.Pos.Y, thumb.Origin.Y
	}
	delta := viewMain
	if clickMain < thumbMain {
		delta = -viewMain
	}
	if l.axis == axisHorizontal {
		l.scroll.UserScrollBy(delta, 0)
	} else {
		l.scroll.UserScrollBy(0, delta)
	}
	l.Invalidate()
}

// MouseDrag moves the thumb, scaling pointer travel to content travel.
func (l *linear) MouseDrag(ev event.Mouse) {
	if !l.dragging {
		return
	}
	var cur float64
	if l.axis == axisHorizontal {
		cur = ev.Pos.X
	} else {
		cur = ev.Pos.Y
	}
	delta := cur - l.grabPos
	l.grabPos = cur
	contentMain := l.axis.main(l.scroll.ContentSize())
	trackLen := l.axis.main(l.Size())
	if trackLen <= 0 {
		return
	}
	scaled := delta * contentMain / trackLen
	if l.axis == axisHorizontal {
		l.scroll.UserScrollBy(scaled, 0)
	} else {
		l.scroll.UserScrollBy(0, scaled)
	}
	l.Invalidate()
}

// MouseUp ends a thumb drag.
func (l *linear) MouseUp(ev event.Mouse) {
	l.dragging = false
}
