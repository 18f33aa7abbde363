package layout

import (
	"sort"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/runtime"
)

// Box stacks its children on top of each other. Painting runs in
// ascending z-index, declaration order breaking ties, so the last
// declared sibling at a given z ends up on top; hit-testing walks the
// same order reversed.
type Box struct {
	runtime.Base
	children []runtime.Widget
}

// NewBox creates a stacking container. A child asking for Content
// sizing must be able to measure itself; anything else is a
// programming error reported at construction.
func NewBox(children ...runtime.Widget) *Box {
	b := &Box{Base: runtime.NewBase(), children: children}
	assertMeasurable(children)
	for _, child := range children {
		child.WidgetBase().SetParent(b)
	}
	return b
}

// Children returns children in declaration order.
func (b *Box) Children() []runtime.Widget { return b.children }

// ReplaceChildren installs a reconciled child list.
func (b *Box) ReplaceChildren(children []runtime.Widget) {
	assertMeasurable(children)
	b.children = children
	for _, child := range children {
		child.WidgetBase().SetParent(b)
	}
}

// Paint draws the background; children follow in paint order.
func (b *Box) Paint(p backend.Painter) {
	if bg := b.Background(); bg != "" {
		size := b.Size()
		p.SetStyle(backend.Style{Fill: backend.FillStyle{Color: bg}})
		p.FillRect(geom.RectXYWH(0, 0, size.Width, size.Height))
	}
}

// Measure reports the footprint of the largest child.
func (b *Box) Measure(tm backend.TextMeasurer) geom.Size {
	var out geom.Size
	for _, child := range b.children {
		s := measureChild(child, tm)
		out.Width = max(out.Width, s.Width)
		out.Height = max(out.Height, s.Height)
	}
	return out
}

// Arrange gives every child the box's origin and resolves sizes
// against the full bounds.
func (b *Box) Arrange(p backend.Painter) {
	bounds := b.Bounds()
	for _, child := range b.children {
		cb := child.WidgetBase()
		size := cb.Size()
		measured := geom.Size{}
		if cb.WidthPolicy() == runtime.Content || cb.HeightPolicy() == runtime.Content {
			measured = measureChild(child, p)
		}
		switch cb.WidthPolicy() {
		case runtime.Expanding:
			size.Width = bounds.Size.Width
		case runtime.Content:
			size.Width = measured.Width
		}
		switch cb.HeightPolicy() {
		case runtime.Expanding:
			size.Height = bounds.Size.Height
		case runtime.Content:
			size.Height = measured.Height
		}
		cb.Resize(size)
		cb.MoveTo(bounds.Origin)
	}
}

// PaintOrder returns children sorted by ascending z-index, declaration
// order preserved within a z level.
func (b *Box) PaintOrder() []runtime.Widget {
	ordered := make([]runtime.Widget, len(b.children))
	copy(ordered, b.children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].WidgetBase().ZIndex() < ordered[j].WidgetBase().ZIndex()
	})
	return ordered
}

// HitOrder reverses paint order so the topmost child is probed first.
func (b *Box) HitOrder() []runtime.Widget {
	painted := b.PaintOrder()
	ordered := make([]runtime.Widget, len(painted))
	for i, child := range painted {
		ordered[len(painted)-1-i] = child
	}
	return ordered
}
