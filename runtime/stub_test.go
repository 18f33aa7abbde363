package runtime

// Test doubles: a fake frame and a few minimal widgets. The real
// widget and layout packages sit above runtime, so the tests here
// bring their own.

import (
	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/backend/imagepainter"
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
)

type fakeFrame struct {
	size    geom.Size
	painter backend.Painter
	redraw  func(p backend.Painter, completely bool)
	updates int
	closed  bool
}

func newFakeFrame(w, h float64) *fakeFrame {
	return &fakeFrame{
		size:    geom.Size{Width: w, Height: h},
		painter: imagepainter.New(int(w), int(h)),
	}
}

func (f *fakeFrame) OnMouseDown(func(event.Mouse))  {}
func (f *fakeFrame) OnMouseUp(func(event.Mouse))    {}
func (f *fakeFrame) OnMouseWheel(func(event.Wheel)) {}
func (f *fakeFrame) OnCursorPos(func(event.Mouse))  {}
func (f *fakeFrame) OnInputChar(func(event.Char))   {}
func (f *fakeFrame) OnInputKey(func(event.Key))     {}

func (f *fakeFrame) OnRedraw(fn func(p backend.Painter, completely bool)) { f.redraw = fn }

func (f *fakeFrame) Painter() backend.Painter { return f.painter }
func (f *fakeFrame) Size() geom.Size          { return f.size }
func (f *fakeFrame) PostUpdate(bool)          { f.updates++ }
func (f *fakeFrame) Run() error               { return nil }
func (f *fakeFrame) Close()                   { f.closed = true }

// tick runs one frame callback cycle, the way the real frame would.
func tick(app *App, f *fakeFrame) {
	app.redraw(f.painter, false)
}

// stubLeaf is a paintable fixed-size widget that records interactions.
type stubLeaf struct {
	Base
	name      string
	paints    int
	clicks    int
	overs     int
	outs      int
	focusable bool
	focusGain int
	focusLoss int
	onUp      func()
}

func newStubLeaf(name string, w, h float64) *stubLeaf {
	s := &stubLeaf{Base: NewBase(), name: name}
	s.FixedSize(w, h)
	return s
}

func (s *stubLeaf) Paint(p backend.Painter) { s.paints++ }

func (s *stubLeaf) Update(next Widget) {
	if n, ok := next.(*stubLeaf); ok {
		s.name = n.name
	}
}

func (s *stubLeaf) Measure(p backend.TextMeasurer) geom.Size { return s.Size() }

func (s *stubLeaf) MouseDown(ev event.Mouse) {}

func (s *stubLeaf) MouseUp(ev event.Mouse) {
	s.clicks++
	if s.onUp != nil {
		s.onUp()
	}
}

func (s *stubLeaf) MouseOver() { s.overs++ }

func (s *stubLeaf) MouseOut() { s.outs++ }

func (s *stubLeaf) Activate() { s.clicks++ }

func (s *stubLeaf) CanFocus() bool { return s.focusable }

func (s *stubLeaf) Focused() { s.focusGain++ }

func (s *stubLeaf) Unfocused() { s.focusLoss++ }

// stubColumn stacks children vertically at their fixed sizes.
type stubColumn struct {
	Base
	children []Widget
}

func newStubColumn(children ...Widget) *stubColumn {
	c := &stubColumn{Base: NewBase(), children: children}
	for _, child := range children {
		child.WidgetBase().SetParent(c)
	}
	return c
}

func (c *stubColumn) Paint(p backend.Painter) {}

func (c *stubColumn) Children() []Widget { return c.children }

func (c *stubColumn) ReplaceChildren(children []Widget) {
	c.children = children
	for _, child := range children {
		child.WidgetBase().SetParent(c)
	}
}

func (c *stubColumn) Arrange(p backend.Painter) {
	pos := c.Pos()
	for _, child := range c.children {
		b := child.WidgetBase()
		b.MoveTo(pos)
		pos.Y += b.Size().Height
	}
}

// stubStack overlaps children at the column origin and serves them to
// hit-testing in reverse declaration order via the default path.
type stubStack struct {
	stubColumn
}

func newStubStack(children ...Widget) *stubStack {
	s := &stubStack{}
	s.Base = NewBase()
	s.children = children
	for _, child := range children {
		child.WidgetBase().SetParent(s)
	}
	return s
}

func (s *stubStack) Arrange(p backend.Painter) {
	for _, child := range s.children {
		child.WidgetBase().MoveTo(s.Pos())
	}
}
