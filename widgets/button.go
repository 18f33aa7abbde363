package widgets

import (
	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/event"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/runtime"
)

const (
	buttonFill      = "#3b4252"
	buttonHoverFill = "#4c566a"
	buttonPressFill = "#2e3440"
	buttonFocusRing = "#88c0d0"
)

// Button is a clickable, focusable push button. Enter or Space
// activates it while focused.
type Button struct {
	runtime.Base
	label   string
	font    backend.Font
	onClick func()

	hovered bool
	pressed bool
	focused bool
}

// NewButton creates a button sized to its label.
func NewButton(label string) *Button {
	b := &Button{Base: runtime.NewBase(), label: label}
	b.FitContent()
	return b
}

// OnClick sets the activation callback.
func (b *Button) OnClick(fn func()) *Button {
	b.onClick = fn
	return b
}

// Font overrides the label face.
func (b *Button) Font(f backend.Font) *Button {
	b.font = f
	return b
}

// Label returns the button text.
func (b *Button) Label() string { return b.label }

// Update copies configuration from a freshly built peer. Interaction
// state (hover, press, focus) stays with the mounted widget.
func (b *Button) Update(next runtime.Widget) {
	if n, ok := next.(*Button); ok {
		b.label = n.label
		b.font = n.font
		b.onClick = n.onClick
	}
}

// CanFocus marks the button as focus ring member.
func (b *Button) CanFocus() bool { return true }

// Focused is the focus-gained hook.
func (b *Button) Focused() {
	b.focused = true
	b.Invalidate()
}

// Unfocused is the focus-lost hook.
func (b *Button) Unfocused() {
	b.focused = false
	b.Invalidate()
}

// Activate fires the click callback. Used by keyboard activation.
func (b *Button) Activate() {
	if b.onClick != nil {
		b.onClick()
	}
}

// MouseDown arms the press.
func (b *Button) MouseDown(ev event.Mouse) {
	b.pressed = true
	b.Invalidate()
}

// MouseUp fires the click when released inside the button.
func (b *Button) MouseUp(ev event.Mouse) {
	wasPressed := b.pressed
	b.pressed = false
	b.Invalidate()
	size := b.Size()
	inside := 0 <= ev.Pos.X && ev.Pos.X < size.Width && 0 <= ev.Pos.Y && ev.Pos.Y < size.Height
	if wasPressed && inside {
		b.Activate()
	}
}

// MouseOver is the hover-entered hook.
func (b *Button) MouseOver() {
	b.hovered = true
	b.Invalidate()
}

// MouseOut is the hover-left hook.
func (b *Button) MouseOut() {
	b.hovered = false
	b.pressed = false
	b.Invalidate()
}

// Measure reports the label footprint plus padding.
func (b *Button) Measure(tm backend.TextMeasurer) geom.Size {
	size := backend.DefaultFontSize
	if b.font.Size > 0 {
		size = b.font.Size
	}
	return geom.Size{
		Width:  tm.MeasureText(b.label) + 4*textPadding,
		Height: size + 2*textPadding,
	}
}

// Paint draws the face, focus ring, and centered label.
func (b *Button) Paint(p backend.Painter) {
	size := b.Size()
	fill := buttonFill
	if bg := b.Background(); bg != "" {
		fill = bg
	}
	switch {
	case b.pressed:
		fill = backend.BlendColor(fill, buttonPressFill, 0.6)
	case b.hovered:
		fill = backend.BlendColor(fill, buttonHoverFill, 0.6)
	}
	p.SetStyle(backend.Style{Fill: backend.FillStyle{Color: fill}})
	p.FillRect(geom.RectXYWH(0, 0, size.Width, size.Height))

	if b.focused {
		p.SetStyle(backend.Style{Stroke: backend.StrokeStyle{Color: buttonFocusRing, Width: 2}})
		p.StrokeRect(geom.RectXYWH(1, 1, size.Width-2, size.Height-2))
	}

	fg := b.TextColor()
	if fg == "" {
		fg = defaultTextColor
	}
	p.SetStyle(backend.Style{
		Fill: backend.FillStyle{Color: fg},
		Font: b.font,
	})
	width := p.MeasureText(b.label)
	cap := p.FontMetrics().CapHeight
	p.FillText(b.label, geom.Point{
		X: (size.Width - width) / 2,
		Y: (size.Height + cap) / 2,
	}, size.Width)
}
