// Package widgets provides the built-in leaf widgets.
package widgets

import (
	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/geom"
	"github.com/i2y/castella-go/runtime"
)

const (
	defaultTextColor = "#e5e9f0"
	textPadding      = 8.0
)

// Text displays a single line of text sized to its content.
type Text struct {
	runtime.Base
	text string
	font backend.Font
}

// NewText creates a text label.
func NewText(text string) *Text {
	t := &Text{Base: runtime.NewBase(), text: text}
	t.FitContent()
	return t
}

// Text returns the displayed string.
func (t *Text) Text() string { return t.text }

// SetText replaces the displayed string and repaints.
func (t *Text) SetText(text string) {
	if t.text == text {
		return
	}
	t.text = text
	t.Invalidate()
}

// Font overrides the face used for painting and measurement.
func (t *Text) Font(f backend.Font) *Text {
	t.font = f
	return t
}

// Update copies display configuration from a freshly built peer.
func (t *Text) Update(next runtime.Widget) {
	if n, ok := next.(*Text); ok {
		t.text = n.text
		t.font = n.font
	}
}

// Measure reports the text's advance width plus padding.
func (t *Text) Measure(tm backend.TextMeasurer) geom.Size {
	size := t.fontSize()
	return geom.Size{
		Width:  tm.MeasureText(t.text) + 2*textPadding,
		Height: size + 2*textPadding,
	}
}

// Paint draws the text vertically centered, left-aligned with padding.
func (t *Text) Paint(p backend.Painter) {
	fg := t.TextColor()
	if fg == "" {
		fg = defaultTextColor
	}
	p.SetStyle(backend.Style{
		Fill: backend.FillStyle{Color: fg},
		Font: t.font,
	})
	cap := p.FontMetrics().CapHeight
	baseline := (t.Size().Height + cap) / 2
	p.FillText(t.text, geom.Point{X: textPadding, Y: baseline}, t.Size().Width-2*textPadding)
}

func (t *Text) fontSize() float64 {
	if t.font.Size > 0 {
		return t.font.Size
	}
	return backend.DefaultFontSize
}
