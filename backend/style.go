package backend

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FontWeight selects the stroke weight of a font face.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// FontSlant selects the posture of a font face.
type FontSlant int

const (
	SlantUpright FontSlant = iota
	SlantItalic
)

// Font describes the face used for text painting and measurement.
// An empty Family means the backend's default face.
type Font struct {
	Family string
	Size   float64
	Weight FontWeight
	Slant  FontSlant
}

// DefaultFontSize is used when Font.Size is zero.
const DefaultFontSize float64 = 16

// FillStyle configures fill operations.
type FillStyle struct {
	Color string
}

// StrokeStyle configures stroke operations.
type StrokeStyle struct {
	Color string
	Width float64
}

// Style is the painter state installed by SetStyle and stacked by
// Save/Restore.
type Style struct {
	Fill    FillStyle
	Stroke  StrokeStyle
	Font    Font
	Padding float64
}

// FontMetrics reports measurements of the active font.
type FontMetrics struct {
	CapHeight float64
}

// ParseColor resolves a CSS-style color string ("#rrggbb", "#rgb") to
// an RGBA value. Unparseable strings resolve to opaque black.
func ParseColor(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// BlendColor interpolates between two color strings in Luv space and
// returns the result as a hex string. t is clamped to [0, 1].
func BlendColor(from, to string, t float64) string {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	a, errA := colorful.Hex(from)
	b, errB := colorful.Hex(to)
	if errA != nil || errB != nil {
		return from
	}
	return a.BlendLuv(b, t).Clamped().Hex()
}
