// Package backend declares the drawing surface and platform boundary
// the core depends on. Concrete backends implement these interfaces;
// the core never draws a pixel itself.
package backend

import (
	"image"

	"github.com/i2y/castella-go/geom"
)

// Painter is the abstract drawing surface handed to widgets during the
// paint pass and to the layout engine during the measure pass.
//
// Coordinates are local: the runtime translates and clips the painter
// before descending into each child, so a widget always paints at
// origin (0, 0) within its own bounds.
type Painter interface {
	// ClearAll erases the whole surface using the active fill style.
	ClearAll()

	FillRect(r geom.Rect)
	StrokeRect(r geom.Rect)
	FillCircle(c geom.Circle)
	StrokeCircle(c geom.Circle)

	// FillText draws text with its baseline-left anchor at pos.
	// A negative maxWidth means unconstrained.
	FillText(text string, pos geom.Point, maxWidth float64)
	StrokeText(text string, pos geom.Point, maxWidth float64)

	// MeasureText returns the advance width of text under the active
	// font.
	MeasureText(text string) float64
	FontMetrics() FontMetrics

	DrawImage(img image.Image, r geom.Rect)
	MeasureImage(img image.Image) geom.Size

	// Translate shifts the coordinate origin by d for subsequent calls.
	Translate(d geom.Point)
	// Clip restricts painting to r in the current coordinate space.
	Clip(r geom.Rect)

	// Save pushes the style, translation, and clip; Restore pops them.
	Save()
	Restore()

	// SetStyle installs the style used by subsequent operations.
	SetStyle(s Style)

	// Flush commits buffered drawing to the surface.
	Flush()
}

// TextMeasurer is the subset of Painter that layout's measure pass
// needs for intrinsic text sizing.
type TextMeasurer interface {
	MeasureText(text string) float64
	FontMetrics() FontMetrics
}
