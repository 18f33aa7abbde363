// Package imagepainter renders into an in-memory RGBA image. It backs
// headless rendering and the test suite; no window system is involved.
package imagepainter

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/geom"
)

type paintState struct {
	style     backend.Style
	translate geom.Point
	clip      image.Rectangle
}

// Painter implements backend.Painter over an *image.RGBA.
type Painter struct {
	dst   *image.RGBA
	face  font.Face
	state paintState
	stack []paintState
}

// New creates a painter over a fresh surface of the given size.
func New(width, height int) *Painter {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	return NewForImage(dst)
}

// NewForImage creates a painter drawing into dst.
func NewForImage(dst *image.RGBA) *Painter {
	return &Painter{
		dst:   dst,
		face:  basicfont.Face7x13,
		state: paintState{clip: dst.Bounds()},
	}
}

// Image returns the surface being drawn into.
func (p *Painter) Image() *image.RGBA { return p.dst }

// ClearAll erases the whole surface with the active fill color,
// ignoring translation and clip.
func (p *Painter) ClearAll() {
	draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(p.fillColor()), image.Point{}, draw.Src)
}

// FillRect fills r with the active fill color.
func (p *Painter) FillRect(r geom.Rect) {
	draw.Draw(p.dst, p.deviceRect(r), image.NewUniform(p.fillColor()), image.Point{}, draw.Over)
}

// StrokeRect outlines r with the active stroke color and width.
func (p *Painter) StrokeRect(r geom.Rect) {
	w := p.state.style.Stroke.Width
	if w <= 0 {
		w = 1
	}
	c := p.strokeColor()
	top := geom.RectXYWH(r.Origin.X, r.Origin.Y, r.Size.Width, w)
	bottom := geom.RectXYWH(r.Origin.X, r.MaxY()-w, r.Size.Width, w)
	left := geom.RectXYWH(r.Origin.X, r.Origin.Y, w, r.Size.Height)
	right := geom.RectXYWH(r.MaxX()-w, r.Origin.Y, w, r.Size.Height)
	for _, edge := range []geom.Rect{top, bottom, left, right} {
		draw.Draw(p.dst, p.deviceRect(edge), image.NewUniform(c), image.Point{}, draw.Over)
	}
}

// FillCircle fills c with the active fill color.
func (p *Painter) FillCircle(c geom.Circle) {
	p.paintCircle(c, p.fillColor(), 0)
}

// StrokeCircle outlines c with the active stroke color.
func (p *Painter) StrokeCircle(c geom.Circle) {
	w := p.state.style.Stroke.Width
	if w <= 0 {
		w = 1
	}
	p.paintCircle(c, p.strokeColor(), w)
}

func (p *Painter) paintCircle(c geom.Circle, col color.Color, strokeWidth float64) {
	bounds := p.deviceRect(geom.RectXYWH(
		c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius))
	cx := c.Center.X + p.state.translate.X
	cy := c.Center.Y + p.state.translate.Y
	rr := c.Radius * c.Radius
	var inner float64
	if strokeWidth > 0 {
		ir := c.Radius - strokeWidth
		if ir > 0 {
			inner = ir * ir
		}
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := dx*dx + dy*dy
			if d <= rr && (strokeWidth <= 0 || d >= inner) {
				p.dst.Set(x, y, col)
			}
		}
	}
}

// FillText draws text with its baseline-left anchor at pos.
func (p *Painter) FillText(text string, pos geom.Point, maxWidth float64) {
	d := font.Drawer{
		Dst:  &clippedImage{p.dst, p.state.clip},
		Src:  image.NewUniform(p.fillColor()),
		Face: p.face,
		Dot: fixed.P(
			int(pos.X+p.state.translate.X),
			int(pos.Y+p.state.translate.Y),
		),
	}
	if maxWidth >= 0 {
		limit := d.Dot.X + fixed.I(int(maxWidth))
		for _, r := range text {
			adv, ok := p.face.GlyphAdvance(r)
			if !ok {
				continue
			}
			if d.Dot.X+adv > limit {
				break
			}
			d.DrawString(string(r))
		}
		return
	}
	d.DrawString(text)
}

// StrokeText draws text with the stroke color; the bitmap face has no
// separate outline form.
func (p *Painter) StrokeText(text string, pos geom.Point, maxWidth float64) {
	fill := p.state.style.Fill
	p.state.style.Fill = backend.FillStyle{Color: p.state.style.Stroke.Color}
	p.FillText(text, pos, maxWidth)
	p.state.style.Fill = fill
}

// MeasureText returns the advance width of text.
func (p *Painter) MeasureText(text string) float64 {
	return float64(font.MeasureString(p.face, text).Ceil())
}

// FontMetrics reports the active face's cap height.
func (p *Painter) FontMetrics() backend.FontMetrics {
	m := p.face.Metrics()
	return backend.FontMetrics{CapHeight: float64(m.CapHeight.Ceil())}
}

// DrawImage scales img into r.
func (p *Painter) DrawImage(img image.Image, r geom.Rect) {
	xdraw.ApproxBiLinear.Scale(p.dst, p.deviceRect(r), img, img.Bounds(), xdraw.Over, nil)
}

// MeasureImage returns img's pixel dimensions.
func (p *Painter) MeasureImage(img image.Image) geom.Size {
	b := img.Bounds()
	return geom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// Translate shifts the coordinate origin by d.
func (p *Painter) Translate(d geom.Point) {
	p.state.translate = p.state.translate.Add(d)
}

// Clip restricts painting to r in the current coordinate space.
func (p *Painter) Clip(r geom.Rect) {
	device := image.Rect(
		int(r.Origin.X+p.state.translate.X),
		int(r.Origin.Y+p.state.translate.Y),
		int(r.MaxX()+p.state.translate.X),
		int(r.MaxY()+p.state.translate.Y),
	)
	p.state.clip = p.state.clip.Intersect(device)
}

// Save pushes the style, translation, and clip.
func (p *Painter) Save() {
	p.stack = append(p.stack, p.state)
}

// Restore pops them.
func (p *Painter) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

// SetStyle installs the style used by subsequent operations.
func (p *Painter) SetStyle(s backend.Style) {
	p.state.style = s
}

// Flush is a no-op; drawing is immediate.
func (p *Painter) Flush() {}

func (p *Painter) fillColor() color.Color {
	return backend.ParseColor(p.state.style.Fill.Color)
}

func (p *Painter) strokeColor() color.Color {
	return backend.ParseColor(p.state.style.Stroke.Color)
}

func (p *Painter) deviceRect(r geom.Rect) image.Rectangle {
	device := image.Rect(
		int(r.Origin.X+p.state.translate.X),
		int(r.Origin.Y+p.state.translate.Y),
		int(r.MaxX()+p.state.translate.X),
		int(r.MaxY()+p.state.translate.Y),
	)
	return device.Intersect(p.state.clip)
}

// clippedImage bounds a drawing target to a clip rectangle so text
// rendering cannot escape it.
type clippedImage struct {
	*image.RGBA
	clip image.Rectangle
}

func (c *clippedImage) Set(x, y int, col color.Color) {
	if image.Pt(x, y).In(c.clip) {
		c.RGBA.Set(x, y, col)
	}
}

var _ backend.Painter = (*Painter)(nil)
