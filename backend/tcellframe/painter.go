// Package tcellframe runs the widget tree inside a terminal. One cell
// is one coordinate unit, so layouts written for it use cell-sized
// dimensions.
package tcellframe

import (
	"image"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/i2y/castella-go/backend"
	"github.com/i2y/castella-go/geom"
)

type paintState struct {
	style     backend.Style
	translate geom.Point
	clip      image.Rectangle
}

// painter implements backend.Painter over a tcell screen.
type painter struct {
	screen tcell.Screen
	state  paintState
	stack  []paintState
}

func newPainter(screen tcell.Screen) *painter {
	w, h := screen.Size()
	return &painter{
		screen: screen,
		state:  paintState{clip: image.Rect(0, 0, w, h)},
	}
}

func (p *painter) resetClip() {
	w, h := p.screen.Size()
	p.state.clip = image.Rect(0, 0, w, h)
	p.state.translate = geom.Point{}
	p.stack = p.stack[:0]
}

func (p *painter) ClearAll() {
	w, h := p.screen.Size()
	st := tcell.StyleDefault.Background(cellColor(p.state.style.Fill.Color))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (p *painter) FillRect(r geom.Rect) {
	st := tcell.StyleDefault.Background(cellColor(p.state.style.Fill.Color))
	p.eachCell(r, func(x, y int) {
		p.screen.SetContent(x, y, ' ', nil, st)
	})
}

func (p *painter) StrokeRect(r geom.Rect) {
	st := tcell.StyleDefault.Foreground(cellColor(p.state.style.Stroke.Color))
	device := p.deviceRect(r)
	for x := device.Min.X; x < device.Max.X; x++ {
		p.setRune(x, device.Min.Y, tcell.RuneHLine, st)
		p.setRune(x, device.Max.Y-1, tcell.RuneHLine, st)
	}
	for y := device.Min.Y; y < device.Max.Y; y++ {
		p.setRune(device.Min.X, y, tcell.RuneVLine, st)
		p.setRune(device.Max.X-1, y, tcell.RuneVLine, st)
	}
	p.setRune(device.Min.X, device.Min.Y, tcell.RuneULCorner, st)
	p.setRune(device.Max.X-1, device.Min.Y, tcell.RuneURCorner, st)
	p.setRune(device.Min.X, device.Max.Y-1, tcell.RuneLLCorner, st)
	p.setRune(device.Max.X-1, device.Max.Y-1, tcell.RuneLRCorner, st)
}

func (p *painter) FillCircle(c geom.Circle) {
	st := tcell.StyleDefault.Background(cellColor(p.state.style.Fill.Color))
	p.eachCircleCell(c, func(x, y int) {
		p.screen.SetContent(x, y, ' ', nil, st)
	})
}

func (p *painter) StrokeCircle(c geom.Circle) {
	st := tcell.StyleDefault.Foreground(cellColor(p.state.style.Stroke.Color))
	inner := c
	inner.Radius -= 1
	p.eachCircleCell(c, func(x, y int) {
		center := geom.Point{
			X: float64(x) + 0.5 - p.state.translate.X,
			Y: float64(y) + 0.5 - p.state.translate.Y,
		}
		if !inner.Contains(center) {
			p.setRune(x, y, 'o', st)
		}
	})
}

func (p *painter) FillText(text string, pos geom.Point, maxWidth float64) {
	st := tcell.StyleDefault.Foreground(cellColor(p.state.style.Fill.Color))
	// pos is a baseline anchor; in cell space the baseline row is the
	// cell above it.
	x := int(pos.X + p.state.translate.X)
	y := int(pos.Y+p.state.translate.Y) - 1
	limit := -1
	if maxWidth >= 0 {
		limit = x + int(maxWidth)
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if limit >= 0 && x+w > limit {
			break
		}
		p.setRune(x, y, r, st)
		x += w
	}
}

func (p *painter) StrokeText(text string, pos geom.Point, maxWidth float64) {
	fill := p.state.style.Fill
	p.state.style.Fill = backend.FillStyle{Color: p.state.style.Stroke.Color}
	p.FillText(text, pos, maxWidth)
	p.state.style.Fill = fill
}

func (p *painter) MeasureText(text string) float64 {
	return float64(runewidth.StringWidth(text))
}

func (p *painter) FontMetrics() backend.FontMetrics {
	return backend.FontMetrics{CapHeight: 1}
}

// DrawImage renders img by sampling one pixel per cell into the cell's
// background color.
func (p *painter) DrawImage(img image.Image, r geom.Rect) {
	device := p.deviceRect(r)
	bounds := img.Bounds()
	if device.Dx() <= 0 || device.Dy() <= 0 || bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return
	}
	for y := device.Min.Y; y < device.Max.Y; y++ {
		for x := device.Min.X; x < device.Max.X; x++ {
			sx := bounds.Min.X + (x-device.Min.X)*bounds.Dx()/device.Dx()
			sy := bounds.Min.Y + (y-device.Min.Y)*bounds.Dy()/device.Dy()
			cr, cg, cb, _ := img.At(sx, sy).RGBA()
			c := tcell.NewRGBColor(int32(cr>>8), int32(cg>>8), int32(cb>>8))
			p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(c))
		}
	}
}

func (p *painter) MeasureImage(img image.Image) geom.Size {
	b := img.Bounds()
	return geom.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (p *painter) Translate(d geom.Point) {
	p.state.translate = p.state.translate.Add(d)
}

func (p *painter) Clip(r geom.Rect) {
	device := image.Rect(
		int(r.Origin.X+p.state.translate.X),
		int(r.Origin.Y+p.state.translate.Y),
		int(r.MaxX()+p.state.translate.X),
		int(r.MaxY()+p.state.translate.Y),
	)
	p.state.clip = p.state.clip.Intersect(device)
}

func (p *painter) Save() {
	p.stack = append(p.stack, p.state)
}

func (p *painter) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.state = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *painter) SetStyle(s backend.Style) {
	p.state.style = s
}

func (p *painter) Flush() {
	p.screen.Show()
}

func (p *painter) setRune(x, y int, r rune, st tcell.Style) {
	if image.Pt(x, y).In(p.state.clip) {
		p.screen.SetContent(x, y, r, nil, st)
	}
}

func (p *painter) eachCell(r geom.Rect, fn func(x, y int)) {
	device := p.deviceRect(r)
	for y := device.Min.Y; y < device.Max.Y; y++ {
		for x := device.Min.X; x < device.Max.X; x++ {
			fn(x, y)
		}
	}
}

func (p *painter) eachCircleCell(c geom.Circle, fn func(x, y int)) {
	bounds := p.deviceRect(geom.RectXYWH(
		c.Center.X-c.Radius, c.Center.Y-c.Radius, 2*c.Radius, 2*c.Radius))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			center := geom.Point{
				X: float64(x) + 0.5 - p.state.translate.X,
				Y: float64(y) + 0.5 - p.state.translate.Y,
			}
			if c.Contains(center) {
				fn(x, y)
			}
		}
	}
}

func (p *painter) deviceRect(r geom.Rect) image.Rectangle {
	device := image.Rect(
		int(r.Origin.X+p.state.translate.X),
		int(r.Origin.Y+p.state.translate.Y),
		int(r.MaxX()+p.state.translate.X),
		int(r.MaxY()+p.state.translate.Y),
	)
	return device.Intersect(p.state.clip)
}

func cellColor(s string) tcell.Color {
	if s == "" {
		return tcell.ColorDefault
	}
	c := backend.ParseColor(s)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var _ backend.Painter = (*painter)(nil)
