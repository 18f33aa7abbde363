// Package geom provides the geometry primitives shared by layout,
// painting, and hit-testing.
package geom

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Add returns the component-wise sum of s and t.
func (s Size) Add(t Size) Size {
	return Size{Width: s.Width + t.Width, Height: s.Height + t.Height}
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Origin Point
	Size   Size
}

// RectXYWH builds a rectangle from scalar components.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return r.Origin.X <= p.X && p.X <= r.Origin.X+r.Size.Width &&
		r.Origin.Y <= p.Y && p.Y <= r.Origin.Y+r.Size.Height
}

// MaxX returns the right edge of r.
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

// MaxY returns the bottom edge of r.
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.Origin.X + r.Size.Width/2, Y: r.Origin.Y + r.Size.Height/2}
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Origin: r.Origin.Add(d), Size: r.Size}
}

// Intersect returns the overlap of r and o, which may be empty.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.Origin.X, o.Origin.X)
	y0 := max(r.Origin.Y, o.Origin.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return RectXYWH(x0, y0, x1-x0, y1-y0)
}

// Circle is a center/radius pair used by round hit areas.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies strictly inside c.
func (c Circle) Contains(p Point) bool {
	dx := p.X - c.Center.X
	dy := p.Y - c.Center.Y
	return dx*dx+dy*dy < c.Radius*c.Radius
}
