package fc

import "math"

// Point represents a 2D point or vector in screen space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsDefined reports whether both coordinates are finite (not NaN or Inf).
func (p Point) IsDefined() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Rect is an axis-aligned screen-space rectangle.
// The zero value is treated as empty by ExpandTo.
type Rect struct {
	X0, Y0, X1, Y1 float64
	set            bool
}

// Empty reports whether the rectangle has accumulated no points.
func (r Rect) Empty() bool {
	return !r.set
}

// ExpandTo grows the rectangle to include p.
// The first point initializes the rectangle.
func (r *Rect) ExpandTo(p Point) {
	if !r.set {
		r.X0, r.Y0, r.X1, r.Y1 = p.X, p.Y, p.X, p.Y
		r.set = true
		return
	}
	r.X0 = math.Min(r.X0, p.X)
	r.Y0 = math.Min(r.Y0, p.Y)
	r.X1 = math.Max(r.X1, p.X)
	r.Y1 = math.Max(r.Y1, p.Y)
}

// Width returns the horizontal extent, or 0 for an empty rectangle.
func (r Rect) Width() float64 {
	if !r.set {
		return 0
	}
	return r.X1 - r.X0
}

// Height returns the vertical extent, or 0 for an empty rectangle.
func (r Rect) Height() float64 {
	if !r.set {
		return 0
	}
	return r.Y1 - r.Y0
}
