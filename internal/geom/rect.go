package geom

import "gonum.org/v1/gonum/spatial/r2"

// Point is a coordinate in screen cells.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Rects returned by a Sampler are in
// viewport (screen) coordinates; the zero Rect means "not mounted".
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Box returns r as a gonum box. A rect with negative size gives an empty
// box.
func (r Rect) Box() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: r.Left, Y: r.Top},
		Max: r2.Vec{X: r.Right(), Y: r.Bottom()},
	}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Box().Empty()
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point(r.Box().Center())
}

// Contains reports whether p lies inside r. Right and bottom edges are
// exclusive, matching how terminal cells are addressed; r2.Box alone is
// closed on every side.
func (r Rect) Contains(p Point) bool {
	b, v := r.Box(), r2.Vec(p)
	if b.Empty() {
		return false
	}
	return b.Contains(v) && v.X < b.Max.X && v.Y < b.Max.Y
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// VerticalOverlap returns the length of the overlap between the vertical
// spans of a and b, or 0 if they are disjoint.
func VerticalOverlap(a, b Rect) float64 {
	top := max(a.Top, b.Top)
	bottom := min(a.Bottom(), b.Bottom())
	if bottom <= top {
		return 0
	}
	return bottom - top
}

// VisibleRatio returns the fraction of r's height that lies inside the
// vertical span of viewport. Empty rects are never visible.
func VisibleRatio(r, viewport Rect) float64 {
	if r.Empty() {
		return 0
	}
	return VerticalOverlap(r, viewport) / r.Height
}
