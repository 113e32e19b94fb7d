package ripple

import "math"

// Bounds is the widget's rectangle, anchored at the origin.
type Bounds struct {
	W, H float64
}

// Corners returns the four corners of the bounds rectangle.
func (b Bounds) Corners() [4]Point {
	return [4]Point{
		{0, 0},
		{b.W, 0},
		{0, b.H},
		{b.W, b.H},
	}
}

// Center returns the center of the bounds rectangle.
func (b Bounds) Center() Point {
	return Point{X: b.W / 2, Y: b.H / 2}
}

// Empty reports whether the bounds have no area.
func (b Bounds) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// RippleRadius returns the minimum radius of a circle centered at p
// that covers the whole bounds rectangle: the maximum distance from p
// to any of the four corners. p may lie outside the bounds.
func RippleRadius(b Bounds, p Point) float64 {
	var r float64
	for _, c := range b.Corners() {
		r = math.Max(r, p.Distance(c))
	}
	return r
}

// MaxRadius returns the reference radius used to normalize the resting
// scale: the larger of the bounds' width and height.
func MaxRadius(b Bounds) float64 {
	return math.Max(b.W, b.H)
}

// RestingScale converts an explicit fill fraction into the transform
// scale the ripple settles at: RippleRadius(p) / MaxRadius * fillPercent.
// Degenerate zero-size bounds yield a zero scale rather than an error.
func RestingScale(b Bounds, p Point, fillPercent float64) float64 {
	maxR := MaxRadius(b)
	if maxR <= 0 {
		return 0
	}
	return RippleRadius(b, p) / maxR * fillPercent
}
