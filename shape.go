package ripple

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// RRect is an axis-aligned rounded rectangle, the ripple mask's shape.
type RRect struct {
	Center Point
	HalfW  float64
	HalfH  float64
	Radius float64
}

// Transform applies a uniform-scale-and-translate transform to the
// rounded rectangle. The container transforms a ripple uses (ScaleAbout
// and its interpolation toward the identity) never rotate or shear, so
// the shape stays an axis-aligned rounded rectangle.
func (r RRect) Transform(m Matrix) RRect {
	k := m.UniformScale()
	return RRect{
		Center: m.TransformPoint(r.Center),
		HalfW:  r.HalfW * k,
		HalfH:  r.HalfH * k,
		Radius: r.Radius * k,
	}
}

// Coverage returns the anti-aliased coverage of the pixel centered at
// (px, py).
func (r RRect) Coverage(px, py float64) float64 {
	return RRectCoverage(px, py, r.Center.X, r.Center.Y, r.HalfW, r.HalfH, r.Radius)
}

// Shape clips the ripple to a region. Coverage returns how much of the
// pixel centered at (px, py) lies inside the shape, in [0, 1].
type Shape interface {
	Coverage(px, py float64) float64
}

// Rect is a rectangular clip covering [0,0]..(w,h), the default for a
// widget attached to a plain rectangular region.
type Rect struct {
	W, H float64
}

// Coverage implements Shape.
func (r Rect) Coverage(px, py float64) float64 {
	return RRectCoverage(px, py, r.W/2, r.H/2, r.W/2, r.H/2, 0)
}

// Circle is a circular clip.
type Circle struct {
	Center Point
	Radius float64
}

// Coverage implements Shape.
func (c Circle) Coverage(px, py float64) float64 {
	return CircleCoverage(px, py, c.Center.X, c.Center.Y, c.Radius)
}

// RoundedRect is a rounded-rectangle clip such as a button outline.
type RoundedRect struct {
	X, Y, W, H float64
	CornerR    float64
}

// Coverage implements Shape.
func (r RoundedRect) Coverage(px, py float64) float64 {
	return RRectCoverage(px, py, r.X+r.W/2, r.Y+r.H/2, r.W/2, r.H/2, r.CornerR)
}

// PathShape clips the ripple to an arbitrary filled path. The path is
// rasterized once into an alpha mask on first use; Coverage then
// samples the mask. Build the path with MoveTo/LineTo/QuadTo/CubeTo in
// the coordinate space of the widget's bounds.
type PathShape struct {
	w, h int
	ras  *vector.Rasterizer
	mask *image.Alpha
}

// NewPathShape creates an empty path clip for a w x h region.
func NewPathShape(w, h int) *PathShape {
	return &PathShape{
		w:   w,
		h:   h,
		ras: vector.NewRasterizer(w, h),
	}
}

// MoveTo starts a new subpath at the given point.
func (p *PathShape) MoveTo(x, y float64) {
	p.mask = nil
	p.ras.MoveTo(float32(x), float32(y))
}

// LineTo adds a line segment to the given point.
func (p *PathShape) LineTo(x, y float64) {
	p.mask = nil
	p.ras.LineTo(float32(x), float32(y))
}

// QuadTo adds a quadratic Bezier segment.
func (p *PathShape) QuadTo(cx, cy, x, y float64) {
	p.mask = nil
	p.ras.QuadTo(float32(cx), float32(cy), float32(x), float32(y))
}

// CubeTo adds a cubic Bezier segment.
func (p *PathShape) CubeTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.mask = nil
	p.ras.CubeTo(float32(c1x), float32(c1y), float32(c2x), float32(c2y), float32(x), float32(y))
}

// Close closes the current subpath.
func (p *PathShape) Close() {
	p.mask = nil
	p.ras.ClosePath()
}

// Coverage implements Shape by sampling the rasterized alpha mask.
func (p *PathShape) Coverage(px, py float64) float64 {
	if p.mask == nil {
		p.rasterize()
	}
	x := int(math.Floor(px))
	y := int(math.Floor(py))
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return 0
	}
	return float64(p.mask.AlphaAt(x, y).A) / 255
}

func (p *PathShape) rasterize() {
	p.mask = image.NewAlpha(image.Rect(0, 0, p.w, p.h))
	p.ras.Draw(p.mask, p.mask.Bounds(), image.Opaque, image.Point{})
}

var (
	_ Shape = Rect{}
	_ Shape = Circle{}
	_ Shape = RoundedRect{}
	_ Shape = (*PathShape)(nil)
)
