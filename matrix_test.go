package ripple

import (
	"math"
	"testing"
)

func matrixNear(a, b Matrix, eps float64) bool {
	return math.Abs(a.A-b.A) < eps && math.Abs(a.B-b.B) < eps &&
		math.Abs(a.C-b.C) < eps && math.Abs(a.D-b.D) < eps &&
		math.Abs(a.E-b.E) < eps && math.Abs(a.F-b.F) < eps
}

func TestScaleAboutFixedPoint(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		c     Point
	}{
		{"half about center", 0.5, Pt(50, 50)},
		{"double about corner", 2.0, Pt(0, 0)},
		{"shrink about offset", 0.25, Pt(30, 70)},
		{"identity scale", 1.0, Pt(10, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ScaleAbout(tt.scale, tt.c)
			// The anchor maps to itself.
			got := m.TransformPoint(tt.c)
			if got.Distance(tt.c) > 1e-10 {
				t.Errorf("anchor moved: %v -> %v", tt.c, got)
			}
			// A point one unit right of the anchor moves by the scale.
			q := m.TransformPoint(Pt(tt.c.X+1, tt.c.Y))
			if gotDX := q.X - tt.c.X; math.Abs(gotDX-tt.scale) > 1e-10 {
				t.Errorf("unit offset scaled to %v, want %v", gotDX, tt.scale)
			}
		})
	}
}

func TestMatrixInterpolate(t *testing.T) {
	from := ScaleAbout(0.5, Pt(100, 50))
	to := Identity()

	if got := from.Interpolate(to, 0); !matrixNear(got, from, 1e-12) {
		t.Errorf("Interpolate(0) = %+v, want %+v", got, from)
	}
	if got := from.Interpolate(to, 1); !matrixNear(got, to, 1e-12) {
		t.Errorf("Interpolate(1) = %+v, want %+v", got, to)
	}

	mid := from.Interpolate(to, 0.5)
	if got, want := mid.A, (from.A+1)/2; math.Abs(got-want) > 1e-12 {
		t.Errorf("Interpolate(0.5).A = %v, want %v", got, want)
	}
	if got, want := mid.C, from.C/2; math.Abs(got-want) > 1e-12 {
		t.Errorf("Interpolate(0.5).C = %v, want %v", got, want)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Translate then scale is not scale then translate.
	ts := Translate(10, 0).Multiply(Scale(2, 2))
	st := Scale(2, 2).Multiply(Translate(10, 0))

	p := Pt(1, 0)
	if got, want := ts.TransformPoint(p), Pt(12, 0); got.Distance(want) > 1e-10 {
		t.Errorf("translate*scale applied to %v = %v, want %v", p, got, want)
	}
	if got, want := st.TransformPoint(p), Pt(22, 0); got.Distance(want) > 1e-10 {
		t.Errorf("scale*translate applied to %v = %v, want %v", p, got, want)
	}
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translation", Translate(5, -3)},
		{"scale", Scale(2, 0.5)},
		{"scale about point", ScaleAbout(0.65, Pt(40, 60))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := tt.m.Invert()
			if got := tt.m.Multiply(inv); !matrixNear(got, Identity(), 1e-9) {
				t.Errorf("m * m⁻¹ = %+v, want identity", got)
			}
		})
	}

	t.Run("singular", func(t *testing.T) {
		if got := (Matrix{}).Invert(); !got.IsIdentity() {
			t.Errorf("Invert of singular matrix = %+v, want identity", got)
		}
	})
}

func TestMatrixIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity().IsIdentity() = false")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("Translate(1,0).IsIdentity() = true")
	}
	if Scale(2, 2).IsIdentity() {
		t.Error("Scale(2,2).IsIdentity() = true")
	}
}

func TestMatrixUniformScale(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want float64
	}{
		{"identity", Identity(), 1},
		{"scale about", ScaleAbout(0.65, Pt(10, 20)), 0.65},
		{"interpolated halfway", ScaleAbout(0.5, Pt(0, 0)).Interpolate(Identity(), 0.5), 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.UniformScale(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("UniformScale() = %v, want %v", got, tt.want)
			}
		})
	}
}
