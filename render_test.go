package ripple

import (
	"testing"
	"time"
)

func expandedWidget(t *testing.T, wpx, hpx float64) *Widget {
	t.Helper()
	w := NewWidget(wpx, hpx, WithColor(RGBA{R: 1, G: 0, B: 0, A: 1}))
	w.TouchDown(Pt(wpx/2, hpx/2))
	for i := 0; i < 60; i++ {
		w.Advance(time.Second / 60)
	}
	return w
}

func TestRendererHiddenDrawsNothing(t *testing.T) {
	w := NewWidget(20, 20)
	pm := NewPixmap(20, 20)
	NewRenderer().Render(w, pm)

	for _, b := range pm.Data() {
		if b != 0 {
			t.Fatal("hidden widget wrote pixels")
		}
	}
}

func TestRendererDrawsExpandedRipple(t *testing.T) {
	w := expandedWidget(t, 40, 40)
	pm := NewPixmap(40, 40)
	NewRenderer().Render(w, pm)

	// The touch point is covered once the ripple settled.
	if got := pm.GetPixel(20, 20); got.A == 0 {
		t.Error("ripple center not drawn")
	}
	if got := pm.GetPixel(20, 20); got.R == 0 {
		t.Error("ripple color not applied")
	}
}

func TestRendererOpacityScalesAlpha(t *testing.T) {
	w := expandedWidget(t, 40, 40)
	full := NewPixmap(40, 40)
	NewRenderer().Render(w, full)

	// Mid-fade the same pixel must be dimmer.
	w.TouchUp(Pt(20, 20))
	w.Advance(150 * time.Millisecond)
	faded := NewPixmap(40, 40)
	NewRenderer().Render(w, faded)

	fa := faded.GetPixel(20, 20).A
	fu := full.GetPixel(20, 20).A
	if fa == 0 {
		t.Fatal("mid-fade ripple not drawn")
	}
	if fa >= fu {
		t.Errorf("mid-fade alpha %v >= full alpha %v", fa, fu)
	}
}

func TestRendererClipRestrictsDrawing(t *testing.T) {
	w := expandedWidget(t, 40, 40)
	r := NewRenderer()
	r.SetClip(Circle{Center: Pt(20, 20), Radius: 8})

	pm := NewPixmap(40, 40)
	r.Render(w, pm)

	if got := pm.GetPixel(20, 20); got.A == 0 {
		t.Error("pixel inside clip not drawn")
	}
	// Outside the clip circle, inside the mask: must stay untouched.
	if got := pm.GetPixel(35, 20); got.A != 0 {
		t.Errorf("pixel outside clip drawn: %+v", got)
	}
}

func TestRendererBlendsOverBackground(t *testing.T) {
	w := NewWidget(40, 40, WithColor(RGBA{R: 0, G: 0, B: 1, A: 0.5}))
	w.TouchDown(Pt(20, 20))
	for i := 0; i < 60; i++ {
		w.Advance(time.Second / 60)
	}

	pm := NewPixmap(40, 40)
	pm.Clear(White)
	NewRenderer().Render(w, pm)

	got := pm.GetPixel(20, 20)
	// Half-alpha blue over white: red and green drop, blue stays high.
	if got.R > 0.6 || got.G > 0.6 {
		t.Errorf("blend = %+v, want red/green reduced", got)
	}
	if got.B < 0.9 {
		t.Errorf("blend = %+v, want blue near 1", got)
	}
	if got.A < 0.99 {
		t.Errorf("blend alpha = %v, want opaque result", got.A)
	}
}

func TestRendererZeroSpreadDrawsNothing(t *testing.T) {
	w := NewWidget(40, 40)
	w.TouchDown(Pt(20, 20)) // spread still 0, mask has no area
	pm := NewPixmap(40, 40)
	NewRenderer().Render(w, pm)

	for _, b := range pm.Data() {
		if b != 0 {
			t.Fatal("zero-spread ripple wrote pixels")
		}
	}
}

func TestRegionRender(t *testing.T) {
	reg := Attach(40, 40, Rect{W: 40, H: 40}, RGBA{R: 0, G: 1, B: 0, A: 1})
	reg.Model.BeginTouch(Pt(20, 20))
	for i := 0; i < 60; i++ {
		reg.Widget.Advance(time.Second / 60)
	}

	pm := NewPixmap(40, 40)
	reg.Render(pm)
	if got := pm.GetPixel(20, 20); got.G == 0 {
		t.Error("region render did not draw the ripple")
	}
}
