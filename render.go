package ripple

import (
	"errors"
	"math"
)

// Renderer composites a widget's current visual state over a pixmap.
// The ripple is drawn as its transformed mask shape, modulated by the
// widget opacity and an optional clip shape, blended source-over in
// premultiplied alpha.
//
// A Renderer is cheap; create one per widget or share one. It holds no
// per-frame state beyond the clip.
type Renderer struct {
	clip Shape
}

// NewRenderer creates a renderer with no clip.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// SetClip restricts drawing to the given shape. Pass nil to clear.
func (r *Renderer) SetClip(s Shape) {
	r.clip = s
}

// Clip returns the current clip shape, or nil.
func (r *Renderer) Clip() Shape {
	return r.clip
}

// Render draws the widget's current frame over pm. Hidden or fully
// transparent widgets draw nothing. When a GPU accelerator is
// registered and no clip is set, it is tried first; any accelerator
// error falls back to the CPU coverage loop.
func (r *Renderer) Render(w *Widget, pm *Pixmap) {
	if !w.Visible() || w.Opacity() <= 0 {
		return
	}
	mask := w.VisualMask()
	if mask.HalfW <= 0 || mask.HalfH <= 0 {
		return
	}
	col := w.Color().ScaleAlpha(w.Opacity()).Premultiply()

	if a := Accelerator(); a != nil && r.clip == nil {
		target := GPURenderTarget{
			Data:   pm.Data(),
			Width:  pm.Width(),
			Height: pm.Height(),
			Stride: pm.Width() * 4,
		}
		err := a.FillMask(target, mask, col)
		if err == nil {
			err = a.Flush(target)
		}
		if err == nil {
			return
		}
		if !errors.Is(err, ErrFallbackToCPU) {
			Logger().Warn("ripple: GPU render failed, using CPU", "accelerator", a.Name(), "err", err)
		}
	}

	r.renderCPU(mask, col, pm)
}

// renderCPU is the software path: per-pixel SDF coverage over the
// mask's bounding box, clip applied in device coordinates.
func (r *Renderer) renderCPU(mask RRect, col RGBA, pm *Pixmap) {
	x0 := int(math.Floor(mask.Center.X - mask.HalfW - sdfAntialiasWidth))
	x1 := int(math.Ceil(mask.Center.X + mask.HalfW + sdfAntialiasWidth))
	y0 := int(math.Floor(mask.Center.Y - mask.HalfH - sdfAntialiasWidth))
	y1 := int(math.Ceil(mask.Center.Y + mask.HalfH + sdfAntialiasWidth))

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, pm.Width()-1)
	y1 = min(y1, pm.Height()-1)

	data := pm.Data()
	for y := y0; y <= y1; y++ {
		py := float64(y) + 0.5
		row := y * pm.Width() * 4
		for x := x0; x <= x1; x++ {
			px := float64(x) + 0.5
			cov := mask.Coverage(px, py)
			if cov <= 0 {
				continue
			}
			if r.clip != nil {
				cov *= r.clip.Coverage(px, py)
				if cov <= 0 {
					continue
				}
			}
			blendPixel(data[row+x*4:row+x*4+4], col, cov)
		}
	}
}

// blendPixel composites a premultiplied source color scaled by coverage
// over one destination pixel (source-over).
func blendPixel(dst []uint8, src RGBA, cov float64) {
	sr := src.R * cov
	sg := src.G * cov
	sb := src.B * cov
	sa := src.A * cov
	inv := 1 - sa

	dst[0] = uint8(clamp255((sr + float64(dst[0])/255*inv) * 255))
	dst[1] = uint8(clamp255((sg + float64(dst[1])/255*inv) * 255))
	dst[2] = uint8(clamp255((sb + float64(dst[2])/255*inv) * 255))
	dst[3] = uint8(clamp255((sa + float64(dst[3])/255*inv) * 255))
}
