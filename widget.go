package ripple

import "time"

// Phase identifies where the widget is in its show/hide cycle.
type Phase uint8

const (
	// PhaseIdle means hidden with no animation running.
	PhaseIdle Phase = iota

	// PhaseExpanding means the fill animation is running.
	PhaseExpanding

	// PhaseSettled means the fill completed while the touch is still down.
	PhaseSettled

	// PhaseRetracting means the release fade-out is running.
	PhaseRetracting
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExpanding:
		return "expanding"
	case PhaseSettled:
		return "settled"
	case PhaseRetracting:
		return "retracting"
	default:
		return "unknown"
	}
}

// Widget is the ripple state machine. It owns the visual state of one
// ripple (center, scale, mask spread, opacity, visibility) and mutates
// it in response to the four touch lifecycle calls.
//
// Widget is NOT safe for concurrent use. Drive it, and its timeline,
// from the goroutine that owns the UI frame loop. Animations are
// asynchronous relative to the caller only in the sense that their
// completions are delivered from a later Advance call; nothing ever
// runs on another goroutine.
type Widget struct {
	bounds Bounds
	color  RGBA

	fillPercent  float64
	fillDuration time.Duration
	fadeDuration time.Duration
	fillEasing   Easing
	fadeEasing   Easing
	hideOnSettle bool

	timeline *Timeline

	touchDown bool
	animating bool
	visible   bool

	center    Point
	scale     float64
	transform Matrix
	opacity   float64
	spread    float64
	phase     Phase

	fill *Transition
	fade *Transition
}

// NewWidget creates a hidden widget covering a w x h region.
func NewWidget(w, h float64, opts ...Option) *Widget {
	o := defaultWidgetOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tl := o.timeline
	if tl == nil {
		tl = NewTimeline()
	}
	return &Widget{
		bounds:       Bounds{W: w, H: h},
		color:        o.color,
		fillPercent:  o.fillPercent,
		fillDuration: o.fillDuration,
		fadeDuration: o.fadeDuration,
		fillEasing:   o.fillEasing,
		fadeEasing:   o.fadeEasing,
		hideOnSettle: o.hideOnSettle,
		timeline:     tl,
		transform:    Identity(),
	}
}

// TouchDown begins a ripple at p. Any fill or fade still in flight is
// cancelled first, so a stale release can never hide a ripple that has
// been touched again.
func (w *Widget) TouchDown(p Point) {
	w.timeline.Cancel(w.fill)
	w.timeline.Cancel(w.fade)

	w.touchDown = true
	w.center = p
	w.scale = RestingScale(w.bounds, p, w.fillPercent)
	w.transform = ScaleAbout(w.scale, p)
	w.visible = true
	w.opacity = 1
	w.spread = 0
	w.animating = true
	w.phase = PhaseExpanding

	w.fill = w.timeline.Start(Transition{
		Duration: w.fillDuration,
		Easing:   w.fillEasing,
		Apply: func(progress float64) {
			w.spread = progress
		},
		OnComplete: func(finished bool) {
			w.fill = nil
			w.animating = false
			if !finished {
				return
			}
			if !w.touchDown {
				// Released before the fill ended: the widget is
				// retracting, and the fade owns the rest of the
				// lifecycle.
				if w.hideOnSettle {
					w.hide()
				}
				return
			}
			w.phase = PhaseSettled
		},
	})
}

// TouchMove updates the ripple center and resting scale for p. It
// never changes visibility and never starts or stops an animation.
func (w *Widget) TouchMove(p Point) {
	w.center = p
	w.scale = RestingScale(w.bounds, p, w.fillPercent)
	w.transform = ScaleAbout(w.scale, p)
}

// TouchUp releases the touch at p and starts the fade-out: the
// container transform animates back to identity while opacity drops to
// zero. The widget hides only if the fade runs to completion with no
// new touch having begun: the touch flag is re-checked in the fade
// completion, because a new TouchDown may arrive mid-fade.
func (w *Widget) TouchUp(p Point) {
	if !w.visible {
		return
	}
	// A repeated release with no touch in between replaces the running
	// fade; the stale one must not survive to clobber the new handle.
	w.timeline.Cancel(w.fade)
	w.center = p
	w.touchDown = false

	w.phase = PhaseRetracting
	from := w.transform
	fromOpacity := w.opacity
	w.fade = w.timeline.Start(Transition{
		Duration: w.fadeDuration,
		Easing:   w.fadeEasing,
		Apply: func(progress float64) {
			w.transform = from.Interpolate(Identity(), progress)
			w.opacity = fromOpacity * (1 - progress)
		},
		OnComplete: func(finished bool) {
			w.fade = nil
			if finished && !w.touchDown {
				w.hide()
			}
		},
	})
}

// TouchCancel aborts the gesture: all animations stop and the widget
// hides immediately with no fade.
func (w *Widget) TouchCancel() {
	w.touchDown = false
	w.hide()
}

// Advance steps the widget's timeline by dt. When the widget shares a
// timeline (WithTimeline), this steps every transition scheduled on it.
func (w *Widget) Advance(dt time.Duration) {
	w.timeline.Advance(dt)
}

func (w *Widget) hide() {
	// A fade can finish while the fill is still running (release before
	// settle), and vice versa. Neither may outlive the widget: a stale
	// fill would keep rewriting spread on a hidden widget.
	w.timeline.Cancel(w.fill)
	w.timeline.Cancel(w.fade)
	w.visible = false
	w.opacity = 0
	w.spread = 0
	w.transform = Identity()
	w.phase = PhaseIdle
}

// Bounds returns the widget's region.
func (w *Widget) Bounds() Bounds { return w.bounds }

// Color returns the ripple tint.
func (w *Widget) Color() RGBA { return w.color }

// Center returns the current ripple center.
func (w *Widget) Center() Point { return w.center }

// Scale returns the current resting transform scale.
func (w *Widget) Scale() float64 { return w.scale }

// Opacity returns the current opacity in [0, 1].
func (w *Widget) Opacity() float64 { return w.opacity }

// Spread returns the mask expansion progress in [0, 1].
func (w *Widget) Spread() float64 { return w.spread }

// Transform returns the current container transform.
func (w *Widget) Transform() Matrix { return w.transform }

// Visible reports whether the widget currently draws anything.
func (w *Widget) Visible() bool { return w.visible }

// TouchIsDown reports whether a touch is currently held.
func (w *Widget) TouchIsDown() bool { return w.touchDown }

// Animating reports whether the fill animation is running.
func (w *Widget) Animating() bool { return w.animating }

// Phase returns the current lifecycle phase.
func (w *Widget) Phase() Phase { return w.phase }

// Timeline returns the timeline the widget schedules transitions on.
func (w *Widget) Timeline() *Timeline { return w.timeline }

// Mask returns the expanding mask at the current spread, in widget
// coordinates before the container transform. The mask interpolates
// from a zero-size rounded rectangle at the origin to the bounds inset
// outward by MaxRadius with corner radius MaxRadius — a full circle
// covering the bounds.
func (w *Widget) Mask() RRect {
	maxR := MaxRadius(w.bounds)
	s := w.spread
	return RRect{
		Center: Point{X: s * w.bounds.W / 2, Y: s * w.bounds.H / 2},
		HalfW:  s * (w.bounds.W/2 + maxR),
		HalfH:  s * (w.bounds.H/2 + maxR),
		Radius: s * maxR,
	}
}

// VisualMask returns the mask with the container transform applied:
// the shape actually drawn this frame, in device coordinates.
func (w *Widget) VisualMask() RRect {
	return w.Mask().Transform(w.transform)
}
