package ripple

// LongPressState tags the lifecycle of a long-press gesture delivered
// to a long-press callback.
type LongPressState uint8

const (
	// LongPressStarted fires once when the press crosses the hold threshold.
	LongPressStarted LongPressState = iota

	// LongPressMoved fires when the pointer moves during an active long press.
	LongPressMoved

	// LongPressEnded fires when the pointer lifts, ending the long press.
	LongPressEnded
)

// String returns the state name.
func (s LongPressState) String() string {
	switch s {
	case LongPressStarted:
		return "started"
	case LongPressMoved:
		return "moved"
	case LongPressEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Model is a value-like view-model between a gesture source and the
// ripple state machine. It exposes optional callback slots; unset slots
// are simply skipped. An external recognizer calls BeginTouch /
// MoveTouch / EndTouch on the raw touch lifecycle and Tap for
// recognized taps. The model carries no logic of its own — the Widget
// behind the slots is the single source of truth.
type Model struct {
	// TouchDown, TouchMove, TouchUp are optional slots invoked on the
	// raw touch lifecycle.
	TouchDown func(Point)
	TouchMove func(Point)
	TouchUp   func(Point)

	handling bool
}

// BeginTouch marks touch handling active and invokes the TouchDown slot.
func (m *Model) BeginTouch(p Point) {
	m.handling = true
	if m.TouchDown != nil {
		m.TouchDown(p)
	}
}

// MoveTouch invokes the TouchMove slot.
func (m *Model) MoveTouch(p Point) {
	if m.TouchMove != nil {
		m.TouchMove(p)
	}
}

// EndTouch invokes the TouchUp slot and clears the handling flag.
func (m *Model) EndTouch(p Point) {
	if m.TouchUp != nil {
		m.TouchUp(p)
	}
	m.handling = false
}

// Tap translates a recognized tap into a synthetic down+up pair, but
// only when no raw touch handling is in progress — a tap recognized at
// the tail of a handled touch must not retrigger the ripple.
func (m *Model) Tap(p Point) {
	if m.handling {
		return
	}
	if m.TouchDown != nil {
		m.TouchDown(p)
	}
	if m.TouchUp != nil {
		m.TouchUp(p)
	}
}

// TouchHandling reports whether a raw touch is currently being handled.
func (m *Model) TouchHandling() bool {
	return m.handling
}

// Region is ripple behavior attached to an arbitrary area: a widget,
// the view-model driving it, and the renderer clipping it. OnTap and
// OnLongPress are the optional gesture callbacks handed to whatever
// recognizer feeds the region (see the gesture package).
type Region struct {
	Widget   *Widget
	Model    *Model
	Renderer *Renderer

	OnTap       func(Point)
	OnLongPress func(Point, LongPressState)
}

// Attach wires ripple behavior onto a w x h region clipped by shape.
// It constructs a Widget with the given color and options, a Model
// whose slots drive it, and a Renderer clipped to shape. This is the
// modifier-style integration surface; the returned region's Model is
// meant to be fed by a gesture recognizer.
//
//	reg := ripple.Attach(200, 48,
//	    ripple.RoundedRect{W: 200, H: 48, CornerR: 8},
//	    ripple.RGBA{R: 1, G: 1, B: 1, A: 0.3},
//	    ripple.WithOnTap(activate),
//	)
func Attach(w, h float64, shape Shape, color RGBA, opts ...Option) *Region {
	o := defaultWidgetOptions()
	for _, opt := range opts {
		opt(&o)
	}

	widget := NewWidget(w, h, append([]Option{WithColor(color)}, opts...)...)
	model := &Model{
		TouchDown: widget.TouchDown,
		TouchMove: widget.TouchMove,
		TouchUp:   widget.TouchUp,
	}
	renderer := NewRenderer()
	renderer.SetClip(shape)

	return &Region{
		Widget:      widget,
		Model:       model,
		Renderer:    renderer,
		OnTap:       o.onTap,
		OnLongPress: o.onLongPress,
	}
}

// Render draws the region's current frame over pm.
func (r *Region) Render(pm *Pixmap) {
	r.Renderer.Render(r.Widget, pm)
}
