package ripple

import "time"

// Default animation parameters. The fill/fade durations mirror the
// 0.5 / 0.3 second timings of the classic mobile ripple.
const (
	DefaultFillPercent  = 0.65
	DefaultFillDuration = 500 * time.Millisecond
	DefaultFadeDuration = 300 * time.Millisecond
)

// Option configures a Widget during creation.
// Use functional options to customize Widget behavior.
//
// Example:
//
//	// Default gray ripple
//	w := ripple.NewWidget(200, 120)
//
//	// Custom color and resting size
//	w := ripple.NewWidget(200, 120,
//	    ripple.WithColor(ripple.RGBA{R: 0.2, G: 0.5, B: 1, A: 0.35}),
//	    ripple.WithFillPercent(0.8),
//	)
type Option func(*widgetOptions)

// widgetOptions holds optional configuration for Widget creation.
type widgetOptions struct {
	color        RGBA
	fillPercent  float64
	fillDuration time.Duration
	fadeDuration time.Duration
	fillEasing   Easing
	fadeEasing   Easing
	hideOnSettle bool
	timeline     *Timeline
	onTap        func(Point)
	onLongPress  func(Point, LongPressState)
}

// defaultWidgetOptions returns the default widget options.
func defaultWidgetOptions() widgetOptions {
	return widgetOptions{
		color:        DefaultColor,
		fillPercent:  DefaultFillPercent,
		fillDuration: DefaultFillDuration,
		fadeDuration: DefaultFadeDuration,
		fillEasing:   EaseOutCubic,
		fadeEasing:   EaseOutQuad,
	}
}

// WithColor sets the ripple tint. Alpha below 1 is the usual choice so
// the content underneath shows through.
func WithColor(c RGBA) Option {
	return func(o *widgetOptions) {
		o.color = c
	}
}

// WithFillPercent sets the resting expanded size as a fraction of the
// maximum possible scale, clamped to [0, 1].
func WithFillPercent(p float64) Option {
	return func(o *widgetOptions) {
		o.fillPercent = clamp01(p)
	}
}

// WithFillDuration sets how long the expanding fill animation runs.
func WithFillDuration(d time.Duration) Option {
	return func(o *widgetOptions) {
		o.fillDuration = d
	}
}

// WithFadeDuration sets how long the release fade-out runs.
func WithFadeDuration(d time.Duration) Option {
	return func(o *widgetOptions) {
		o.fadeDuration = d
	}
}

// WithEasing sets the easing curve of the expanding fill animation.
func WithEasing(e Easing) Option {
	return func(o *widgetOptions) {
		if e != nil {
			o.fillEasing = e
		}
	}
}

// WithFadeEasing sets the easing curve of the release fade-out.
func WithFadeEasing(e Easing) Option {
	return func(o *widgetOptions) {
		if e != nil {
			o.fadeEasing = e
		}
	}
}

// WithHideOnSettle makes the widget hide as soon as the fill animation
// completes, provided the touch has already lifted. Toolkit designs
// disagree on whether settling should hide, so this is off by default:
// a settled ripple normally stays visible until its release fade runs.
func WithHideOnSettle(hide bool) Option {
	return func(o *widgetOptions) {
		o.hideOnSettle = hide
	}
}

// WithOnTap sets the tap callback of a Region built with Attach.
// It has no effect on a bare Widget.
func WithOnTap(fn func(Point)) Option {
	return func(o *widgetOptions) {
		o.onTap = fn
	}
}

// WithOnLongPress sets the long-press callback of a Region built with
// Attach. The callback receives the pointer position and the gesture
// state (started, moved, ended). It has no effect on a bare Widget.
func WithOnLongPress(fn func(Point, LongPressState)) Option {
	return func(o *widgetOptions) {
		o.onLongPress = fn
	}
}

// WithTimeline makes the widget schedule its transitions on a shared
// timeline instead of creating its own. Use this to step several
// widgets from one frame loop with a single Advance call.
func WithTimeline(tl *Timeline) Option {
	return func(o *widgetOptions) {
		o.timeline = tl
	}
}
