// Package ripple provides a touch-feedback ripple widget for Go.
//
// # Overview
//
// ripple implements the familiar touch affordance from mobile UI
// toolkits: a colored circular mask expands from the touch point until
// it covers the view's bounds, then fades out when the touch is
// released. The package is part of the GoGPU ecosystem and renders
// either on the CPU (signed distance field coverage) or on the GPU via
// gogpu/wgpu.
//
// # Quick Start
//
//	import "github.com/gogpu/ripple"
//
//	// Create a widget covering a 200x120 region
//	w := ripple.NewWidget(200, 120,
//	    ripple.WithColor(ripple.RGBA{R: 0.2, G: 0.5, B: 1, A: 0.35}),
//	    ripple.WithFillPercent(0.65),
//	)
//
//	// Drive it from pointer events
//	w.TouchDown(ripple.Pt(60, 40))
//	w.Advance(16 * time.Millisecond) // once per frame
//	w.TouchUp(ripple.Pt(60, 40))
//
//	// Draw the current frame
//	pm := ripple.NewPixmap(200, 120)
//	ripple.NewRenderer().Render(w, pm)
//
// # Integration Surfaces
//
// The same state machine is exposed two ways:
//   - Widget: direct TouchDown/TouchMove/TouchUp/TouchCancel calls.
//   - Model + Attach: a view-model with optional callback slots, fed
//     by gesture.Recognizer, for attaching the behavior to an
//     arbitrary clipped region (see Attach).
//
// # Architecture
//
// The package is organized into:
//   - Public API: Widget, Model, Timeline, Renderer, Pixmap, Shape
//   - gesture: pointer-event recognition (tap, long press)
//   - gpu: blank-import GPU acceleration via gogpu/wgpu
//   - integration/ripplecanvas: gogpu window integration
//
// # Animation Model
//
// There is no hidden animation thread. Transitions are stepped
// cooperatively: call Widget.Advance (or Timeline.Advance) with the
// frame delta on the goroutine that owns the widget. Completion
// callbacks fire synchronously from Advance on that same goroutine,
// and starting a new touch cancels any transition still in flight.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package ripple

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
