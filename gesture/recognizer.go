// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gesture recognizes taps and long presses from a raw pointer
// event stream and forwards the touch lifecycle to a ripple view-model.
//
// The recognizer is event wiring, not independent logic: every pointer
// event is forwarded to the model's slots, and on top of that taps and
// long presses are detected and reported through optional callbacks.
// Like the rest of the module it is stepped cooperatively: feed events
// with Handle and frame deltas with Advance from one goroutine.
package gesture

import (
	"time"

	"github.com/gogpu/ripple"
)

// Default recognition parameters.
const (
	// DefaultTapSlop is how far the pointer may drift (in pixels) while
	// still counting as a tap or a pending long press.
	DefaultTapSlop = 10.0

	// DefaultTapTimeout is the longest press that still counts as a tap.
	DefaultTapTimeout = 300 * time.Millisecond

	// DefaultHoldThreshold is how long the pointer must stay down
	// before a long press starts.
	DefaultHoldThreshold = 500 * time.Millisecond
)

// Kind identifies a pointer event.
type Kind uint8

const (
	// PointerDown is a press.
	PointerDown Kind = iota

	// PointerMove is a drag while pressed.
	PointerMove

	// PointerUp is a release.
	PointerUp

	// PointerCancel aborts the gesture (e.g. the window lost focus).
	PointerCancel
)

// PointerEvent is one raw input event.
type PointerEvent struct {
	Kind Kind
	Pos  ripple.Point
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithTapSlop sets the drift tolerance in pixels.
func WithTapSlop(px float64) Option {
	return func(r *Recognizer) {
		r.tapSlop = px
	}
}

// WithTapTimeout sets the longest press duration recognized as a tap.
func WithTapTimeout(d time.Duration) Option {
	return func(r *Recognizer) {
		r.tapTimeout = d
	}
}

// WithHoldThreshold sets the press duration that starts a long press.
func WithHoldThreshold(d time.Duration) Option {
	return func(r *Recognizer) {
		r.holdThreshold = d
	}
}

// WithTap sets the tap callback.
func WithTap(fn func(ripple.Point)) Option {
	return func(r *Recognizer) {
		r.onTap = fn
	}
}

// WithLongPress sets the long-press callback. It receives the pointer
// position and the gesture state (started, moved, ended).
func WithLongPress(fn func(ripple.Point, ripple.LongPressState)) Option {
	return func(r *Recognizer) {
		r.onLongPress = fn
	}
}

// WithCancel sets what happens on PointerCancel. By default the
// recognizer ends the touch at its last position; a widget-backed
// model usually wants the widget's TouchCancel here instead, so the
// ripple hides immediately without a fade.
func WithCancel(fn func()) Option {
	return func(r *Recognizer) {
		r.onCancel = fn
	}
}

// Recognizer turns pointer events into view-model touch calls plus tap
// and long-press callbacks.
//
// Recognizer is NOT safe for concurrent use.
type Recognizer struct {
	model *ripple.Model

	onTap       func(ripple.Point)
	onLongPress func(ripple.Point, ripple.LongPressState)
	onCancel    func()

	tapSlop       float64
	tapTimeout    time.Duration
	holdThreshold time.Duration

	pressed      bool
	longPressing bool
	downPos      ripple.Point
	lastPos      ripple.Point
	held         time.Duration
	drift        float64
}

// New creates a recognizer feeding the given model.
func New(model *ripple.Model, opts ...Option) *Recognizer {
	r := &Recognizer{
		model:         model,
		tapSlop:       DefaultTapSlop,
		tapTimeout:    DefaultTapTimeout,
		holdThreshold: DefaultHoldThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ForRegion creates a recognizer wired to an attached region: the
// region's model receives the touch lifecycle, its OnTap/OnLongPress
// callbacks receive gestures, and PointerCancel maps to the widget's
// immediate TouchCancel.
func ForRegion(reg *ripple.Region, opts ...Option) *Recognizer {
	base := []Option{
		WithTap(reg.OnTap),
		WithLongPress(reg.OnLongPress),
		WithCancel(reg.Widget.TouchCancel),
	}
	return New(reg.Model, append(base, opts...)...)
}

// Handle consumes one pointer event.
func (r *Recognizer) Handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		r.pressed = true
		r.longPressing = false
		r.held = 0
		r.drift = 0
		r.downPos = ev.Pos
		r.lastPos = ev.Pos
		r.model.BeginTouch(ev.Pos)

	case PointerMove:
		if !r.pressed {
			return
		}
		r.lastPos = ev.Pos
		if d := ev.Pos.Distance(r.downPos); d > r.drift {
			r.drift = d
		}
		r.model.MoveTouch(ev.Pos)
		if r.longPressing && r.onLongPress != nil {
			r.onLongPress(ev.Pos, ripple.LongPressMoved)
		}

	case PointerUp:
		if !r.pressed {
			return
		}
		r.pressed = false
		r.lastPos = ev.Pos
		if r.longPressing {
			r.longPressing = false
			if r.onLongPress != nil {
				r.onLongPress(ev.Pos, ripple.LongPressEnded)
			}
		} else if r.held <= r.tapTimeout && r.drift <= r.tapSlop {
			// Tap goes through the model first so a tap-only source
			// synthesizes down+up, then to the caller. With raw touch
			// handling active the model suppresses the synthetic pair.
			r.model.Tap(ev.Pos)
			if r.onTap != nil {
				r.onTap(ev.Pos)
			}
		}
		r.model.EndTouch(ev.Pos)

	case PointerCancel:
		if !r.pressed {
			return
		}
		r.pressed = false
		if r.longPressing {
			r.longPressing = false
			if r.onLongPress != nil {
				r.onLongPress(r.lastPos, ripple.LongPressEnded)
			}
		}
		if r.onCancel != nil {
			r.onCancel()
		} else {
			r.model.EndTouch(r.lastPos)
		}
	}
}

// Advance steps the recognizer's hold timer by dt. Long presses start
// here, once the pointer has been down past the hold threshold without
// drifting outside the tap slop.
func (r *Recognizer) Advance(dt time.Duration) {
	if !r.pressed || r.longPressing {
		return
	}
	r.held += dt
	if r.held >= r.holdThreshold && r.drift <= r.tapSlop {
		r.longPressing = true
		if r.onLongPress != nil {
			r.onLongPress(r.lastPos, ripple.LongPressStarted)
		}
	}
}

// Pressed reports whether a pointer is currently down.
func (r *Recognizer) Pressed() bool { return r.pressed }

// LongPressing reports whether a long press is active.
func (r *Recognizer) LongPressing() bool { return r.longPressing }
