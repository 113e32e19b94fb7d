package ripple

import "time"

// Transition is a single scheduled animation: over Duration, the eased
// progress moves from 0 to 1 and is handed to Apply each step. When the
// transition runs to the end, OnComplete fires with finished=true; when
// it is cancelled, OnComplete fires with finished=false and whatever
// Apply last wrote stays in place (results persist, they are never
// auto-reverted).
type Transition struct {
	Duration   time.Duration
	Easing     Easing
	Apply      func(progress float64)
	OnComplete func(finished bool)

	elapsed time.Duration
	done    bool
}

func (t *Transition) ease(frac float64) float64 {
	if t.Easing == nil {
		return frac
	}
	return t.Easing(frac)
}

// Timeline schedules and steps transitions on the goroutine that owns
// it. It substitutes a platform animation layer: there is no internal
// clock or thread; callers feed frame deltas into Advance and
// completions fire synchronously from there.
//
// Timeline is NOT safe for concurrent use. Drive it from a single
// goroutine, typically the one running the frame loop.
type Timeline struct {
	transitions []*Transition
}

// NewTimeline creates an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

// Start schedules t and applies its initial progress immediately.
// A non-positive duration completes synchronously before Start returns.
// The returned handle can be passed to Cancel.
func (tl *Timeline) Start(t Transition) *Transition {
	tr := &t
	if tr.Duration <= 0 {
		if tr.Apply != nil {
			tr.Apply(tr.ease(1))
		}
		tr.done = true
		if tr.OnComplete != nil {
			tr.OnComplete(true)
		}
		return tr
	}
	if tr.Apply != nil {
		tr.Apply(tr.ease(0))
	}
	tl.transitions = append(tl.transitions, tr)
	return tr
}

// Advance steps every running transition by dt. Transitions that reach
// their duration are removed before their completion fires, so a
// completion handler may start new transitions on the same timeline.
func (tl *Timeline) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	// Snapshot: completions and cancellations may mutate the slice.
	active := make([]*Transition, len(tl.transitions))
	copy(active, tl.transitions)
	for _, tr := range active {
		if tr.done {
			continue
		}
		tr.elapsed += dt
		frac := 1.0
		if tr.elapsed < tr.Duration {
			frac = float64(tr.elapsed) / float64(tr.Duration)
		}
		if tr.Apply != nil {
			tr.Apply(tr.ease(frac))
		}
		if frac >= 1 {
			tr.done = true
			tl.remove(tr)
			if tr.OnComplete != nil {
				tr.OnComplete(true)
			}
		}
	}
}

// Cancel stops a running transition without reverting its last applied
// progress. OnComplete fires with finished=false. Cancelling a
// transition that already completed or was cancelled is a no-op.
func (tl *Timeline) Cancel(t *Transition) {
	if t == nil || t.done {
		return
	}
	t.done = true
	tl.remove(t)
	if t.OnComplete != nil {
		t.OnComplete(false)
	}
}

// CancelAll cancels every running transition, mirroring the platform
// "remove all animations" call a new touch issues before restarting.
func (tl *Timeline) CancelAll() {
	active := make([]*Transition, len(tl.transitions))
	copy(active, tl.transitions)
	for _, tr := range active {
		tl.Cancel(tr)
	}
}

// Running returns the number of transitions currently in flight.
func (tl *Timeline) Running() int {
	return len(tl.transitions)
}

func (tl *Timeline) remove(t *Transition) {
	for i, tr := range tl.transitions {
		if tr == t {
			tl.transitions = append(tl.transitions[:i], tl.transitions[i+1:]...)
			return
		}
	}
}
