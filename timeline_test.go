package ripple

import (
	"math"
	"testing"
	"time"
)

func TestTimelineStartAppliesInitialProgress(t *testing.T) {
	tl := NewTimeline()
	var got float64 = -1
	tl.Start(Transition{
		Duration: time.Second,
		Apply:    func(p float64) { got = p },
	})
	if got != 0 {
		t.Errorf("initial progress = %v, want 0", got)
	}
	if tl.Running() != 1 {
		t.Errorf("Running() = %d, want 1", tl.Running())
	}
}

func TestTimelineZeroDurationCompletesSynchronously(t *testing.T) {
	tl := NewTimeline()
	var progress float64
	var finished, called bool
	tl.Start(Transition{
		Duration:   0,
		Apply:      func(p float64) { progress = p },
		OnComplete: func(f bool) { called, finished = true, f },
	})
	if progress != 1 {
		t.Errorf("progress = %v, want 1", progress)
	}
	if !called || !finished {
		t.Errorf("OnComplete called=%v finished=%v, want true/true", called, finished)
	}
	if tl.Running() != 0 {
		t.Errorf("Running() = %d, want 0", tl.Running())
	}
}

func TestTimelineAdvanceProgress(t *testing.T) {
	tl := NewTimeline()
	var progress float64
	tl.Start(Transition{
		Duration: time.Second,
		Apply:    func(p float64) { progress = p },
	})

	tl.Advance(250 * time.Millisecond)
	if math.Abs(progress-0.25) > 1e-9 {
		t.Errorf("progress after 250ms = %v, want 0.25", progress)
	}
	tl.Advance(250 * time.Millisecond)
	if math.Abs(progress-0.5) > 1e-9 {
		t.Errorf("progress after 500ms = %v, want 0.5", progress)
	}
}

func TestTimelineEasingApplied(t *testing.T) {
	tl := NewTimeline()
	var progress float64
	tl.Start(Transition{
		Duration: time.Second,
		Easing:   EaseOutQuad,
		Apply:    func(p float64) { progress = p },
	})
	tl.Advance(500 * time.Millisecond)
	if want := EaseOutQuad(0.5); math.Abs(progress-want) > 1e-9 {
		t.Errorf("eased progress = %v, want %v", progress, want)
	}
}

func TestTimelineNaturalCompletion(t *testing.T) {
	tl := NewTimeline()
	var progress float64
	var finished bool
	tl.Start(Transition{
		Duration:   100 * time.Millisecond,
		Apply:      func(p float64) { progress = p },
		OnComplete: func(f bool) { finished = f },
	})

	// Overshoot clamps to 1 and completes with finished=true.
	tl.Advance(250 * time.Millisecond)
	if progress != 1 {
		t.Errorf("final progress = %v, want 1", progress)
	}
	if !finished {
		t.Error("OnComplete finished = false, want true")
	}
	if tl.Running() != 0 {
		t.Errorf("Running() = %d, want 0", tl.Running())
	}
}

func TestTimelineCancelKeepsLastProgress(t *testing.T) {
	tl := NewTimeline()
	var progress float64
	var called, finished bool
	tr := tl.Start(Transition{
		Duration:   time.Second,
		Apply:      func(p float64) { progress = p },
		OnComplete: func(f bool) { called, finished = true, f },
	})

	tl.Advance(400 * time.Millisecond)
	tl.Cancel(tr)

	if !called {
		t.Fatal("OnComplete not called on cancel")
	}
	if finished {
		t.Error("OnComplete finished = true on cancel, want false")
	}
	// Cancellation never reverts the applied state.
	if math.Abs(progress-0.4) > 1e-9 {
		t.Errorf("progress after cancel = %v, want 0.4", progress)
	}
	if tl.Running() != 0 {
		t.Errorf("Running() = %d, want 0", tl.Running())
	}
}

func TestTimelineCancelIdempotent(t *testing.T) {
	tl := NewTimeline()
	calls := 0
	tr := tl.Start(Transition{
		Duration:   time.Second,
		OnComplete: func(bool) { calls++ },
	})
	tl.Cancel(tr)
	tl.Cancel(tr)
	tl.Cancel(nil)
	if calls != 1 {
		t.Errorf("OnComplete called %d times, want 1", calls)
	}
}

func TestTimelineCancelCompletedIsNoop(t *testing.T) {
	tl := NewTimeline()
	calls := 0
	tr := tl.Start(Transition{
		Duration:   50 * time.Millisecond,
		OnComplete: func(bool) { calls++ },
	})
	tl.Advance(100 * time.Millisecond)
	tl.Cancel(tr)
	if calls != 1 {
		t.Errorf("OnComplete called %d times, want 1", calls)
	}
}

func TestTimelineCancelAll(t *testing.T) {
	tl := NewTimeline()
	var cancelled int
	for i := 0; i < 3; i++ {
		tl.Start(Transition{
			Duration: time.Second,
			OnComplete: func(f bool) {
				if !f {
					cancelled++
				}
			},
		})
	}
	tl.CancelAll()
	if cancelled != 3 {
		t.Errorf("cancelled = %d, want 3", cancelled)
	}
	if tl.Running() != 0 {
		t.Errorf("Running() = %d, want 0", tl.Running())
	}
}

func TestTimelineCompletionMayStartTransition(t *testing.T) {
	tl := NewTimeline()
	var second bool
	tl.Start(Transition{
		Duration: 50 * time.Millisecond,
		OnComplete: func(finished bool) {
			if !finished {
				return
			}
			tl.Start(Transition{
				Duration: 50 * time.Millisecond,
				Apply:    func(p float64) { second = true },
			})
		},
	})

	tl.Advance(60 * time.Millisecond)
	if !second {
		t.Fatal("transition started from completion did not run")
	}
	if tl.Running() != 1 {
		t.Errorf("Running() = %d, want 1", tl.Running())
	}
}

func TestTimelineNegativeDeltaClamped(t *testing.T) {
	tl := NewTimeline()
	var progress float64
	tl.Start(Transition{
		Duration: time.Second,
		Apply:    func(p float64) { progress = p },
	})
	tl.Advance(-time.Second)
	if progress != 0 {
		t.Errorf("progress after negative dt = %v, want 0", progress)
	}
}
