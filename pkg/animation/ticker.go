// Package animation provides the time-driven value interpolation engine used
// by every animated widget of the shell.
//
// # Core Components
//
//   - [Animator]: a play/pause/reverse/repeat state machine that moves a value
//     from Min to Max over Duration along a [Curve], notifying listeners on
//     every tick and once when a non-repeating cycle finishes.
//
//   - [Curve]: a cubic-bezier descriptor. [Curve.Ease] blends the two
//     ordinates directly; [Curve.Parametric] is the opt-in CSS solver.
//
//   - [Scheduler]: registers the periodic tick. [FrameScheduler] follows a
//     host surface's repaint cycle; [IntervalScheduler] ticks every
//     [DefaultInterval] on a [loop.Loop] when there is no surface.
//
//   - [Clock]: the monotonic time source, replaceable in tests.
//
// # Basic Usage
//
//	anim, err := animation.New(animation.Config{
//	    Curve:    animation.ScrollCurve,
//	    Duration: 300 * time.Millisecond,
//	    Min:      0,
//	    Max:      480,
//	}, animation.WithScheduler(surface))
//	if err != nil {
//	    return err
//	}
//	anim.AddListener(func(v float64) { s.setHeight(v) })
//	anim.Play()
//
//	// In the owner's teardown, before dropping the reference:
//	anim.Dispose()
//
// Everything runs on the thread that drives the scheduler; Animator has no
// internal locking.
package animation

import "time"

// Ticker owns at most one registration with a [Scheduler].
//
// Ticker is the low-level timing primitive used by [Animator]. Start and Stop
// are idempotent, so redundant calls never create a second registration or
// release one twice.
type Ticker struct {
	scheduler Scheduler
	callback  TickFunc
	handle    Handle
}

// NewTicker creates a stopped ticker that will invoke callback through s.
func NewTicker(s Scheduler, callback TickFunc) *Ticker {
	return &Ticker{
		scheduler: s,
		callback:  callback,
	}
}

// Start registers the ticker. It is a no-op while already registered.
func (t *Ticker) Start() {
	if t.handle != 0 {
		return
	}
	var h Handle
	h = t.scheduler.Register(func(now time.Time) bool {
		if t.handle != h {
			return false
		}
		keep := t.callback(now)
		if t.handle != h {
			// The callback stopped or restarted the ticker.
			return false
		}
		if !keep {
			t.handle = 0
		}
		return keep
	})
	t.handle = h
}

// Stop releases the registration. It is a no-op while stopped.
func (t *Ticker) Stop() {
	if t.handle == 0 {
		return
	}
	h := t.handle
	t.handle = 0
	t.scheduler.Unregister(h)
}

// IsActive returns whether the ticker holds a registration.
func (t *Ticker) IsActive() bool {
	return t.handle != 0
}
