package testing

import "github.com/go-drift/motion/pkg/animation"

// ManualScheduler is an instrumented [animation.Scheduler] that only ticks
// when Fire is called. It is backed by an [animation.FrameScheduler], so
// ordering and removal semantics match a real host surface.
type ManualScheduler struct {
	frames          *animation.FrameScheduler
	registrations   int
	unregistrations int
}

// NewManualScheduler creates a scheduler whose ticks carry clk's time.
func NewManualScheduler(clk animation.Clock) *ManualScheduler {
	return &ManualScheduler{frames: animation.NewFrameScheduler(clk)}
}

// Register records the registration and adds fn.
func (s *ManualScheduler) Register(fn animation.TickFunc) animation.Handle {
	s.registrations++
	return s.frames.Register(fn)
}

// Unregister records the call and removes h.
func (s *ManualScheduler) Unregister(h animation.Handle) {
	s.unregistrations++
	s.frames.Unregister(h)
}

// Fire runs one tick for every active registration and returns how many
// callbacks ran.
func (s *ManualScheduler) Fire() int {
	return s.frames.Step()
}

// Active returns the number of live registrations.
func (s *ManualScheduler) Active() int {
	return s.frames.Len()
}

// Registrations returns the total number of Register calls.
func (s *ManualScheduler) Registrations() int {
	return s.registrations
}

// Unregistrations returns the total number of Unregister calls.
func (s *ManualScheduler) Unregistrations() int {
	return s.unregistrations
}
