package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// DefaultFrameDuration is the fake frame length used by the pump helpers.
const DefaultFrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// Tester bundles a fake clock and a manual scheduler. While a Tester is
// live it also replaces the package-level animation clock.
type Tester struct {
	clock     *FakeClock
	prevClock animation.Clock
	scheduler *ManualScheduler
	frame     time.Duration
}

// NewTester creates a tester and installs its clock as the animation clock.
// Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() *Tester {
	clk := NewFakeClock()
	t := &Tester{
		clock:     clk,
		scheduler: NewManualScheduler(clk),
		frame:     DefaultFrameDuration,
	}
	t.prevClock = animation.SetClock(clk)
	return t
}

// NewTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t testing.TB) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the previous animation clock.
func (t *Tester) Cleanup() {
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock for advancing time in tests.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Scheduler returns the manual scheduler.
func (t *Tester) Scheduler() *ManualScheduler {
	return t.scheduler
}

// SetFrameDuration changes the clock step used by PumpFor and PumpAndSettle.
func (t *Tester) SetFrameDuration(d time.Duration) {
	if d > 0 {
		t.frame = d
	}
}

// Options returns animator options wired to this tester.
func (t *Tester) Options() []animation.Option {
	return []animation.Option{
		animation.WithScheduler(t.scheduler),
		animation.WithClock(t.clock),
	}
}

// NewAnimator constructs an animator driven by this tester.
func (t *Tester) NewAnimator(cfg animation.Config) (*animation.Animator, error) {
	return animation.New(cfg, t.Options()...)
}

// Pump runs a single tick at the current fake time.
func (t *Tester) Pump() int {
	return t.scheduler.Fire()
}

// Advance moves the clock by d and runs one tick.
func (t *Tester) Advance(d time.Duration) int {
	t.clock.Advance(d)
	return t.scheduler.Fire()
}

// PumpFor advances the clock by d in frame-sized steps, ticking after each.
func (t *Tester) PumpFor(d time.Duration) {
	for d > 0 {
		step := min(t.frame, d)
		t.Advance(step)
		d -= step
	}
}

// PumpAndSettle ticks frame by frame until no registration is active or the
// timeout is reached. Returns ErrSettleTimeout if animations keep running.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed <= timeout {
		t.Pump()
		if t.scheduler.Active() == 0 {
			return nil
		}
		t.clock.Advance(t.frame)
		elapsed += t.frame
	}
	return ErrSettleTimeout
}
