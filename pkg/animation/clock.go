package animation

import "time"

// Clock provides time for animations. The default implementation uses
// system time, whose readings carry Go's monotonic clock so elapsed
// durations are immune to wall-clock changes. Tests can inject a fake clock
// via SetClock or WithClock to control animation timing deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = realClock{}

// SetClock replaces the animation clock. Returns the previous clock
// so callers can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	if c == nil {
		c = realClock{}
	}
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }

// packageClock defers to whatever clock SetClock installed at call time.
type packageClock struct{}

func (packageClock) Now() time.Time { return Now() }

// monotonicClock never reports a time earlier than one it already reported.
type monotonicClock struct {
	src  Clock
	last time.Time
}

// Monotonic wraps c so that successive readings never decrease. A source
// that steps backwards (a fake clock reset by a test, a wall clock without a
// monotonic reading) is held at its last reported time until it catches up.
func Monotonic(c Clock) Clock {
	if m, ok := c.(*monotonicClock); ok {
		return m
	}
	return &monotonicClock{src: c}
}

func (m *monotonicClock) Now() time.Time {
	now := m.src.Now()
	if !m.last.IsZero() && now.Before(m.last) {
		return m.last
	}
	m.last = now
	return now
}

// seconds returns the span between from and to in fractional seconds.
func seconds(from, to time.Time) float64 {
	return to.Sub(from).Seconds()
}
