package animation

import (
	"testing"
	"time"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func TestMonotonic_HoldsOnBackwardStep(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &stubClock{now: base}
	m := Monotonic(src)

	if !m.Now().Equal(base) {
		t.Fatal("expected first reading to pass through")
	}
	src.now = base.Add(-time.Second)
	if !m.Now().Equal(base) {
		t.Error("expected reading to hold after the source stepped back")
	}
	src.now = base.Add(time.Second)
	if !m.Now().Equal(base.Add(time.Second)) {
		t.Error("expected reading to follow the source once it catches up")
	}
}

func TestMonotonic_NoDoubleWrap(t *testing.T) {
	m := Monotonic(realClock{})
	if Monotonic(m) != m {
		t.Error("expected wrapping a monotonic clock to return it unchanged")
	}
}

func TestSetClock_RestoresDefault(t *testing.T) {
	fixed := &stubClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := SetClock(fixed)
	t.Cleanup(func() { SetClock(prev) })

	if !Now().Equal(fixed.now) {
		t.Error("expected Now to use the installed clock")
	}
	if !(packageClock{}).Now().Equal(fixed.now) {
		t.Error("expected packageClock to follow the installed clock")
	}

	if got := SetClock(nil); got != fixed {
		t.Error("expected SetClock to return the previous clock")
	}
	if _, ok := clock.(realClock); !ok {
		t.Errorf("expected nil to restore the real clock, got %T", clock)
	}
}
