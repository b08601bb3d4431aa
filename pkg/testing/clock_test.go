package testing

import (
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	elapsed := clk.Now().Sub(start)

	if elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_AdvanceSeconds(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.AdvanceSeconds(0.15)
	if got := clk.Now().Sub(start); got != 150*time.Millisecond {
		t.Errorf("expected 150ms elapsed, got %v", got)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestTester_InstallsPackageClock(t *testing.T) {
	tester := NewTester()
	if !animation.Now().Equal(tester.Clock().Now()) {
		t.Fatal("expected animation clock to follow the fake clock")
	}

	tester.Clock().Advance(time.Second)
	if !animation.Now().Equal(tester.Clock().Now()) {
		t.Error("clock advancement not reflected in animation.Now")
	}

	tester.Cleanup()
	if animation.Now().Equal(tester.Clock().Now()) {
		t.Error("expected Cleanup to restore the previous clock")
	}
}
