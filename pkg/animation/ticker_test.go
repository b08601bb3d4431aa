package animation_test

import (
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	motiontest "github.com/go-drift/motion/pkg/testing"
)

func TestTicker_StartStopIdempotent(t *testing.T) {
	s := motiontest.NewManualScheduler(motiontest.NewFakeClock())
	ticker := animation.NewTicker(s, func(time.Time) bool { return true })

	ticker.Start()
	ticker.Start()
	if s.Registrations() != 1 || !ticker.IsActive() {
		t.Errorf("expected 1 registration, got %d", s.Registrations())
	}

	ticker.Stop()
	ticker.Stop()
	if s.Unregistrations() != 1 || ticker.IsActive() {
		t.Errorf("expected 1 unregistration, got %d", s.Unregistrations())
	}
}

func TestTicker_CallbackReturnsFalse(t *testing.T) {
	s := motiontest.NewManualScheduler(motiontest.NewFakeClock())
	ticker := animation.NewTicker(s, func(time.Time) bool { return false })

	ticker.Start()
	s.Fire()
	if ticker.IsActive() {
		t.Error("expected ticker to deactivate when the callback returns false")
	}
	if s.Active() != 0 {
		t.Errorf("expected registration to be removed, got %d", s.Active())
	}

	ticker.Start()
	if s.Registrations() != 2 {
		t.Errorf("expected ticker to register again, got %d", s.Registrations())
	}
}

func TestTicker_RestartFromCallback(t *testing.T) {
	s := motiontest.NewManualScheduler(motiontest.NewFakeClock())

	var ticker *animation.Ticker
	calls := 0
	ticker = animation.NewTicker(s, func(time.Time) bool {
		calls++
		if calls == 1 {
			ticker.Stop()
			ticker.Start()
		}
		return true
	})

	ticker.Start()
	s.Fire()
	if s.Active() != 1 {
		t.Fatalf("expected exactly one live registration, got %d", s.Active())
	}
	if !ticker.IsActive() {
		t.Fatal("expected ticker to stay active after restart")
	}

	s.Fire()
	if calls != 2 {
		t.Errorf("expected the new registration to tick, got %d calls", calls)
	}
}
