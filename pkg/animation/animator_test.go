package animation_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
	motiontest "github.com/go-drift/motion/pkg/testing"
)

const epsilon = 1e-6

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func newAnimator(t *testing.T, tester *motiontest.Tester, cfg animation.Config) *animation.Animator {
	t.Helper()
	anim, err := tester.NewAnimator(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(anim.Dispose)
	return anim
}

func scrollConfig() animation.Config {
	return animation.Config{
		Curve:    animation.ScrollCurve,
		Duration: 300 * time.Millisecond,
		Min:      0,
		Max:      100,
	}
}

func TestNew_InvalidDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
	}{
		{"zero", 0},
		{"negative", -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scrollConfig()
			cfg.Duration = tt.duration
			anim, err := animation.New(cfg)
			if anim != nil {
				t.Error("expected nil animator")
			}
			if !errors.Is(err, animation.ErrInvalidDuration) {
				t.Fatalf("expected ErrInvalidDuration, got %v", err)
			}
			var me *motionerrors.MotionError
			if !errors.As(err, &me) {
				t.Fatalf("expected MotionError, got %T", err)
			}
			if me.Kind != motionerrors.KindConfig {
				t.Errorf("expected KindConfig, got %v", me.Kind)
			}
		})
	}
}

func TestNew_NonFinite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*animation.Config)
	}{
		{"nan min", func(c *animation.Config) { c.Min = math.NaN() }},
		{"inf max", func(c *animation.Config) { c.Max = math.Inf(1) }},
		{"nan curve", func(c *animation.Config) { c.Curve[1] = math.NaN() }},
		{"negative inf curve", func(c *animation.Config) { c.Curve[3] = math.Inf(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scrollConfig()
			tt.mutate(&cfg)
			anim, err := animation.New(cfg)
			if anim != nil {
				t.Error("expected nil animator")
			}
			if !errors.Is(err, animation.ErrNonFinite) {
				t.Fatalf("expected ErrNonFinite, got %v", err)
			}
			var me *motionerrors.MotionError
			if !errors.As(err, &me) || me.Kind != motionerrors.KindConfig {
				t.Errorf("expected KindConfig MotionError, got %v", err)
			}
		})
	}
}

func TestNew_InitialState(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)

	cfg := scrollConfig()
	cfg.Min = 20
	anim := newAnimator(t, tester, cfg)
	if anim.Value() != 20 {
		t.Errorf("expected value to start at Min, got %v", anim.Value())
	}
	if anim.Position() != 0 {
		t.Errorf("expected position 0, got %v", anim.Position())
	}
	if anim.Playing() || anim.State() != animation.StateIdle {
		t.Errorf("expected idle, got %v", anim.State())
	}

	cfg.Reverse = true
	rev := newAnimator(t, tester, cfg)
	if rev.Position() != 1 {
		t.Errorf("expected reverse animator to start at position 1, got %v", rev.Position())
	}
	if tester.Scheduler().Registrations() != 0 {
		t.Error("expected no registration before Play")
	}
}

func TestAnimator_ValueAtHalfway(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Play()
	tester.Advance(150 * time.Millisecond)

	if !approx(anim.Value(), 87.5) {
		t.Errorf("expected 87.5 at 0.15s, got %v", anim.Value())
	}
	if !approx(anim.Position(), 0.5) {
		t.Errorf("expected position 0.5, got %v", anim.Position())
	}
}

func TestAnimator_Completes(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	finished := 0
	anim.AddFinishedListener(func() {
		finished++
		if anim.Playing() {
			t.Error("expected Playing false inside finished listener")
		}
		if anim.Value() != 100 {
			t.Errorf("expected value 100 inside finished listener, got %v", anim.Value())
		}
	})

	anim.Play()
	tester.PumpFor(300 * time.Millisecond)

	if anim.Value() != 100 {
		t.Errorf("expected value 100, got %v", anim.Value())
	}
	if finished != 1 {
		t.Errorf("expected 1 finished notification, got %d", finished)
	}
	if anim.Playing() {
		t.Error("expected animator to stop playing")
	}
	if anim.State() != animation.StateCompleted {
		t.Errorf("expected completed, got %v", anim.State())
	}
	if tester.Scheduler().Active() != 0 {
		t.Error("expected tick registration to be released")
	}

	tester.PumpFor(time.Second)
	if finished != 1 {
		t.Errorf("expected no further notifications, got %d", finished)
	}
}

func TestAnimator_ReverseEndsAtMin(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	cfg := scrollConfig()
	cfg.Min, cfg.Max = 10, 90
	cfg.Reverse = true
	anim := newAnimator(t, tester, cfg)

	var values []float64
	anim.AddListener(func(v float64) { values = append(values, v) })

	anim.Play()
	tester.Pump()
	if values[0] != 90 {
		t.Errorf("expected first reverse tick at Max, got %v", values[0])
	}

	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	if anim.Value() != 10 {
		t.Errorf("expected value to end at Min, got %v", anim.Value())
	}
	if anim.Position() != 0 {
		t.Errorf("expected position 0, got %v", anim.Position())
	}
}

func TestAnimator_DecreasingRange(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	cfg := scrollConfig()
	cfg.Min, cfg.Max = 100, 0
	anim := newAnimator(t, tester, cfg)

	anim.Play()
	tester.Advance(150 * time.Millisecond)
	if !approx(anim.Value(), 12.5) {
		t.Errorf("expected 12.5, got %v", anim.Value())
	}
	tester.Advance(150 * time.Millisecond)
	if anim.Value() != 0 {
		t.Errorf("expected 0, got %v", anim.Value())
	}
}

func TestAnimator_RepeatBounces(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, animation.Config{
		Curve:    animation.LinearCurve,
		Duration: 100 * time.Millisecond,
		Max:      1,
		Repeat:   true,
	})

	finished := 0
	anim.AddFinishedListener(func() { finished++ })

	anim.Play()
	tester.Pump()

	steps := []struct {
		advance  time.Duration
		reverse  bool
		position float64
	}{
		{50 * time.Millisecond, false, 0.5},
		{50 * time.Millisecond, true, 1},
		{50 * time.Millisecond, true, 0.5},
		{50 * time.Millisecond, false, 0},
		{25 * time.Millisecond, false, 0.25},
		{75 * time.Millisecond, true, 1},
	}
	for i, step := range steps {
		tester.Advance(step.advance)
		if anim.Reverse() != step.reverse {
			t.Errorf("step %d: expected reverse=%v", i, step.reverse)
		}
		if !approx(anim.Position(), step.position) {
			t.Errorf("step %d: expected position %v, got %v", i, step.position, anim.Position())
		}
	}

	if finished != 0 {
		t.Errorf("expected repeating animator never to finish, got %d", finished)
	}
	if !anim.Playing() {
		t.Error("expected repeating animator to keep playing")
	}
	if tester.Scheduler().Registrations() != 1 {
		t.Errorf("expected a single registration across cycles, got %d", tester.Scheduler().Registrations())
	}
}

func TestAnimator_RepeatNotifiesAfterFlip(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, animation.Config{
		Curve:    animation.LinearCurve,
		Duration: 100 * time.Millisecond,
		Max:      1,
		Repeat:   true,
	})

	var seen []bool
	anim.AddListener(func(float64) { seen = append(seen, anim.Reverse()) })

	anim.Play()
	tester.Advance(100 * time.Millisecond)

	if len(seen) != 1 || !seen[0] {
		t.Errorf("expected listener to observe the flipped direction, got %v", seen)
	}
	if anim.Value() != 1 {
		t.Errorf("expected boundary value 1, got %v", anim.Value())
	}
}

func TestAnimator_PauseResumeContinuity(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Play()
	tester.Advance(100 * time.Millisecond)
	paused := anim.Position()
	value := anim.Value()

	anim.Pause()
	if anim.Playing() || anim.State() != animation.StateIdle {
		t.Fatalf("expected idle after Pause, got %v", anim.State())
	}
	tester.Advance(5 * time.Second)
	if anim.Value() != value {
		t.Error("expected value to freeze while paused")
	}

	anim.Play()
	tester.Pump()
	if !approx(anim.Position(), paused) {
		t.Errorf("expected resume at %v, got %v", paused, anim.Position())
	}

	tester.Advance(200 * time.Millisecond)
	if anim.State() != animation.StateCompleted {
		t.Errorf("expected completion 200ms after resume, got %v at %v", anim.State(), anim.Position())
	}
}

func TestAnimator_DoublePlay(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Play()
	tester.Advance(100 * time.Millisecond)
	anim.Play()
	tester.Pump()

	if got := tester.Scheduler().Registrations(); got != 1 {
		t.Errorf("expected 1 registration, got %d", got)
	}
	if !approx(anim.Position(), 1.0/3) {
		t.Errorf("expected start time to be unchanged, position %v", anim.Position())
	}
}

func TestAnimator_Overshoot(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, animation.Config{
		Curve:    animation.OvershootCurve,
		Duration: 800 * time.Millisecond,
		Min:      0,
		Max:      100,
	})

	peak := math.Inf(-1)
	anim.AddListener(func(v float64) { peak = max(peak, v) })

	anim.Play()
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}

	if peak <= 100 {
		t.Errorf("expected overshoot above Max, peak %v", peak)
	}
	if anim.Value() != 100 {
		t.Errorf("expected final value exactly 100, got %v", anim.Value())
	}
}

func TestAnimator_StopResetsPosition(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Play()
	tester.Advance(150 * time.Millisecond)
	value := anim.Value()

	anim.Stop()
	if anim.Position() != 0 {
		t.Errorf("expected position 0 after Stop, got %v", anim.Position())
	}
	if anim.Value() != value {
		t.Errorf("expected Stop to keep the value, got %v", anim.Value())
	}
	if tester.Scheduler().Active() != 0 {
		t.Error("expected Stop to release the registration")
	}

	anim.Play()
	tester.Pump()
	if anim.Value() != 0 {
		t.Errorf("expected Play after Stop to restart, got %v", anim.Value())
	}
}

func TestAnimator_StopWhileIdle(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Stop()
	anim.Stop()
	anim.Pause()
	if tester.Scheduler().Unregistrations() != 0 {
		t.Error("expected no scheduler calls while idle")
	}
}

func TestAnimator_PlayAfterCompletionRestarts(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	finished := 0
	anim.AddFinishedListener(func() { finished++ })

	anim.Play()
	tester.PumpFor(300 * time.Millisecond)
	anim.Play()
	tester.Pump()
	if anim.Value() != 0 {
		t.Errorf("expected restart from Min, got %v", anim.Value())
	}
	tester.PumpFor(300 * time.Millisecond)
	if finished != 2 {
		t.Errorf("expected 2 finished notifications, got %d", finished)
	}
}

func TestAnimator_Retarget(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Play()
	tester.Advance(150 * time.Millisecond)
	current := anim.Value()

	// The slider pattern: freeze, move the range, play again.
	anim.Pause()
	anim.SetMin(current)
	anim.SetMax(40)
	anim.Play()
	tester.Pump()

	if anim.Value() != current {
		t.Errorf("expected retargeted animator to start at %v, got %v", current, anim.Value())
	}
	if anim.Position() != 0 {
		t.Errorf("expected position 0 after retarget, got %v", anim.Position())
	}

	tester.PumpFor(300 * time.Millisecond)
	if anim.Value() != 40 {
		t.Errorf("expected new Max 40, got %v", anim.Value())
	}
}

func TestAnimator_SetCurveMarksRetarget(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Play()
	tester.Advance(150 * time.Millisecond)
	anim.Pause()

	anim.SetCurve(animation.ScrollCurve)
	anim.Play()
	tester.Pump()
	if anim.Position() < 0.4 {
		t.Errorf("expected unchanged curve to resume, got position %v", anim.Position())
	}

	anim.Pause()
	anim.SetCurve(animation.LinearCurve)
	anim.Play()
	tester.Pump()
	if anim.Position() != 0 {
		t.Errorf("expected changed curve to restart, got position %v", anim.Position())
	}
}

func TestAnimator_SetDuration(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	if err := anim.SetDuration(0); !errors.Is(err, animation.ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
	if anim.Duration() != 300*time.Millisecond {
		t.Errorf("expected duration unchanged, got %v", anim.Duration())
	}

	anim.Play()
	tester.Advance(150 * time.Millisecond)
	if err := anim.SetDuration(time.Second); err != nil {
		t.Fatal(err)
	}
	tester.Pump()
	if !approx(anim.Position(), 0.5) {
		t.Errorf("expected position to carry over, got %v", anim.Position())
	}
	tester.Advance(500 * time.Millisecond)
	if anim.State() != animation.StateCompleted {
		t.Errorf("expected completion at the new pace, got %v", anim.State())
	}
}

func TestAnimator_SetReverseWhilePlaying(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.Play()
	tester.Advance(60 * time.Millisecond)
	anim.SetReverse(true)
	tester.Pump()
	if !approx(anim.Position(), 0.2) {
		t.Errorf("expected to turn around at 0.2, got %v", anim.Position())
	}

	tester.Advance(60 * time.Millisecond)
	if anim.State() != animation.StateCompleted || anim.Value() != 0 {
		t.Errorf("expected to finish at Min, got %v at %v", anim.State(), anim.Value())
	}
}

func TestAnimator_ListenerOrderAndUnsubscribe(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	var calls []string
	anim.AddListener(func(float64) { calls = append(calls, "a") })
	removeB := anim.AddListener(func(float64) { calls = append(calls, "b") })
	anim.AddListener(func(float64) { calls = append(calls, "c") })

	anim.Play()
	tester.Advance(16 * time.Millisecond)
	removeB()
	removeB()
	tester.Advance(16 * time.Millisecond)

	want := []string{"a", "b", "c", "a", "c"}
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, calls)
		}
	}
}

func TestAnimator_ValueBeforeFinished(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	var events []string
	anim.AddListener(func(float64) { events = append(events, "value") })
	anim.AddFinishedListener(func() { events = append(events, "finished") })

	anim.Play()
	tester.Advance(300 * time.Millisecond)

	if len(events) != 2 || events[0] != "value" || events[1] != "finished" {
		t.Errorf("expected value then finished, got %v", events)
	}
}

func TestAnimator_PauseFromListener(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	anim.AddListener(func(v float64) {
		if v > 50 {
			anim.Pause()
		}
	})

	anim.Play()
	tester.PumpFor(300 * time.Millisecond)

	if anim.Playing() {
		t.Error("expected listener to pause the animator")
	}
	if tester.Scheduler().Active() != 0 {
		t.Error("expected registration to be released")
	}
	if anim.State() != animation.StateIdle {
		t.Errorf("expected idle, got %v", anim.State())
	}
}

func TestAnimator_FinishedListenerCanReplay(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	cycles := 0
	anim.AddFinishedListener(func() {
		cycles++
		if cycles < 3 {
			anim.Play()
		}
	})

	anim.Play()
	if err := tester.PumpAndSettle(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if cycles != 3 {
		t.Errorf("expected 3 cycles, got %d", cycles)
	}
	if tester.Scheduler().Active() != 0 {
		t.Error("expected no leftover registration")
	}
}

func TestAnimator_Dispose(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	anim := newAnimator(t, tester, scrollConfig())

	calls := 0
	anim.AddListener(func(float64) { calls++ })

	anim.Play()
	tester.Advance(16 * time.Millisecond)
	anim.Dispose()
	tester.PumpFor(time.Second)

	if calls != 1 {
		t.Errorf("expected no ticks after Dispose, got %d calls", calls)
	}
	anim.Play()
	if anim.Playing() || tester.Scheduler().Active() != 0 {
		t.Error("expected disposed animator to ignore Play")
	}
}

func TestAnimator_Parametric(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	cfg := scrollConfig()
	cfg.Curve = animation.LinearCurve
	blend := newAnimator(t, tester, cfg)
	cfg.Parametric = true
	solved := newAnimator(t, tester, cfg)

	blend.Play()
	solved.Play()
	tester.Advance(75 * time.Millisecond)

	// The CSS solver treats (0, 0, 1, 1) as a straight line; the ordinate
	// blend traces 3t^2-2t^3.
	if math.Abs(solved.Value()-25) > 0.01 {
		t.Errorf("parametric: expected ~25, got %v", solved.Value())
	}
	if !approx(blend.Value(), 15.625) {
		t.Errorf("blend: expected 15.625, got %v", blend.Value())
	}
}

func TestAnimator_PackageClock(t *testing.T) {
	tester := motiontest.NewTesterWithT(t)
	frames := animation.NewFrameScheduler(nil)

	anim, err := animation.New(scrollConfig(), animation.WithScheduler(frames))
	if err != nil {
		t.Fatal(err)
	}
	defer anim.Dispose()

	anim.Play()
	tester.Clock().Advance(150 * time.Millisecond)
	frames.Step()
	if !approx(anim.Value(), 87.5) {
		t.Errorf("expected animator to follow the installed clock, got %v", anim.Value())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state animation.State
		want  string
	}{
		{animation.StateIdle, "idle"},
		{animation.StatePlaying, "playing"},
		{animation.StateCompleted, "completed"},
		{animation.State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}
