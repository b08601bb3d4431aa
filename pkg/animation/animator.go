package animation

import (
	"errors"
	"fmt"
	"math"
	"time"

	motionerrors "github.com/go-drift/motion/pkg/errors"
)

var (
	// ErrInvalidDuration is returned when an animation duration is not positive.
	ErrInvalidDuration = errors.New("animation duration must be positive")
	// ErrNonFinite is returned when a curve component or bound is NaN or
	// infinite.
	ErrNonFinite = errors.New("animation parameter must be finite")
)

// State represents the lifecycle state of an [Animator].
//
//	           Play()                 terminal tick (Repeat=false)
//	Idle ─────────────────► Playing ─────────────────────────────► Completed
//	 ▲                        │                                       │
//	 └──── Pause() / Stop() ──┘                Play() restarts ───────┘
//
// With Repeat=true the animator never leaves Playing on its own.
type State int

const (
	// StateIdle means no tick registration is active.
	StateIdle State = iota
	// StatePlaying means the timeline is advancing.
	StatePlaying
	// StateCompleted means a non-repeating cycle ended and the value is
	// pinned to its terminal bound. It behaves like Idle.
	StateCompleted
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config holds the construction parameters of an [Animator].
type Config struct {
	// Curve shapes the motion.
	Curve Curve
	// Duration is the length of one cycle. It must be positive.
	Duration time.Duration
	// Min is the value at timeline position 0.
	Min float64
	// Max is the value at timeline position 1. Min > Max animates a decrease.
	Max float64
	// Repeat bounces between the edges instead of stopping.
	Repeat bool
	// Reverse starts travelling from position 1 toward 0.
	Reverse bool
	// Parametric evaluates Curve with the CSS solver instead of the
	// ordinate blend. It changes every curve's timing and is off by default.
	Parametric bool
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidDuration, c.Duration)
	}
	for i, v := range c.Curve {
		if !finite(v) {
			return fmt.Errorf("%w: curve component %d is %v", ErrNonFinite, i+1, v)
		}
	}
	if !finite(c.Min) {
		return fmt.Errorf("%w: min is %v", ErrNonFinite, c.Min)
	}
	if !finite(c.Max) {
		return fmt.Errorf("%w: max is %v", ErrNonFinite, c.Max)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Animator drives a value from Min to Max over Duration along a Curve.
//
// An Animator is owned by exactly one consumer and is not safe for
// concurrent use: every method and every tick must run on the thread that
// drives its [Scheduler]. The owner must call Dispose (or Pause/Stop) before
// releasing it so no tick fires against a dead observer.
type Animator struct {
	curve      Curve
	parametric bool
	easeFn     func(float64) float64
	duration   time.Duration
	min, max   float64
	repeat     bool
	reverse    bool

	value     float64
	playing   bool
	completed bool
	position  float64
	start     time.Time
	retarget  bool
	disposed  bool

	clock  Clock
	ticker *Ticker

	listeners         []valueListener
	finishedListeners []finishedListener
	nextListenerID    int
}

type valueListener struct {
	id int
	fn func(value float64)
}

type finishedListener struct {
	id int
	fn func()
}

// Option customizes an Animator.
type Option func(*options)

type options struct {
	scheduler Scheduler
	clock     Clock
}

// WithScheduler drives the animator from s, typically a host surface's
// [FrameScheduler]. Without it the animator uses [DefaultScheduler].
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// WithClock replaces the package clock for this animator.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// New creates an idle animator. It returns an error wrapping
// [ErrInvalidDuration] if cfg.Duration is not positive.
func New(cfg Config, opts ...Option) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, motionerrors.New("animation.New", motionerrors.KindConfig, err)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = DefaultScheduler()
	}
	if o.clock == nil {
		o.clock = packageClock{}
	}

	a := &Animator{
		curve:      cfg.Curve,
		parametric: cfg.Parametric,
		duration:   cfg.Duration,
		min:        cfg.Min,
		max:        cfg.Max,
		repeat:     cfg.Repeat,
		reverse:    cfg.Reverse,
		value:      cfg.Min,
		clock:      Monotonic(o.clock),
	}
	a.position = a.startEdge()
	a.updateEase()
	a.ticker = NewTicker(o.scheduler, a.tick)
	return a, nil
}

// Value returns the current eased value. It equals Min until the first tick.
func (a *Animator) Value() float64 { return a.value }

// Position returns the normalized timeline position in [0, 1].
func (a *Animator) Position() float64 { return a.position }

// Playing reports whether the timeline is advancing.
func (a *Animator) Playing() bool { return a.playing }

// State returns the lifecycle state.
func (a *Animator) State() State {
	switch {
	case a.playing:
		return StatePlaying
	case a.completed:
		return StateCompleted
	default:
		return StateIdle
	}
}

// Curve returns the easing curve.
func (a *Animator) Curve() Curve { return a.curve }

// SetCurve changes the easing curve. A changed curve takes effect on the
// next tick; while paused, the next Play restarts the timeline.
func (a *Animator) SetCurve(c Curve) {
	if c == a.curve {
		return
	}
	a.curve = c
	a.updateEase()
	a.markRetarget()
}

// Duration returns the cycle length.
func (a *Animator) Duration() time.Duration { return a.duration }

// SetDuration changes the cycle length. A running animation keeps its
// current position and continues at the new pace.
func (a *Animator) SetDuration(d time.Duration) error {
	if d <= 0 {
		return motionerrors.New("animation.SetDuration", motionerrors.KindConfig,
			fmt.Errorf("%w (got %v)", ErrInvalidDuration, d))
	}
	a.duration = d
	if a.playing {
		a.rebase(a.clock.Now())
	}
	return nil
}

// Min returns the value at timeline position 0.
func (a *Animator) Min() float64 { return a.min }

// SetMin changes the lower bound. See SetCurve for when it takes effect.
func (a *Animator) SetMin(v float64) {
	if v == a.min {
		return
	}
	a.min = v
	a.markRetarget()
}

// Max returns the value at timeline position 1.
func (a *Animator) Max() float64 { return a.max }

// SetMax changes the upper bound. See SetCurve for when it takes effect.
func (a *Animator) SetMax(v float64) {
	if v == a.max {
		return
	}
	a.max = v
	a.markRetarget()
}

// Repeat reports whether the animator bounces between the edges.
func (a *Animator) Repeat() bool { return a.repeat }

// SetRepeat enables or disables bouncing.
func (a *Animator) SetRepeat(r bool) { a.repeat = r }

// Reverse reports whether the timeline travels from 1 toward 0.
func (a *Animator) Reverse() bool { return a.reverse }

// SetReverse changes the direction of travel. A running animation turns
// around at its current position.
func (a *Animator) SetReverse(r bool) {
	if r == a.reverse {
		return
	}
	a.reverse = r
	if a.playing {
		a.rebase(a.clock.Now())
	}
}

// Play starts or resumes the timeline. It is a no-op while playing.
//
// A paused animator resumes from the position where it stopped. The timeline
// restarts from its starting edge instead when it already sits on the
// terminal edge, or when Min, Max or Curve changed since the last tick.
func (a *Animator) Play() {
	if a.playing || a.disposed {
		return
	}
	if a.retarget || a.atTerminal() {
		a.position = a.startEdge()
		a.retarget = false
	}
	a.completed = false
	a.rebase(a.clock.Now())
	a.ticker.Start()
	a.playing = true
}

// Pause freezes the timeline and releases the tick registration. The
// position is kept for the next Play.
func (a *Animator) Pause() {
	a.playing = false
	a.ticker.Stop()
}

// Stop releases the tick registration and resets the timeline position to 0.
// The value is left where it was.
func (a *Animator) Stop() {
	a.ticker.Stop()
	a.playing = false
	a.completed = false
	a.position = 0
}

// Dispose stops the animator and drops its listeners. A disposed animator
// ignores Play.
func (a *Animator) Dispose() {
	a.Stop()
	a.listeners = nil
	a.finishedListeners = nil
	a.disposed = true
}

// AddListener registers fn to receive the value after every tick.
// Listeners run in registration order. Returns an unsubscribe function.
func (a *Animator) AddListener(fn func(value float64)) func() {
	id := a.nextID()
	a.listeners = append(a.listeners, valueListener{id: id, fn: fn})
	return func() {
		for i, l := range a.listeners {
			if l.id == id {
				a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
				return
			}
		}
	}
}

// AddFinishedListener registers fn to run once at the end of every
// non-repeating cycle, after the value is pinned to its terminal bound and
// the tick registration is released. Returns an unsubscribe function.
func (a *Animator) AddFinishedListener(fn func()) func() {
	id := a.nextID()
	a.finishedListeners = append(a.finishedListeners, finishedListener{id: id, fn: fn})
	return func() {
		for i, l := range a.finishedListeners {
			if l.id == id {
				a.finishedListeners = append(a.finishedListeners[:i:i], a.finishedListeners[i+1:]...)
				return
			}
		}
	}
}

func (a *Animator) nextID() int {
	id := a.nextListenerID
	a.nextListenerID++
	return id
}

// tick advances the timeline. It reads the animator's own clock so start
// times and tick times share one time base.
func (a *Animator) tick(time.Time) bool {
	if !a.playing {
		return false
	}
	now := a.clock.Now()
	progress := seconds(a.start, now) / a.duration.Seconds()

	if a.reverse {
		a.position = clampUnit(1 - progress)
	} else {
		a.position = clampUnit(progress)
	}
	a.value = a.interpolate(a.position)
	a.retarget = false

	if !a.atTerminal() {
		a.notifyValue()
		return a.playing
	}

	if !a.repeat {
		if a.reverse {
			a.value = a.min
		} else {
			a.value = a.max
		}
		a.completed = true
		a.Pause()
		a.notifyValue()
		a.notifyFinished()
		return false
	}

	a.reverse = !a.reverse
	a.start = now
	a.position = a.startEdge()
	a.notifyValue()
	return a.playing
}

// rebase derives the start time that places the current position at now.
func (a *Animator) rebase(now time.Time) {
	progress := a.position
	if a.reverse {
		progress = 1 - a.position
	}
	a.start = now.Add(-time.Duration(math.Round(progress * float64(a.duration))))
}

func (a *Animator) interpolate(position float64) float64 {
	return LerpFloat64(a.min, a.max, a.easeFn(position))
}

func (a *Animator) updateEase() {
	if a.parametric {
		a.easeFn = a.curve.Parametric()
	} else {
		a.easeFn = a.curve.Ease
	}
}

func (a *Animator) markRetarget() {
	a.retarget = true
	a.completed = false
}

func (a *Animator) startEdge() float64 {
	if a.reverse {
		return 1
	}
	return 0
}

func (a *Animator) atTerminal() bool {
	if a.reverse {
		return a.position <= 0
	}
	return a.position >= 1
}

func (a *Animator) notifyValue() {
	if len(a.listeners) == 0 {
		return
	}
	listeners := make([]valueListener, len(a.listeners))
	copy(listeners, a.listeners)
	for _, l := range listeners {
		l.fn(a.value)
	}
}

func (a *Animator) notifyFinished() {
	if len(a.finishedListeners) == 0 {
		return
	}
	listeners := make([]finishedListener, len(a.finishedListeners))
	copy(listeners, a.finishedListeners)
	for _, l := range listeners {
		l.fn()
	}
}
