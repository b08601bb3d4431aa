package animation

import (
	"sync"
	"time"

	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/loop"
)

// DefaultInterval is the fixed tick period used when no host surface drives
// an animation, roughly one 60 Hz frame.
const DefaultInterval = 16 * time.Millisecond

// TickFunc is invoked once per tick with a monotonically increasing
// timestamp. Returning false ends the registration.
type TickFunc func(now time.Time) bool

// Handle identifies a scheduler registration. The zero Handle is never
// issued and means "not registered".
type Handle uint64

// Scheduler registers periodic tick callbacks.
//
// Unregistering an unknown or already removed handle is a no-op, and a
// callback unregistered while other callbacks of the same tick run is not
// invoked for that tick.
type Scheduler interface {
	Register(fn TickFunc) Handle
	Unregister(h Handle)
}

// FrameScheduler ticks callbacks in lock-step with a host surface's repaint
// cycle. The host calls [FrameScheduler.Step] once per frame and can use
// [FrameScheduler.HasActive] to decide whether another frame is needed.
type FrameScheduler struct {
	clock Clock

	mu      sync.Mutex
	next    Handle
	entries []frameEntry
}

type frameEntry struct {
	handle Handle
	fn     TickFunc
}

// NewFrameScheduler creates a surface-synchronized scheduler. A nil clock
// uses the package clock.
func NewFrameScheduler(c Clock) *FrameScheduler {
	if c == nil {
		c = packageClock{}
	}
	return &FrameScheduler{clock: Monotonic(c)}
}

// Register adds fn to the frame callbacks.
func (s *FrameScheduler) Register(fn TickFunc) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.entries = append(s.entries, frameEntry{handle: s.next, fn: fn})
	return s.next
}

// Unregister removes the callback registered under h.
func (s *FrameScheduler) Unregister(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(h)
}

func (s *FrameScheduler) remove(h Handle) {
	for i, e := range s.entries {
		if e.handle == h {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *FrameScheduler) registered(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.handle == h {
			return true
		}
	}
	return false
}

// Step advances every registered callback by one frame, in registration
// order, all with the same frame timestamp. It returns the number of
// callbacks invoked.
func (s *FrameScheduler) Step() int {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return 0
	}
	// Copy so callbacks can register and unregister without holding the lock.
	entries := make([]frameEntry, len(s.entries))
	copy(entries, s.entries)
	s.mu.Unlock()

	now := s.clock.Now()
	invoked := 0
	for _, e := range entries {
		if !s.registered(e.handle) {
			continue
		}
		keep := false
		errors.Guard("animation.FrameScheduler.Step", func() { keep = e.fn(now) })
		invoked++
		if !keep {
			s.Unregister(e.handle)
		}
	}
	return invoked
}

// HasActive reports whether any callback is registered.
func (s *FrameScheduler) HasActive() bool {
	return s.Len() > 0
}

// Len returns the number of registered callbacks.
func (s *FrameScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// IntervalScheduler is the fixed-interval fallback: each registration
// becomes a timeout source on a [loop.Loop], so callbacks run on the
// goroutine that runs the loop.
type IntervalScheduler struct {
	loop     *loop.Loop
	interval time.Duration
}

// NewIntervalScheduler creates a scheduler ticking every interval on l. A nil
// loop uses [loop.Default]; a non-positive interval uses [DefaultInterval].
func NewIntervalScheduler(l *loop.Loop, interval time.Duration) *IntervalScheduler {
	if l == nil {
		l = loop.Default()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &IntervalScheduler{loop: l, interval: interval}
}

// Register adds fn as a timeout source.
func (s *IntervalScheduler) Register(fn TickFunc) Handle {
	return Handle(s.loop.TimeoutAdd(s.interval, fn))
}

// Unregister removes the timeout source behind h.
func (s *IntervalScheduler) Unregister(h Handle) {
	s.loop.Remove(loop.SourceID(h))
}

// Interval returns the tick period.
func (s *IntervalScheduler) Interval() time.Duration { return s.interval }

var defaultScheduler = sync.OnceValue(func() *IntervalScheduler {
	return NewIntervalScheduler(loop.Default(), DefaultInterval)
})

// DefaultScheduler returns the interval scheduler on the default loop, used
// by animators constructed without a host surface.
func DefaultScheduler() Scheduler { return defaultScheduler() }
