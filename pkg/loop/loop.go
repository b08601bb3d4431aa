// Package loop provides a single-threaded event loop with timeout sources.
//
// A [Loop] owns a set of periodic timeout sources and a queue of posted
// callbacks. Both run only on the goroutine that calls [Loop.Run] or
// [Loop.Iterate], which makes that goroutine the "UI thread" for everything
// scheduled on the loop. [Loop.Invoke] is the only method meant to be called
// from other goroutines while the loop runs.
package loop

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/motion/pkg/errors"
)

// Clock supplies the loop's notion of now.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SourceID identifies a timeout source. Zero is never a valid ID.
type SourceID uint64

type source struct {
	id       SourceID
	interval time.Duration
	due      time.Time
	fn       func(now time.Time) bool
}

// Loop is a cooperative event loop.
type Loop struct {
	clock Clock

	mu      sync.Mutex
	nextID  SourceID
	sources map[SourceID]*source
	queue   []func()

	wake chan struct{}
	quit chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the system clock, mainly for tests that drive the loop
// with Iterate.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// New creates an idle loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		clock:   systemClock{},
		sources: make(map[SourceID]*source),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLoop = sync.OnceValue(func() *Loop { return New() })

// Default returns the process-wide loop used when no loop is supplied.
func Default() *Loop { return defaultLoop() }

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Time { return l.clock.Now() }

// TimeoutAdd registers fn to run every interval, first after one interval
// has elapsed. fn receives the loop time and returns false to remove itself.
func (l *Loop) TimeoutAdd(interval time.Duration, fn func(now time.Time) bool) SourceID {
	if interval <= 0 {
		interval = time.Millisecond
	}
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.sources[id] = &source{
		id:       id,
		interval: interval,
		due:      l.clock.Now().Add(interval),
		fn:       fn,
	}
	l.mu.Unlock()
	l.signal()
	return id
}

// Remove deletes a timeout source. A removed source never fires again, even
// if it was already due in the current iteration. Removing an unknown ID is
// a no-op that returns false.
func (l *Loop) Remove(id SourceID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.sources[id]; !ok {
		return false
	}
	delete(l.sources, id)
	return true
}

// Pending reports the number of registered timeout sources.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sources)
}

// Invoke posts fn to run on the loop goroutine during the next iteration.
// It is safe to call from any goroutine.
func (l *Loop) Invoke(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
}

// Quit makes a running Run return nil.
func (l *Loop) Quit() {
	select {
	case l.quit <- struct{}{}:
	default:
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Iterate runs posted callbacks and every source due at the current clock
// time, then returns without blocking. It returns the number of callbacks
// dispatched.
func (l *Loop) Iterate() int {
	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	dispatched := 0
	for _, fn := range queue {
		errors.Guard("loop.invoke", fn)
		dispatched++
	}

	now := l.clock.Now()
	for _, src := range l.due(now) {
		if !l.alive(src) {
			continue
		}
		// A panicking source is dropped.
		keep := false
		errors.Guard("loop.dispatch", func() { keep = src.fn(now) })
		dispatched++

		l.mu.Lock()
		if _, ok := l.sources[src.id]; ok {
			if keep {
				src.due = src.due.Add(src.interval)
				if !src.due.After(now) {
					src.due = now.Add(src.interval)
				}
			} else {
				delete(l.sources, src.id)
			}
		}
		l.mu.Unlock()
	}
	return dispatched
}

// due returns the sources due at now, ordered by deadline then ID.
func (l *Loop) due(now time.Time) []*source {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*source
	for _, src := range l.sources {
		if !src.due.After(now) {
			out = append(out, src)
		}
	}
	slices.SortFunc(out, func(a, b *source) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return out
}

func (l *Loop) alive(src *source) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur, ok := l.sources[src.id]
	return ok && cur == src
}

// nextWait returns how long until the earliest source is due, or false if
// there are no sources.
func (l *Loop) nextWait() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) > 0 {
		return 0, true
	}
	var earliest time.Time
	for _, src := range l.sources {
		if earliest.IsZero() || src.due.Before(earliest) {
			earliest = src.due
		}
	}
	if earliest.IsZero() {
		return 0, false
	}
	return max(earliest.Sub(l.clock.Now()), 0), true
}

// Run dispatches sources and posted callbacks until ctx is done or Quit is
// called. It returns ctx.Err() on cancellation and nil after Quit.
func (l *Loop) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		l.Iterate()

		var timeout <-chan time.Time
		if wait, ok := l.nextWait(); ok {
			timer.Reset(wait)
			timeout = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			return nil
		case <-l.wake:
		case <-timeout:
		}
		timer.Stop()
	}
}
