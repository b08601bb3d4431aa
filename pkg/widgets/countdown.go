package widgets

import (
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// Countdown is a timer progress bar. Its fraction runs from 0 to 1 over the
// interval and OnDone fires once when it fills.
type Countdown struct {
	anim     *animation.Animator
	interval time.Duration
	fraction float64
	done     bool

	// OnFraction receives the fraction after every tick.
	OnFraction func(float64)
	// OnDone is called once when the interval elapses.
	OnDone func()
}

// NewCountdown creates and starts a countdown of the given interval.
func NewCountdown(interval time.Duration, opts ...animation.Option) (*Countdown, error) {
	anim, err := animation.New(animation.Config{
		Curve:    animation.LinearCurve,
		Duration: interval,
		Min:      0,
		Max:      1,
	}, opts...)
	if err != nil {
		return nil, err
	}

	c := &Countdown{anim: anim, interval: interval}
	anim.AddListener(func(v float64) {
		c.fraction = v
		if c.OnFraction != nil {
			c.OnFraction(v)
		}
	})
	anim.AddFinishedListener(func() {
		c.done = true
		if c.OnDone != nil {
			c.OnDone()
		}
	})
	anim.Play()
	return c, nil
}

// Fraction returns the filled fraction of the bar.
func (c *Countdown) Fraction() float64 { return c.fraction }

// Remaining returns the time left, measured on the timeline rather than the
// eased fraction.
func (c *Countdown) Remaining() time.Duration {
	if c.done {
		return 0
	}
	return time.Duration((1 - c.anim.Position()) * float64(c.interval))
}

// Interval returns the configured interval.
func (c *Countdown) Interval() time.Duration { return c.interval }

// Done reports whether the interval elapsed.
func (c *Countdown) Done() bool { return c.done }

// Cancel stops the countdown without firing OnDone.
func (c *Countdown) Cancel() { c.anim.Dispose() }
