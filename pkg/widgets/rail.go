package widgets

import (
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// RailConfig configures a [Rail].
type RailConfig struct {
	// Curve drives both edges. Zero uses [animation.RailCurve].
	Curve animation.Curve
	// LeadDuration is how long the leading edge takes. Zero uses 100ms.
	LeadDuration time.Duration
	// TailDuration is how long the trailing edge takes. Zero uses 500ms.
	TailDuration time.Duration
	// OnFrame receives the indicator rectangle after every tick of either
	// edge, while it has positive width.
	OnFrame func(Rect)
}

// Rail is the active-workspace indicator. When it moves, the edge facing
// the destination leads and the opposite edge trails behind, so the
// indicator stretches and then catches up.
type Rail struct {
	lead *animation.Animator
	tail *animation.Animator

	from, to Rect
	buffer   Rect
	onFrame  func(Rect)
}

// NewRail creates an idle rail.
func NewRail(cfg RailConfig, opts ...animation.Option) (*Rail, error) {
	if cfg.Curve == (animation.Curve{}) {
		cfg.Curve = animation.RailCurve
	}
	if cfg.LeadDuration == 0 {
		cfg.LeadDuration = 100 * time.Millisecond
	}
	if cfg.TailDuration == 0 {
		cfg.TailDuration = 500 * time.Millisecond
	}

	lead, err := animation.New(animation.Config{
		Curve:    cfg.Curve,
		Duration: cfg.LeadDuration,
		Max:      1,
	}, opts...)
	if err != nil {
		return nil, err
	}
	tail, err := animation.New(animation.Config{
		Curve:    cfg.Curve,
		Duration: cfg.TailDuration,
		Max:      1,
	}, opts...)
	if err != nil {
		lead.Dispose()
		return nil, err
	}

	r := &Rail{lead: lead, tail: tail, onFrame: cfg.OnFrame}
	lead.AddListener(r.update)
	tail.AddListener(r.update)
	return r, nil
}

// Animate moves the indicator to to. It starts from wherever the indicator
// currently is, or from from when nothing has been drawn yet.
func (r *Rail) Animate(from, to Rect) {
	r.lead.Stop()
	r.tail.Stop()

	r.from = r.buffer
	r.to = to
	if r.from.Empty() {
		r.from = from
	}

	r.lead.Play()
	r.tail.Play()
}

func (r *Rail) update(float64) {
	r.buffer = r.Box()
	if r.buffer.Width > 0 && r.onFrame != nil {
		r.onFrame(r.buffer)
	}
}

// Box computes the indicator rectangle from the current edge progress.
func (r *Rail) Box() Rect {
	leading := r.lead.Value()
	trailing := r.tail.Value()
	lerp := animation.LerpFloat64

	var left, right float64
	if r.to.X >= r.from.X {
		left = lerp(r.from.X, r.to.X, trailing)
		right = lerp(r.from.X+r.from.Width, r.to.X+r.to.Width, leading)
	} else {
		left = lerp(r.from.X, r.to.X, leading)
		right = lerp(r.from.X+r.from.Width, r.to.X+r.to.Width, trailing)
	}

	var top, bottom float64
	if r.to.Y >= r.from.Y {
		top = lerp(r.from.Y, r.to.Y, trailing)
		bottom = lerp(r.from.Y+r.from.Height, r.to.Y+r.to.Height, leading)
	} else {
		top = lerp(r.from.Y, r.to.Y, leading)
		bottom = lerp(r.from.Y+r.from.Height, r.to.Y+r.to.Height, trailing)
	}

	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Current returns the rectangle computed by the last tick.
func (r *Rail) Current() Rect { return r.buffer }

// Animating reports whether either edge is still moving.
func (r *Rail) Animating() bool {
	return r.lead.Playing() || r.tail.Playing()
}

// Dispose releases both animators.
func (r *Rail) Dispose() {
	r.lead.Dispose()
	r.tail.Dispose()
}
