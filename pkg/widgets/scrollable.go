package widgets

import (
	"math"
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// ScrollableConfig configures a [Scrollable].
type ScrollableConfig struct {
	// Curve shapes height changes. Zero uses [animation.ScrollCurve].
	Curve animation.Curve
	// Duration of one height change. Zero uses 300ms.
	Duration time.Duration
	// MinHeight is the initial content height.
	MinHeight float64
	// MaxHeight is the animator's initial upper bound.
	MaxHeight float64
	// OnHeight receives the rounded content height after every tick, and
	// whether the panel should be shown.
	OnHeight func(height int, visible bool)
}

// Scrollable animates the content height of a scrolled panel between its
// current height and a requested one.
type Scrollable struct {
	anim     *animation.Animator
	height   float64
	visible  bool
	request  float64
	onHeight func(int, bool)
}

// NewScrollable creates an idle scrollable panel.
func NewScrollable(cfg ScrollableConfig, opts ...animation.Option) (*Scrollable, error) {
	if cfg.Curve == (animation.Curve{}) {
		cfg.Curve = animation.ScrollCurve
	}
	if cfg.Duration == 0 {
		cfg.Duration = 300 * time.Millisecond
	}
	anim, err := animation.New(animation.Config{
		Curve:    cfg.Curve,
		Duration: cfg.Duration,
		Min:      cfg.MinHeight,
		Max:      cfg.MaxHeight,
	}, opts...)
	if err != nil {
		return nil, err
	}

	s := &Scrollable{
		anim:     anim,
		height:   cfg.MinHeight,
		visible:  true,
		request:  -1,
		onHeight: cfg.OnHeight,
	}
	anim.AddListener(s.update)
	return s, nil
}

func (s *Scrollable) update(v float64) {
	h := math.Round(v)
	s.visible = h >= 1
	s.height = h
	if s.onHeight != nil {
		s.onHeight(int(h), s.visible)
	}
}

// AnimateSize animates from the current content height to height. A
// negative height, conventionally -1, means "no request" and is ignored.
func (s *Scrollable) AnimateSize(height float64) {
	s.request = height
	s.Animate(s.height, height)
}

// Animate animates the content height from one value to another.
func (s *Scrollable) Animate(from, to float64) {
	if to < 0 {
		return
	}
	s.anim.Pause()
	s.anim.SetMin(from)
	s.anim.SetMax(to)
	s.anim.Play()
}

// Height returns the rounded content height set by the last tick.
func (s *Scrollable) Height() float64 { return s.height }

// Visible reports whether the panel is shown. It is hidden while the
// rounded height is below 1.
func (s *Scrollable) Visible() bool { return s.visible }

// PreferredHeight returns the animated height, never negative.
func (s *Scrollable) PreferredHeight() float64 {
	return max(s.anim.Value(), 0)
}

// LastRequest returns the height passed to the last AnimateSize call, or -1.
func (s *Scrollable) LastRequest() float64 { return s.request }

// Animator exposes the height animator.
func (s *Scrollable) Animator() *animation.Animator { return s.anim }

// Dispose releases the animator.
func (s *Scrollable) Dispose() { s.anim.Dispose() }
