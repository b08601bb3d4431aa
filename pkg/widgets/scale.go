package widgets

import (
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// ScaleConfig configures a [Scale].
type ScaleConfig struct {
	// Min is the value the scale starts from.
	Min float64
	// Value is the first target; the scale animates Min to Value on creation.
	Value float64
	// Curve defaults to [animation.OvershootCurve].
	Curve animation.Curve
	// Duration defaults to 800ms.
	Duration time.Duration
	// OnValue receives every animated value.
	OnValue func(float64)
}

// Scale is an on-screen-display slider whose value springs past each new
// target before settling.
type Scale struct {
	anim    *animation.Animator
	value   float64
	onValue func(float64)
}

// NewScale creates a scale and starts animating toward cfg.Value.
func NewScale(cfg ScaleConfig, opts ...animation.Option) (*Scale, error) {
	if cfg.Curve == (animation.Curve{}) {
		cfg.Curve = animation.OvershootCurve
	}
	if cfg.Duration == 0 {
		cfg.Duration = 800 * time.Millisecond
	}
	anim, err := animation.New(animation.Config{
		Curve:    cfg.Curve,
		Duration: cfg.Duration,
		Min:      cfg.Min,
		Max:      cfg.Value,
	}, opts...)
	if err != nil {
		return nil, err
	}

	s := &Scale{anim: anim, value: cfg.Min, onValue: cfg.OnValue}
	anim.AddListener(func(v float64) {
		s.value = v
		if s.onValue != nil {
			s.onValue(v)
		}
	})
	anim.Play()
	return s, nil
}

// AnimateValue springs from the currently displayed value to v.
func (s *Scale) AnimateValue(v float64) {
	s.anim.Pause()
	s.anim.SetMin(s.value)
	s.anim.SetMax(v)
	s.anim.Play()
}

// Value returns the displayed value.
func (s *Scale) Value() float64 { return s.value }

// Target returns the value the scale is heading to.
func (s *Scale) Target() float64 { return s.anim.Max() }

// Animator exposes the value animator.
func (s *Scale) Animator() *animation.Animator { return s.anim }

// Dispose releases the animator.
func (s *Scale) Dispose() { s.anim.Dispose() }
