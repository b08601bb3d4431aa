package animation

import "image/color"

// Tween interpolates between Begin and End values based on animation progress.
//
// Tween maps a progress value (typically an [Animator] running from 0 to 1)
// onto any value range or type. Use [TweenFloat64] or [TweenRGBA] for common
// types, or create custom tweens with a Lerp function.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp linearly interpolates between Begin and End. Receives the begin value,
	// end value, and progress t. Returns the interpolated value.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform returns the interpolated value using the animator's current value.
func (tw *Tween[T]) Transform(a *Animator) T {
	return tw.Evaluate(a.Value())
}

// LerpFloat64 linearly interpolates between two float64 values. It returns
// a and b exactly at t = 0 and t = 1.
func LerpFloat64(a, b float64, t float64) float64 {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a + (b-a)*t
}

// LerpRGBA linearly interpolates between two colors channel by channel.
// Progress outside [0, 1] is clamped so overshooting curves saturate instead
// of wrapping.
func LerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clampUnit(t)
	ch := func(x, y uint8) uint8 {
		return uint8(LerpFloat64(float64(x), float64(y), t) + 0.5)
	}
	return color.RGBA{
		R: ch(a.R, b.R),
		G: ch(a.G, b.G),
		B: ch(a.B, b.B),
		A: ch(a.A, b.A),
	}
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{
		Begin: begin,
		End:   end,
		Lerp:  LerpFloat64,
	}
}

// TweenRGBA creates a tween for colors.
func TweenRGBA(begin, end color.RGBA) *Tween[color.RGBA] {
	return &Tween[color.RGBA]{
		Begin: begin,
		End:   end,
		Lerp:  LerpRGBA,
	}
}
