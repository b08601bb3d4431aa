package animation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// Curve is a cubic timing curve descriptor in CSS cubic-bezier(x1, y1, x2, y2)
// order.
//
// [Curve.Ease] only consults the two ordinates (Y1 at index 1, Y2 at index 3)
// and uses the timeline position directly as the Bezier parameter. The
// abscissas are carried for display and for the opt-in [Curve.Parametric]
// solver. Ordinates outside [0, 1] produce overshoot.
type Curve [4]float64

// Named curves used across the shell.
var (
	// ScrollCurve drives panel height changes: a fast rise that settles.
	ScrollCurve = Curve{0.2, 1, 0.8, 1.0}

	// OvershootCurve drives sliders; its 1.56 ordinate overshoots the target
	// before settling.
	OvershootCurve = Curve{0.34, 1.56, 0.64, 1.0}

	// RailCurve drives the workspace indicator edges.
	RailCurve = Curve{0.55, 0.79, 0.02, 1.0}

	// LinearCurve is CSS linear written as a bezier. Under the ordinate blend
	// it traces 3t²-2t³, a symmetric ease-in-out.
	LinearCurve = Curve{0, 0, 1, 1}

	// Ease is equivalent to CSS ease.
	Ease = Curve{0.25, 0.1, 0.25, 1.0}

	// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
	EaseIn = Curve{0.4, 0.0, 1.0, 1.0}

	// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
	EaseOut = Curve{0.0, 0.0, 0.2, 1.0}

	// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out.
	EaseInOut = Curve{0.4, 0.0, 0.2, 1.0}
)

// ErrInvalidCurve is returned by ParseCurve for malformed descriptors.
var ErrInvalidCurve = errors.New("invalid curve")

// Ease evaluates the cubic Bezier blend of ordinates (0, Y1, Y2, 1) at t.
// Ease(0) is exactly 0 and Ease(1) is exactly 1 for every curve.
func (c Curve) Ease(t float64) float64 {
	return sampleCurve(c[1], c[3], t)
}

// Parametric returns the true CSS timing function for c, which solves for
// the parameter whose abscissa equals t. Animators only use it when
// explicitly configured to.
func (c Curve) Parametric() func(float64) float64 {
	return CubicBezier(c[0], c[1], c[2], c[3])
}

// Overshoots reports whether either ordinate lies outside [0, 1].
func (c Curve) Overshoots() bool {
	return c[1] < 0 || c[1] > 1 || c[3] < 0 || c[3] > 1
}

func (c Curve) String() string {
	return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", c[0], c[1], c[2], c[3])
}

// ParseCurve parses "cubic-bezier(x1, y1, x2, y2)" or a bare "x1, y1, x2, y2"
// list. Whitespace around numbers is ignored.
func ParseCurve(s string) (Curve, error) {
	body := strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(body, "cubic-bezier("); ok {
		inner, ok := strings.CutSuffix(rest, ")")
		if !ok {
			return Curve{}, parseCurveError(s, "missing closing parenthesis")
		}
		body = inner
	}

	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return Curve{}, parseCurveError(s, fmt.Sprintf("want 4 numbers, got %d", len(parts)))
	}

	var c Curve
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Curve{}, parseCurveError(s, fmt.Sprintf("component %d is not a finite number", i+1))
		}
		c[i] = v
	}
	return c, nil
}

func parseCurveError(s, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidCurve, &motionerrors.ParseError{Field: "curve", Value: s, Reason: reason})
}

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fallback to bisection to guarantee a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
