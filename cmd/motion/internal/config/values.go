package config

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

var namedCurves = map[string]animation.Curve{
	"scroll":      animation.ScrollCurve,
	"overshoot":   animation.OvershootCurve,
	"rail":        animation.RailCurve,
	"linear":      animation.LinearCurve,
	"ease":        animation.Ease,
	"ease-in":     animation.EaseIn,
	"ease-out":    animation.EaseOut,
	"ease-in-out": animation.EaseInOut,
}

// ParseCurve accepts a curve name such as "scroll" or "ease-in-out", or
// anything [animation.ParseCurve] accepts.
func ParseCurve(s string) (animation.Curve, error) {
	if named, ok := namedCurves[strings.ToLower(strings.TrimSpace(s))]; ok {
		return named, nil
	}
	return animation.ParseCurve(s)
}

// ParseDuration accepts a Go duration string such as "300ms", or a plain
// number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &motionerrors.ParseError{
			Field:  "duration",
			Value:  s,
			Reason: `want a duration like "300ms" or seconds`,
		}
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// CurveNames returns the names ParseCurve understands, sorted.
func CurveNames() []string {
	names := make([]string, 0, len(namedCurves))
	for name := range namedCurves {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Curve is a YAML curve: a curve name, a cubic-bezier(...) string, or a
// list of four numbers.
type Curve animation.Curve

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Curve) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := ParseCurve(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = Curve(parsed)
		return nil
	case yaml.SequenceNode:
		var values []float64
		if err := node.Decode(&values); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if len(values) != 4 {
			return fmt.Errorf("line %d: %w", node.Line, &motionerrors.ParseError{
				Field:  "curve",
				Value:  fmt.Sprint(values),
				Reason: fmt.Sprintf("want 4 numbers, got %d", len(values)),
			})
		}
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("line %d: %w: %w", node.Line, animation.ErrInvalidCurve, &motionerrors.ParseError{
					Field:  "curve",
					Value:  fmt.Sprint(values),
					Reason: fmt.Sprintf("component %d is not a finite number", i+1),
				})
			}
		}
		*c = Curve{values[0], values[1], values[2], values[3]}
		return nil
	default:
		return fmt.Errorf("line %d: curve must be a string or a list", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (c Curve) MarshalYAML() (any, error) {
	return c.Name(), nil
}

// Name returns the built-in name of c, or its cubic-bezier form.
func (c Curve) Name() string {
	for _, name := range CurveNames() {
		if animation.Curve(c) == namedCurves[name] {
			return name
		}
	}
	return animation.Curve(c).String()
}

// Duration is a YAML duration: a Go duration string such as "300ms", or a
// plain number of seconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
