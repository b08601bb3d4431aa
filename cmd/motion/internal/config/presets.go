package config

import (
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// Builtin returns the presets the shell ships with. The map is freshly
// allocated on every call.
func Builtin() map[string]Preset {
	return map[string]Preset{
		"panel": {
			Curve:    Curve(animation.ScrollCurve),
			Duration: Duration(300 * time.Millisecond),
			Max:      100,
		},
		"osd": {
			Curve:    Curve(animation.OvershootCurve),
			Duration: Duration(800 * time.Millisecond),
			Max:      100,
		},
		"rail-lead": {
			Curve:    Curve(animation.RailCurve),
			Duration: Duration(100 * time.Millisecond),
			Max:      1,
		},
		"rail-tail": {
			Curve:    Curve(animation.RailCurve),
			Duration: Duration(500 * time.Millisecond),
			Max:      1,
		},
		"timer": {
			Curve:    Curve(animation.LinearCurve),
			Duration: Duration(time.Second),
			Max:      1,
		},
		"pulse": {
			Curve:    Curve(animation.Ease),
			Duration: Duration(time.Second),
			Max:      1,
			Repeat:   true,
		},
	}
}
