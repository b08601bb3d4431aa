package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/motion/cmd/motion/internal/config"
	"github.com/go-drift/motion/pkg/animation"
)

// parsedArgs holds positional arguments and flag values.
type parsedArgs struct {
	positional []string
	values     map[string]string
	bools      map[string]bool
}

func (p parsedArgs) arg(i int, fallback string) string {
	if i < len(p.positional) {
		return p.positional[i]
	}
	return fallback
}

// parseArgs splits args into positional arguments, flags that take a value
// (--name value or --name=value) and boolean flags.
func parseArgs(args []string, valueFlags, boolFlags []string) (parsedArgs, error) {
	p := parsedArgs{
		values: make(map[string]string),
		bools:  make(map[string]bool),
	}
	isValue := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		isValue[f] = true
	}
	isBool := make(map[string]bool, len(boolFlags))
	for _, f := range boolFlags {
		isBool[f] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			p.positional = append(p.positional, arg)
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		switch {
		case isBool[name] && !hasValue:
			p.bools[name] = true
		case isValue[name] && hasValue:
			p.values[name] = value
		case isValue[name]:
			if i+1 >= len(args) {
				return p, fmt.Errorf("--%s requires a value", name)
			}
			p.values[name] = args[i+1]
			i++
		default:
			return p, fmt.Errorf("unknown flag %q", arg)
		}
	}
	return p, nil
}

// presetValueFlags and presetBoolFlags override fields of the chosen preset.
var (
	presetValueFlags = []string{"curve", "duration", "min", "max"}
	presetBoolFlags  = []string{"repeat", "reverse", "parametric"}
)

const presetFlagsHelp = `Preset overrides:
  --curve CURVE      Curve name, "cubic-bezier(x1, y1, x2, y2)" or "x1,y1,x2,y2"
  --duration D       Cycle length, e.g. 300ms or 0.3
  --min V, --max V   Value range
  --repeat           Bounce between the edges
  --reverse          Start from the end of the timeline
  --parametric       Use the CSS solver instead of the ordinate blend`

// loadPreset resolves the project configuration and applies overrides.
func loadPreset(name string, p parsedArgs) (animation.Config, *config.Resolved, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return animation.Config{}, nil, err
	}
	resolved, err := config.Resolve(root)
	if err != nil {
		return animation.Config{}, nil, err
	}
	preset, err := resolved.Preset(name)
	if err != nil {
		return animation.Config{}, nil, err
	}
	cfg, err := applyOverrides(preset.AnimationConfig(), p)
	return cfg, resolved, err
}

func applyOverrides(cfg animation.Config, p parsedArgs) (animation.Config, error) {
	if v, ok := p.values["curve"]; ok {
		c, err := config.ParseCurve(v)
		if err != nil {
			return cfg, err
		}
		cfg.Curve = c
	}
	if v, ok := p.values["duration"]; ok {
		d, err := config.ParseDuration(v)
		if err != nil {
			return cfg, err
		}
		cfg.Duration = d
	}
	for name, dst := range map[string]*float64{"min": &cfg.Min, "max": &cfg.Max} {
		v, ok := p.values[name]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid --%s %q: %w", name, v, err)
		}
		*dst = f
	}
	cfg.Repeat = cfg.Repeat || p.bools["repeat"]
	cfg.Reverse = cfg.Reverse || p.bools["reverse"]
	cfg.Parametric = cfg.Parametric || p.bools["parametric"]
	return cfg, cfg.Validate()
}
