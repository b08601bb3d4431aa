package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/motion/cmd/motion/internal/plot"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plot",
		Short: "Render a preset's curve to PNG",
		Long: `Render the easing curve of a preset as a PNG chart of value over time.

Flags:
  --out FILE      Output file (default <preset>.png)
  --size WxH      Image size, each side 16 to 2048 (default 480x320)
  --compare       Also draw the CSS solver's curve

` + presetFlagsHelp,
		Usage: "motion plot [preset] [--out FILE] [--size WxH] [--compare]",
		Run:   runPlot,
	})
}

func runPlot(args []string) error {
	p, err := parseArgs(args,
		append([]string{"out", "size"}, presetValueFlags...),
		append([]string{"compare"}, presetBoolFlags...),
	)
	if err != nil {
		return err
	}

	name := p.arg(0, "panel")
	cfg, _, err := loadPreset(name, p)
	if err != nil {
		return err
	}

	opts := plot.DefaultOptions()
	opts.Parametric = cfg.Parametric
	opts.Compare = p.bools["compare"]
	opts.Title = fmt.Sprintf("%s  %s  %v", name, cfg.Curve, cfg.Duration)
	if v, ok := p.values["size"]; ok {
		if opts.Width, opts.Height, err = parseSize(v); err != nil {
			return err
		}
	}

	out := p.values["out"]
	if out == "" {
		out = name + ".png"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := plot.Encode(f, plot.Render(cfg.Curve, opts)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

const minPlotSide = 16

func parseSize(s string) (int, int, error) {
	var w, h int
	n, err := fmt.Sscanf(s, "%dx%d", &w, &h)
	if err != nil || n != 2 || w < minPlotSide || h < minPlotSide || w > plot.MaxSide || h > plot.MaxSide {
		return 0, 0, fmt.Errorf("invalid --size %q (want WxH, each side %d to %d)", s, minPlotSide, plot.MaxSide)
	}
	return w, h, nil
}
