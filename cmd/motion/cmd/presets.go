package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/cmd/motion/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "presets",
		Short: "List animation presets",
		Long: `List the animation presets available in the current project.

Presets come from motion.yaml at the project root (the nearest directory
containing go.mod) layered over the built-in presets.

Flags:
  --yaml    Print the presets as motion.yaml instead of a table`,
		Usage: "motion presets [--yaml]",
		Run:   runPresets,
	})
}

func runPresets(args []string) error {
	p, err := parseArgs(args, nil, []string{"yaml"})
	if err != nil {
		return err
	}

	root, err := config.FindProjectRoot()
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(root)
	if err != nil {
		return err
	}

	if p.bools["yaml"] {
		return writePresetsYAML(os.Stdout, resolved)
	}
	return writePresetsTable(os.Stdout, resolved)
}

func writePresetsTable(w io.Writer, r *config.Resolved) error {
	source := "built-in presets"
	if r.File != "" {
		source = r.File
	}
	fmt.Fprintf(w, "Namespace: %s (%s)\n\n", r.Namespace, source)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCURVE\tDURATION\tRANGE\tFLAGS")
	for _, name := range r.Names() {
		preset := r.Presets[name]
		fmt.Fprintf(tw, "%s\t%s\t%v\t%g..%g\t%s\n",
			name,
			preset.Curve.Name(),
			preset.Duration.Std(),
			preset.Min, preset.Max,
			presetFlags(preset),
		)
	}
	return tw.Flush()
}

func presetFlags(p config.Preset) string {
	var flags []string
	if p.Repeat {
		flags = append(flags, "repeat")
	}
	if p.Reverse {
		flags = append(flags, "reverse")
	}
	if p.Parametric {
		flags = append(flags, "parametric")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func writePresetsYAML(w io.Writer, r *config.Resolved) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(config.Config{Namespace: r.Namespace, Presets: r.Presets}); err != nil {
		return err
	}
	return enc.Close()
}
