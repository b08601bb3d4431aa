// Package config loads animation presets from motion.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/animation"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// FileName is the name of the optional preset file at the project root.
const FileName = "motion.yaml"

// ErrUnknownPreset is returned when a preset name is not defined.
var ErrUnknownPreset = errors.New("unknown preset")

// Config represents the optional motion.yaml configuration.
type Config struct {
	Namespace string            `yaml:"namespace,omitempty"`
	Presets   map[string]Preset `yaml:"presets,omitempty"`
}

// Preset describes one named animation.
type Preset struct {
	Curve      Curve    `yaml:"curve"`
	Duration   Duration `yaml:"duration"`
	Min        float64  `yaml:"min"`
	Max        float64  `yaml:"max"`
	Repeat     bool     `yaml:"repeat,omitempty"`
	Reverse    bool     `yaml:"reverse,omitempty"`
	Parametric bool     `yaml:"parametric,omitempty"`
}

// AnimationConfig converts the preset to an animator configuration.
func (p Preset) AnimationConfig() animation.Config {
	return animation.Config{
		Curve:      animation.Curve(p.Curve),
		Duration:   p.Duration.Std(),
		Min:        p.Min,
		Max:        p.Max,
		Repeat:     p.Repeat,
		Reverse:    p.Reverse,
		Parametric: p.Parametric,
	}
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	ModulePath string
	Namespace  string
	// File is the motion.yaml that was loaded, or empty when only the
	// built-in presets are in use.
	File    string
	Presets map[string]Preset
}

// Names returns the preset names in sorted order.
func (r *Resolved) Names() []string {
	names := make([]string, 0, len(r.Presets))
	for name := range r.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset looks up a preset by name.
func (r *Resolved) Preset(name string) (Preset, error) {
	p, ok := r.Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// LoadOptional reads motion.yaml if present.
func LoadOptional(dir string) (*Config, string, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Parse decodes motion.yaml contents.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, motionerrors.New("config.Parse", motionerrors.KindParsing,
			fmt.Errorf("failed to parse %s: %w", FileName, err))
	}
	return &cfg, nil
}

// Resolve loads motion.yaml (if present) on top of the built-in presets.
// A directory without go.mod is allowed; the namespace then falls back to
// the directory name.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, file, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	namespace := strings.TrimSpace(cfg.Namespace)
	if namespace == "" {
		namespace = defaultNamespace(modulePath, dir)
	}

	presets := Builtin()
	for name, p := range cfg.Presets {
		if err := validatePreset(name, p); err != nil {
			return nil, err
		}
		presets[name] = p
	}

	return &Resolved{
		Root:       dir,
		ModulePath: modulePath,
		Namespace:  namespace,
		File:       file,
		Presets:    presets,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod. Outside
// a module it returns the current directory.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultNamespace(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		modName, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "motion"
	}
	return base
}

func validatePreset(name string, p Preset) error {
	if strings.TrimSpace(name) == "" {
		return motionerrors.New("config.Resolve", motionerrors.KindConfig,
			errors.New("preset name must not be empty"))
	}
	if err := p.AnimationConfig().Validate(); err != nil {
		e := motionerrors.New("config.Resolve", motionerrors.KindConfig, err)
		e.Preset = name
		return e
	}
	return nil
}
