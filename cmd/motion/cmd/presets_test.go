package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-drift/motion/cmd/motion/internal/config"
)

func TestWritePresetsTable(t *testing.T) {
	r := &config.Resolved{Namespace: "shell", Presets: config.Builtin()}

	var buf bytes.Buffer
	if err := writePresetsTable(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{"Namespace: shell (built-in presets)", "panel", "scroll", "300ms", "0..100", "repeat"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "osd") > strings.Index(out, "panel") {
		t.Error("expected presets in sorted order")
	}
}

func TestWritePresetsYAML(t *testing.T) {
	r := &config.Resolved{Namespace: "shell", Presets: config.Builtin()}

	var buf bytes.Buffer
	if err := writePresetsYAML(&buf, r); err != nil {
		t.Fatal(err)
	}
	parsed, err := config.Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("output does not parse back: %v\n%s", err, buf.String())
	}
	if parsed.Namespace != "shell" || len(parsed.Presets) != len(r.Presets) {
		t.Errorf("unexpected round trip %+v", parsed)
	}
	for name, p := range r.Presets {
		if parsed.Presets[name] != p {
			t.Errorf("preset %q changed: %+v", name, parsed.Presets[name])
		}
	}
}
