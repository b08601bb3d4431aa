package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/loop"
)

func TestTrace_RunsToCompletion(t *testing.T) {
	cfg := animation.Config{
		Curve:    animation.ScrollCurve,
		Duration: 40 * time.Millisecond,
		Max:      100,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := trace(ctx, &buf, loop.New(), cfg, traceOptions{interval: 5 * time.Millisecond, cycles: 1, csv: true})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "elapsed_ms,position,value" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if len(lines) < 3 {
		t.Fatalf("expected several samples, got %d lines", len(lines))
	}
	if last := lines[len(lines)-1]; !strings.HasSuffix(last, ",1.0000,100.0000") {
		t.Errorf("expected final sample at the end of the timeline, got %q", last)
	}
}

func TestTrace_RepeatStopsAfterCycles(t *testing.T) {
	cfg := animation.Config{
		Curve:    animation.LinearCurve,
		Duration: 20 * time.Millisecond,
		Max:      1,
		Repeat:   true,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := trace(ctx, &buf, loop.New(), cfg, traceOptions{interval: 2 * time.Millisecond, cycles: 3})
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("expected trace to stop on its own")
	}
	if !strings.Contains(buf.String(), "←") {
		t.Error("expected reverse samples")
	}
}

func TestTrace_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	err := trace(ctx, &buf, loop.New(), animation.Config{}, traceOptions{interval: time.Millisecond, cycles: 1})
	if !errors.Is(err, animation.ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestParseTraceOptions(t *testing.T) {
	p, _ := parseArgs([]string{"--interval", "8ms", "--cycles", "4", "--csv"},
		[]string{"interval", "cycles"}, []string{"csv"})
	opts, err := parseTraceOptions(p)
	if err != nil {
		t.Fatal(err)
	}
	if opts.interval != 8*time.Millisecond || opts.cycles != 4 || !opts.csv {
		t.Errorf("unexpected options %+v", opts)
	}

	p, _ = parseArgs([]string{"--cycles", "0"}, []string{"cycles"}, nil)
	if _, err := parseTraceOptions(p); err == nil {
		t.Error("expected error for zero cycles")
	}
}
