package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/loop"
)

func init() {
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Print every tick of a preset",
		Long: `Run a preset in real time on the fixed-interval scheduler and print
one line per tick: elapsed time, timeline position and value.

Repeating presets run for --cycles cycles (default 2). Interrupt with
Ctrl-C to stop early.

Flags:
  --interval D   Tick interval (default 16ms)
  --cycles N     Cycles to trace for repeating presets
  --csv          Print comma-separated values

` + presetFlagsHelp,
		Usage: "motion trace [preset] [flags]",
		Run:   runTrace,
	})
}

type traceSample struct {
	elapsed  time.Duration
	position float64
	value    float64
	reverse  bool
}

type traceOptions struct {
	interval time.Duration
	cycles   int
	csv      bool
}

func runTrace(args []string) error {
	p, err := parseArgs(args,
		append([]string{"interval", "cycles"}, presetValueFlags...),
		append([]string{"csv"}, presetBoolFlags...),
	)
	if err != nil {
		return err
	}
	opts, err := parseTraceOptions(p)
	if err != nil {
		return err
	}
	cfg, _, err := loadPreset(p.arg(0, "panel"), p)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return trace(ctx, os.Stdout, loop.New(), cfg, opts)
}

func parseTraceOptions(p parsedArgs) (traceOptions, error) {
	opts := traceOptions{
		interval: animation.DefaultInterval,
		cycles:   2,
		csv:      p.bools["csv"],
	}
	if v, ok := p.values["interval"]; ok {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return opts, fmt.Errorf("invalid --interval %q", v)
		}
		opts.interval = d
	}
	if v, ok := p.values["cycles"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("invalid --cycles %q", v)
		}
		opts.cycles = n
	}
	return opts, nil
}

// trace plays cfg on l and writes samples to w until the animation finishes,
// the cycle budget is spent, or ctx is cancelled.
func trace(ctx context.Context, w io.Writer, l *loop.Loop, cfg animation.Config, opts traceOptions) error {
	samples := make(chan traceSample, 64)
	var setupErr error

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(samples)
		err := l.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		if opts.csv {
			fmt.Fprintln(w, "elapsed_ms,position,value")
		}
		for s := range samples {
			writeSample(w, s, opts.csv)
		}
		return nil
	})

	l.Invoke(func() {
		sched := animation.NewIntervalScheduler(l, opts.interval)
		anim, err := animation.New(cfg, animation.WithScheduler(sched), animation.WithClock(l))
		if err != nil {
			setupErr = err
			l.Quit()
			return
		}

		start := l.Now()
		cycles := 0
		lastReverse := anim.Reverse()
		anim.AddListener(func(v float64) {
			samples <- traceSample{
				elapsed:  l.Now().Sub(start),
				position: anim.Position(),
				value:    v,
				reverse:  anim.Reverse(),
			}
			if anim.Reverse() != lastReverse {
				lastReverse = anim.Reverse()
				cycles++
				if cycles >= opts.cycles {
					anim.Dispose()
					l.Quit()
				}
			}
		})
		anim.AddFinishedListener(func() {
			anim.Dispose()
			l.Quit()
		})
		anim.Play()
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return setupErr
}

func writeSample(w io.Writer, s traceSample, csv bool) {
	ms := float64(s.elapsed) / float64(time.Millisecond)
	if csv {
		fmt.Fprintf(w, "%.1f,%.4f,%.4f\n", ms, s.position, s.value)
		return
	}
	dir := "→"
	if s.reverse {
		dir = "←"
	}
	fmt.Fprintf(w, "%8.1fms  %s pos=%.4f  value=%.4f\n", ms, dir, s.position, s.value)
}
