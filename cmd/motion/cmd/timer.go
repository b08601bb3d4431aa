package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-drift/motion/cmd/motion/internal/alarm"
	"github.com/go-drift/motion/cmd/motion/internal/config"
	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/loop"
	"github.com/go-drift/motion/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "timer",
		Short: "Run a countdown with a progress bar",
		Long: `Run a countdown timer with an animated progress bar and ring a chime
when it ends.

Flags:
  --label TEXT   Text shown before the bar
  --rings N      Number of chimes (default 4)
  --silent       Do not play the chime

If no audio device is available the terminal bell is used instead.`,
		Usage: "motion timer <duration> [--label TEXT] [--rings N] [--silent]",
		Run:   runTimer,
	})
}

type timerOptions struct {
	interval time.Duration
	label    string
	rings    int
	silent   bool
}

func runTimer(args []string) error {
	p, err := parseArgs(args, []string{"label", "rings"}, []string{"silent"})
	if err != nil {
		return err
	}
	if len(p.positional) == 0 {
		return fmt.Errorf("duration is required\n\nUsage: motion timer <duration>")
	}
	interval, err := config.ParseDuration(p.positional[0])
	if err != nil {
		return err
	}
	opts := timerOptions{interval: interval, label: p.values["label"], rings: 4, silent: p.bools["silent"]}
	if v, ok := p.values["rings"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid --rings %q", v)
		}
		opts.rings = n
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runCountdown(ctx, os.Stdout, loop.New(), opts, ring)
}

// runCountdown drives a countdown on l, redrawing the bar on w, and calls
// done once the interval elapses.
func runCountdown(ctx context.Context, w io.Writer, l *loop.Loop, opts timerOptions, done func(context.Context, io.Writer, timerOptions) error) error {
	finished := make(chan struct{})
	stopped := make(chan struct{})
	var setupErr error

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(stopped)
		err := l.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	l.Invoke(func() {
		sched := animation.NewIntervalScheduler(l, animation.DefaultInterval)
		countdown, err := widgets.NewCountdown(opts.interval, animation.WithScheduler(sched), animation.WithClock(l))
		if err != nil {
			setupErr = err
			l.Quit()
			return
		}
		lastCell := -1
		countdown.OnFraction = func(f float64) {
			if cell := int(f * barWidth); cell != lastCell {
				lastCell = cell
				fmt.Fprintf(w, "\r%s", progressLine(opts.label, f, countdown.Remaining()))
			}
		}
		countdown.OnDone = func() {
			fmt.Fprintf(w, "\r%s\n", progressLine(opts.label, 1, 0))
			close(finished)
			l.Quit()
		}
	})

	g.Go(func() error {
		select {
		case <-finished:
		case <-stopped:
			// OnDone closes finished before quitting the loop.
			select {
			case <-finished:
			default:
				return nil
			}
		case <-ctx.Done():
			return nil
		}
		return done(ctx, w, opts)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return setupErr
}

const barWidth = 40

func progressLine(label string, fraction float64, remaining time.Duration) string {
	filled := int(fraction * barWidth)
	filled = min(max(filled, 0), barWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if label != "" {
		label += " "
	}
	return fmt.Sprintf("%s%s %s", label, bar, remaining.Round(time.Second))
}

// ring plays the chime, falling back to the terminal bell.
func ring(ctx context.Context, w io.Writer, opts timerOptions) error {
	if opts.silent || opts.rings == 0 {
		return nil
	}
	err := alarm.Play(ctx, opts.rings)
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	fmt.Fprintf(os.Stderr, "Warning: audio unavailable: %v\n", err)
	fmt.Fprint(w, "\a")
	return nil
}
