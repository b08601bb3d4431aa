package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/cmd/motion/internal/config"
	"github.com/go-drift/motion/pkg/animation"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Preview presets live in the terminal",
		Long: `Preview animation presets live in the terminal. The terminal acts as a
host surface: animations tick once per redraw.

Keys:
  space       Play or pause
  enter       Restart from the beginning
  r           Reverse direction
  up/down     Lengthen or shorten the duration by 50ms
  tab/n, p    Next or previous preset
  q, esc      Quit

Flags:
  --watch     Reload motion.yaml when it changes
  --fps N     Redraw rate, 1 to 240 (default 60)`,
		Usage: "motion preview [preset] [--watch] [--fps N]",
		Run:   runPreview,
	})
}

func runPreview(args []string) error {
	p, err := parseArgs(args, []string{"fps"}, []string{"watch"})
	if err != nil {
		return err
	}
	fps, err := parseIntFlag(p, "fps", 60, maxFPS)
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

	frames := animation.NewFrameScheduler(nil)
	model, err := newPreviewModel(resolved, frames, p.arg(0, "panel"))
	if err != nil {
		return err
	}
	defer model.dispose()

	var (
		reloads   <-chan string
		watchErrs <-chan error
	)
	if p.bools["watch"] {
		watcher, err := config.NewWatcher(root)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
		defer watcher.Close()
		reloads = watcher.Events
		watchErrs = watcher.Errors
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval(fps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if model.handleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case _, ok := <-reloads:
			if !ok {
				reloads = nil
				continue
			}
			r, err := config.Resolve(root)
			if err != nil {
				model.status = err.Error()
				continue
			}
			model.reload(r)

		case err, ok := <-watchErrs:
			if !ok {
				watchErrs = nil
				continue
			}
			model.status = "watch: " + err.Error()

		case <-ticker.C:
			frames.Step()
			screen.Clear()
			model.draw(screen)
			screen.Show()
		}
	}
}

// maxFPS bounds --fps so the frame interval stays well above zero.
const maxFPS = 240

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(min(max(fps, 1), maxFPS))
}

// parseIntFlag reads a positive integer flag no larger than limit.
func parseIntFlag(p parsedArgs, name string, fallback, limit int) (int, error) {
	v, ok := p.values[name]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > limit {
		return 0, fmt.Errorf("invalid --%s %q (want 1 to %d)", name, v, limit)
	}
	return n, nil
}
