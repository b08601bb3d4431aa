package cmd

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/motion/cmd/motion/internal/config"
	"github.com/go-drift/motion/pkg/animation"
)

// canvas is the part of tcell.Screen the preview draws on.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

const (
	durationStep = 50 * time.Millisecond
	historySize  = 240
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// previewModel holds the preset being previewed and its animator.
type previewModel struct {
	resolved *config.Resolved
	names    []string
	index    int

	scheduler animation.Scheduler
	anim      *animation.Animator
	cfg       animation.Config
	history   []float64
	status    string
}

func newPreviewModel(r *config.Resolved, s animation.Scheduler, name string) (*previewModel, error) {
	m := &previewModel{resolved: r, names: r.Names(), scheduler: s}
	idx := slices.Index(m.names, name)
	if idx < 0 {
		_, err := r.Preset(name)
		return nil, err
	}
	if err := m.load(idx); err != nil {
		return nil, err
	}
	return m, nil
}

// load replaces the animator with one built from preset idx and plays it.
func (m *previewModel) load(idx int) error {
	preset, err := m.resolved.Preset(m.names[idx])
	if err != nil {
		return err
	}
	cfg := preset.AnimationConfig()
	anim, err := animation.New(cfg, animation.WithScheduler(m.scheduler))
	if err != nil {
		return err
	}

	if m.anim != nil {
		m.anim.Dispose()
	}
	m.index = idx
	m.cfg = cfg
	m.anim = anim
	m.history = m.history[:0]
	anim.AddListener(func(v float64) {
		if len(m.history) == historySize {
			m.history = append(m.history[:0], m.history[1:]...)
		}
		m.history = append(m.history, v)
	})
	anim.Play()
	return nil
}

// reload swaps in new presets, keeping the current one when it still exists.
func (m *previewModel) reload(r *config.Resolved) {
	current := m.names[m.index]
	m.resolved = r
	m.names = r.Names()
	idx := max(slices.Index(m.names, current), 0)
	if err := m.load(idx); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "reloaded " + config.FileName
}

func (m *previewModel) cycle(delta int) {
	n := len(m.names)
	if err := m.load(((m.index+delta)%n + n) % n); err != nil {
		m.status = err.Error()
	}
}

// handleKey applies a key press and reports whether the preview should quit.
func (m *previewModel) handleKey(key tcell.Key, r rune) bool {
	m.status = ""
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		m.anim.Stop()
		m.anim.Play()
	case tcell.KeyUp:
		m.setDuration(m.anim.Duration() + durationStep)
	case tcell.KeyDown:
		m.setDuration(max(m.anim.Duration()-durationStep, durationStep))
	case tcell.KeyTab:
		m.cycle(1)
	case tcell.KeyBacktab:
		m.cycle(-1)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return true
		case ' ':
			if m.anim.Playing() {
				m.anim.Pause()
			} else {
				m.anim.Play()
			}
		case 'r':
			m.anim.SetReverse(!m.anim.Reverse())
		case 'n':
			m.cycle(1)
		case 'p':
			m.cycle(-1)
		}
	}
	return false
}

func (m *previewModel) setDuration(d time.Duration) {
	if err := m.anim.SetDuration(d); err != nil {
		m.status = err.Error()
	}
}

func (m *previewModel) dispose() {
	if m.anim != nil {
		m.anim.Dispose()
	}
}

var (
	styleTitle  = tcell.StyleDefault.Bold(true)
	styleActive = tcell.StyleDefault.Reverse(true)
	styleBar    = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (m *previewModel) draw(c canvas) {
	width, height := c.Size()

	drawText(c, 1, 0, styleTitle, "motion preview · "+m.resolved.Namespace)

	x := 1
	for i, name := range m.names {
		style := tcell.StyleDefault
		if i == m.index {
			style = styleActive
		}
		x = drawText(c, x, 2, style, " "+name+" ") + 1
	}

	a := m.anim
	drawText(c, 1, 4, tcell.StyleDefault, fmt.Sprintf("curve %s  duration %v  range %g..%g",
		a.Curve(), a.Duration(), a.Min(), a.Max()))

	lo, hi := m.valueRange()
	barWidth := max(width-2, 1)
	filled := int(math.Round((a.Value() - lo) / (hi - lo) * float64(barWidth)))
	filled = min(max(filled, 0), barWidth)
	drawText(c, 1, 6, styleBar, strings.Repeat("█", filled))
	drawText(c, 1+filled, 6, styleDim, strings.Repeat("·", barWidth-filled))

	dir := "→"
	if a.Reverse() {
		dir = "←"
	}
	drawText(c, 1, 7, tcell.StyleDefault, fmt.Sprintf("value %.2f  position %.3f  %s  %s",
		a.Value(), a.Position(), dir, a.State()))

	drawText(c, 1, 9, styleBar, sparkline(m.history, lo, hi, barWidth))

	if m.status != "" {
		drawText(c, 1, height-2, styleError, m.status)
	}
	drawText(c, 1, height-1, styleDim, "space play/pause · enter restart · r reverse · ↑/↓ duration · tab next · q quit")
}

// valueRange returns the span the bar covers: the preset range widened by
// any overshoot seen so far.
func (m *previewModel) valueRange() (float64, float64) {
	lo, hi := math.Min(m.anim.Min(), m.anim.Max()), math.Max(m.anim.Min(), m.anim.Max())
	for _, v := range m.history {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func sparkline(values []float64, lo, hi float64, width int) string {
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for _, v := range values {
		level := int((v - lo) / (hi - lo) * float64(len(sparks)-1))
		b.WriteRune(sparks[min(max(level, 0), len(sparks)-1)])
	}
	return b.String()
}

// drawText writes s starting at (x, y) and returns the column after it.
func drawText(c canvas, x, y int, style tcell.Style, s string) int {
	width, height := c.Size()
	if y < 0 || y >= height {
		return x
	}
	for _, r := range s {
		if x >= width {
			break
		}
		c.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
