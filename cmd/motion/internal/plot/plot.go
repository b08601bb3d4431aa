// Package plot renders easing curves to images.
package plot

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/motion/pkg/animation"
)

// supersample is the factor the curve is drawn at before being scaled down,
// which smooths the strokes.
const supersample = 3

// MaxSide bounds each side of a rendered plot.
const MaxSide = 2048

// Options controls Render.
type Options struct {
	Width, Height int
	// Samples is the number of points along the timeline. Zero uses Width.
	Samples int
	// Title is printed in the top-left corner.
	Title string
	// Parametric plots the CSS solver's curve as the primary series, for
	// animators configured with Parametric.
	Parametric bool
	// Compare also draws the other evaluation of the same descriptor.
	Compare bool
}

// DefaultOptions returns a 480x320 plot.
func DefaultOptions() Options {
	return Options{Width: 480, Height: 320}
}

// Series is one sampled curve.
type Series struct {
	Color  color.RGBA
	Points []float64
}

// Sample evaluates ease at n+1 evenly spaced positions from 0 to 1.
func Sample(ease func(float64) float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := range out {
		out[i] = ease(float64(i) / float64(n))
	}
	return out
}

// Bounds returns the value range covered by the series, always including
// [0, 1].
func Bounds(series ...Series) (lo, hi float64) {
	lo, hi = 0, 1
	for _, s := range series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// Render draws c as a value-over-time chart.
func Render(c animation.Curve, opts Options) *image.RGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = DefaultOptions().Width, DefaultOptions().Height
	}
	opts.Width, opts.Height = min(opts.Width, MaxSide), min(opts.Height, MaxSide)
	n := opts.Samples
	if n <= 0 {
		n = opts.Width
	}

	series := Plotted(c, opts, n)

	big := image.NewRGBA(image.Rect(0, 0, opts.Width*supersample, opts.Height*supersample))
	draw.Draw(big, big.Bounds(), image.NewUniform(colornames.White), image.Point{}, draw.Src)

	lo, hi := Bounds(series...)
	pad := (hi - lo) * 0.08
	ch := chart{img: big, lo: lo - pad, hi: hi + pad, margin: 24 * supersample}

	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		ch.hline(v, colornames.Lightgrey)
		ch.vline(v, colornames.Lightgrey)
	}
	ch.hline(0, colornames.Gray)
	ch.hline(1, colornames.Gray)
	for _, s := range series {
		ch.polyline(s.Points, s.Color, supersample)
	}

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), big, big.Bounds(), draw.Src, nil)

	title := opts.Title
	if title == "" {
		title = c.String()
	}
	label(out, 6, 14, title, colornames.Black)
	if opts.Compare {
		primary, other := "blend", "css"
		if opts.Parametric {
			primary, other = other, primary
		}
		label(out, 6, opts.Height-6, primary, colornames.Steelblue)
		label(out, 54, opts.Height-6, other, colornames.Darkorange)
	}
	return out
}

// Plotted returns the series Render draws for c with n samples: first the
// evaluation an animator with opts.Parametric uses, then the other one when
// opts.Compare is set.
func Plotted(c animation.Curve, opts Options, n int) []Series {
	primary, other := c.Ease, c.Parametric()
	if opts.Parametric {
		primary, other = other, primary
	}
	series := []Series{{Color: colornames.Steelblue, Points: Sample(primary, n)}}
	if opts.Compare {
		series = append(series, Series{Color: colornames.Darkorange, Points: Sample(other, n)})
	}
	return series
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func label(img draw.Image, x, y int, text string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

type chart struct {
	img    *image.RGBA
	lo, hi float64
	margin int
}

func (c chart) point(t, v float64) (int, int) {
	b := c.img.Bounds()
	w := float64(b.Dx() - 2*c.margin)
	h := float64(b.Dy() - 2*c.margin)
	x := float64(c.margin) + t*w
	y := float64(c.margin) + (1-(v-c.lo)/(c.hi-c.lo))*h
	return int(math.Round(x)), int(math.Round(y))
}

func (c chart) hline(v float64, col color.RGBA) {
	x0, y := c.point(0, v)
	x1, _ := c.point(1, v)
	for x := x0; x <= x1; x++ {
		c.img.SetRGBA(x, y, col)
	}
}

func (c chart) vline(t float64, col color.RGBA) {
	x, y0 := c.point(t, c.hi)
	_, y1 := c.point(t, c.lo)
	for y := y0; y <= y1; y++ {
		c.img.SetRGBA(x, y, col)
	}
}

func (c chart) polyline(points []float64, col color.RGBA, width int) {
	n := len(points) - 1
	for i := 1; i <= n; i++ {
		x0, y0 := c.point(float64(i-1)/float64(n), points[i-1])
		x1, y1 := c.point(float64(i)/float64(n), points[i])
		c.segment(x0, y0, x1, y1, col, width)
	}
}

// segment draws a line with Bresenham's algorithm, stamping a square brush.
func (c chart) segment(x0, y0, x1, y1 int, col color.RGBA, width int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		for ox := -width / 2; ox <= width/2; ox++ {
			for oy := -width / 2; oy <= width/2; oy++ {
				c.img.SetRGBA(x0+ox, y0+oy, col)
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
