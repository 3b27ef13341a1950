// Package render draws data series and fitted curves onto a single figure.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gruppe-adler/meh-plots/internal/fit"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Scale of an axis
type Scale int

const (
	// Linear axis
	Linear Scale = iota
	// Log2 is a logarithmic axis with ticks at powers of two
	Log2
)

// Axis configures one axis of the figure
type Axis struct {
	Label string
	Scale Scale

	// Min and Max fix the axis range if Min < Max
	Min float64
	Max float64

	// Ticks replace the automatic tick marks if set
	Ticks []plot.Tick

	// Grid draws a line across the plot at each tick
	Grid bool
}

func (a Axis) visible(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return a.Scale != Log2 || v > 0
}

func (a Axis) fixed() bool {
	return a.Min < a.Max
}

// Config of a figure
type Config struct {
	X Axis
	Y Axis

	Width    vg.Length
	Height   vg.Length
	FontSize vg.Length

	// Simplify is the Douglas-Peucker tolerance for line series, as a
	// fraction of the plotted extent. Zero draws every point.
	Simplify float64
}

// DefaultConfig is a 14cm x 8cm figure with 8pt text
func DefaultConfig() Config {
	return Config{
		Width:    14 * vg.Centimeter,
		Height:   8 * vg.Centimeter,
		FontSize: vg.Points(8),
	}
}

const (
	scatterAlpha  = 0x60
	scatterRadius = 0.25
	thumbRadius   = 2
	lineWidth     = 1
)

// Canvas is the drawing context of one figure. Create it with New, draw the
// items and Save it once.
type Canvas struct {
	cfg   Config
	plot  *plot.Plot
	color int
	items int
}

// New creates a canvas with the axes configured
func New(cfg Config) *Canvas {
	p := plot.New()

	configureAxis(&p.X, cfg.X, cfg.FontSize)
	configureAxis(&p.Y, cfg.Y, cfg.FontSize)

	p.Legend.Top = true
	if cfg.FontSize > 0 {
		p.Legend.TextStyle.Font.Size = cfg.FontSize
	}

	if cfg.X.Grid || cfg.Y.Grid {
		grid := plotter.NewGrid()
		if !cfg.X.Grid {
			grid.Vertical.Color = nil
		}
		if !cfg.Y.Grid {
			grid.Horizontal.Color = nil
		}
		p.Add(grid)
	}

	return &Canvas{cfg: cfg, plot: p}
}

func configureAxis(axis *plot.Axis, cfg Axis, fontSize vg.Length) {
	axis.Label.Text = cfg.Label

	if fontSize > 0 {
		axis.Label.TextStyle.Font.Size = fontSize
		axis.Tick.Label.Font.Size = fontSize
	}

	if cfg.Scale == Log2 {
		axis.Scale = plot.LogScale{}
		axis.Tick.Marker = log2Ticks{}
	}

	if len(cfg.Ticks) > 0 {
		axis.Tick.Marker = plot.ConstantTicks(cfg.Ticks)
	}
}

// Items returns the number of items drawn so far
func (c *Canvas) Items() int {
	return c.items
}

// Draw adds item to the figure and to the legend
func (c *Canvas) Draw(item Item) error {
	switch it := item.(type) {
	case Series:
		return c.drawSeries(it)
	case Curve:
		return c.drawCurve(it)
	default:
		return fmt.Errorf("render: unknown item %T", item)
	}
}

func (c *Canvas) nextColor() color.Color {
	col := plotutil.Color(c.color)
	c.color++
	return col
}

func (c *Canvas) drawSeries(s Series) error {
	if len(s.X) != len(s.Y) {
		return fmt.Errorf("render: series %q has %d x and %d y values", s.Name, len(s.X), len(s.Y))
	}

	pts := c.points(s.X, s.Y)
	if len(pts) < len(s.X) {
		logrus.WithFields(logrus.Fields{
			"series":  s.Name,
			"dropped": len(s.X) - len(pts),
		}).Debug("Dropped points outside the axis domain")
	}

	switch s.Style {
	case Scatter:
		return c.addScatter(s.Name, pts)
	case Line:
		if c.cfg.Simplify > 0 {
			pts = c.simplify(pts)
		}
		return c.addLine(s.Name, pts)
	default:
		return fmt.Errorf("render: unknown style %d for series %q", s.Style, s.Name)
	}
}

func (c *Canvas) drawCurve(curve Curve) error {
	xs, ys := fit.Sample(curve.Model, fit.SamplePoints)
	return c.addLine(curve.Model.Name(), c.points(xs, ys))
}

// points keeps the observations both axes can show. Log axes drop values <= 0.
func (c *Canvas) points(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if c.cfg.X.visible(xs[i]) && c.cfg.Y.visible(ys[i]) {
			pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		}
	}
	return pts
}

func (c *Canvas) addLine(name string, pts plotter.XYs) error {
	col := c.nextColor()

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("render: %s: %w", name, err)
	}
	line.LineStyle.Color = col
	line.LineStyle.Width = vg.Points(lineWidth)

	if len(pts) > 0 {
		c.plot.Add(line)
	}
	c.plot.Legend.Add(name, line)
	c.items++

	return nil
}

func (c *Canvas) addScatter(name string, pts plotter.XYs) error {
	col := c.nextColor()

	// a scatter takes up two colors, so fitted curves drawn after the raw
	// points don't share the neighbouring hues
	c.color++

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("render: %s: %w", name, err)
	}
	scatter.GlyphStyle = draw.GlyphStyle{
		Color:  withAlpha(col, scatterAlpha),
		Radius: vg.Points(scatterRadius),
		Shape:  draw.CircleGlyph{},
	}

	// the dots are too small to be seen in the legend
	thumb := &plotter.Scatter{
		GlyphStyle: draw.GlyphStyle{
			Color:  col,
			Radius: vg.Points(thumbRadius),
			Shape:  draw.CircleGlyph{},
		},
	}

	if len(pts) > 0 {
		c.plot.Add(scatter)
	}
	c.plot.Legend.Add(name, thumb)
	c.items++

	return nil
}

func withAlpha(col color.Color, alpha uint8) color.Color {
	r, g, b, _ := col.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

// Save writes the figure. The format follows the file extension.
func (c *Canvas) Save(path string) error {
	applyRange(&c.plot.X, c.cfg.X)
	applyRange(&c.plot.Y, c.cfg.Y)

	if err := c.plot.Save(c.cfg.Width, c.cfg.Height, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

func applyRange(axis *plot.Axis, cfg Axis) {
	if cfg.fixed() {
		axis.Min, axis.Max = cfg.Min, cfg.Max
	}

	if cfg.Scale != Log2 {
		return
	}

	// a log axis without any data still needs a positive range
	if !(axis.Min > 0 && axis.Max >= axis.Min && !math.IsInf(axis.Max, 0)) {
		axis.Min, axis.Max = 1, 2
	}
	if axis.Min == axis.Max {
		axis.Min, axis.Max = axis.Min/2, axis.Max*2
	}
}
