package render

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruppe-adler/meh-plots/internal/fit"
	"gonum.org/v1/plot/plotter"
)

func logConfig() Config {
	cfg := DefaultConfig()
	cfg.X = Axis{Label: "Elevation / m", Scale: Log2}
	cfg.Y = Axis{Label: "Gradient magnitude", Scale: Log2}
	return cfg
}

func TestSaveFormats(t *testing.T) {
	dir := t.TempDir()

	for _, ext := range []string{"png", "svg", "pdf"} {
		c := New(logConfig())
		err := c.Draw(Series{Name: "1", X: []float64{1, 2, 4, 8}, Y: []float64{3, 5, 2, 9}})
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}
		err = c.Draw(Curve{Model: &fit.Ratio{A: 2, Xs: fit.Range{XMin: 1, XMax: 8}, Label: "Pure exp"}})
		if err != nil {
			t.Fatalf("Draw failed: %v", err)
		}

		path := filepath.Join(dir, "plot."+ext)
		if err := c.Save(path); err != nil {
			t.Fatalf("Save(%s) failed: %v", path, err)
		}

		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("expected non-empty %s, got %v", path, err)
		}
	}
}

func TestSaveWriteError(t *testing.T) {
	c := New(logConfig())
	if err := c.Draw(Series{Name: "1", X: []float64{1, 2}, Y: []float64{1, 2}}); err != nil {
		t.Fatal(err)
	}

	tests := []string{
		filepath.Join(t.TempDir(), "plot.unknown"),
		filepath.Join(t.TempDir(), "missing", "plot.png"),
	}
	for _, path := range tests {
		err := c.Save(path)
		var werr *WriteError
		if !errors.As(err, &werr) {
			t.Errorf("Save(%s): expected *WriteError, got %v", path, err)
			continue
		}
		if werr.Path != path {
			t.Errorf("expected path %s, got %s", path, werr.Path)
		}
	}
}

func TestLogAxesMaskNonPositive(t *testing.T) {
	c := New(logConfig())

	pts := c.points(
		[]float64{-1, 0, 1, 2, math.NaN(), 4},
		[]float64{1, 1, 0, 3, 1, math.Inf(1)},
	)
	want := plotter.XYs{{X: 2, Y: 3}}
	if len(pts) != len(want) || pts[0] != want[0] {
		t.Errorf("expected %v, got %v", want, pts)
	}

	// a series without anything to show still saves
	if err := c.Draw(Series{Name: "empty", X: []float64{0}, Y: []float64{0}}); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(filepath.Join(t.TempDir(), "plot.png")); err != nil {
		t.Errorf("Save failed: %v", err)
	}
}

func TestLinearAxisKeepsNonPositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Y.Scale = Log2

	c := New(cfg)
	pts := c.points([]float64{0, -0.5, 0.5}, []float64{1, 1, 1})
	if len(pts) != 3 {
		t.Errorf("expected all points on a linear x axis, got %v", pts)
	}
}

func TestColorCycle(t *testing.T) {
	c := New(logConfig())

	c.Draw(Series{Name: "Data points", X: []float64{1, 2}, Y: []float64{1, 2}, Style: Scatter})
	if c.color != 2 {
		t.Errorf("expected scatter to take two colors, got %d", c.color)
	}

	c.Draw(Curve{Model: &fit.Ratio{A: 1, Xs: fit.Range{XMin: 1, XMax: 2}, Label: "Pure exp"}})
	if c.color != 3 || c.Items() != 2 {
		t.Errorf("expected 3 colors and 2 items, got %d and %d", c.color, c.Items())
	}
}

func TestDrawRejectsMismatchedSeries(t *testing.T) {
	c := New(DefaultConfig())
	if err := c.Draw(Series{Name: "bad", X: []float64{1, 2}, Y: []float64{1}}); err == nil {
		t.Error("expected error for mismatched series")
	}
	if err := c.Draw(Series{Name: "bad", X: []float64{1}, Y: []float64{1}, Style: Style(7)}); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestSimplify(t *testing.T) {
	cfg := logConfig()
	cfg.Simplify = 1e-3
	c := New(cfg)

	// a straight line in log-log space collapses to its endpoints
	var pts plotter.XYs
	for e := 0; e <= 10; e++ {
		x := math.Exp2(float64(e))
		pts = append(pts, plotter.XY{X: x, Y: x * x})
	}

	out := c.simplify(pts)
	if len(out) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(out), out)
	}
	if math.Abs(out[0].X-1) > 1e-9 || math.Abs(out[1].X-1024) > 1e-6 || math.Abs(out[1].Y-1024*1024) > 1e-3 {
		t.Errorf("unexpected endpoints %v", out)
	}

	// a kink survives
	kinked := plotter.XYs{{X: 1, Y: 1}, {X: 2, Y: 64}, {X: 4, Y: 2}}
	if got := c.simplify(kinked); len(got) != 3 {
		t.Errorf("expected the kink to stay, got %v", got)
	}
}

func TestLog2Ticks(t *testing.T) {
	ticks := log2Ticks{}.Ticks(3, 100)

	var labeled []float64
	for _, tick := range ticks {
		if tick.Label != "" {
			labeled = append(labeled, tick.Value)
		}
	}

	want := []float64{2, 4, 8, 16, 32, 64, 128}
	if len(labeled) != len(want) {
		t.Fatalf("expected %v, got %v", want, labeled)
	}
	for i := range want {
		if labeled[i] != want[i] {
			t.Errorf("expected %v, got %v", want, labeled)
			break
		}
	}

	if ticks := (log2Ticks{}).Ticks(-1, 10); ticks != nil {
		t.Errorf("expected no ticks for a non-positive range, got %v", ticks)
	}

	wide := log2Ticks{}.Ticks(1.0/1024, 1<<20)
	n := 0
	for _, tick := range wide {
		if tick.Label != "" {
			n++
		}
	}
	if n > maxLabeledTicks+1 {
		t.Errorf("expected at most %d labels, got %d", maxLabeledTicks+1, n)
	}
}

func TestCompassAxis(t *testing.T) {
	cfg := DefaultConfig()
	cfg.X = Axis{Label: "Direction", Min: 0, Max: 1, Ticks: CompassTicks(), Grid: true}
	cfg.Y = Axis{Label: "Steepness", Scale: Log2}

	c := New(cfg)
	if err := c.Draw(Series{Name: "1", X: []float64{0.1, 0.4, 0.9}, Y: []float64{0.5, 0.25, 0.125}}); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(filepath.Join(t.TempDir(), "slopedir.svg")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if c.plot.X.Min != 0 || c.plot.X.Max != 1 {
		t.Errorf("expected x range [0, 1], got [%g, %g]", c.plot.X.Min, c.plot.X.Max)
	}
}
