package render

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"gonum.org/v1/plot/plotter"
)

// simplify thins out a line with Douglas-Peucker. The tolerance applies in
// axis space (log2 for log axes) normalized to the extent of the line, so it
// is a fraction of what ends up on screen.
func (c *Canvas) simplify(pts plotter.XYs) plotter.XYs {
	if len(pts) < 3 {
		return pts
	}

	ls := make(orb.LineString, len(pts))
	for i, p := range pts {
		ls[i] = orb.Point{toAxis(c.cfg.X, p.X), toAxis(c.cfg.Y, p.Y)}
	}

	bound := ls.Bound()
	width, height := bound.Right()-bound.Left(), bound.Top()-bound.Bottom()
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}

	for i := range ls {
		ls[i] = orb.Point{(ls[i][0] - bound.Left()) / width, (ls[i][1] - bound.Bottom()) / height}
	}

	simplified, ok := simplify.DouglasPeucker(c.cfg.Simplify).Simplify(ls).(orb.LineString)
	if !ok || len(simplified) < 2 {
		return pts
	}

	out := make(plotter.XYs, len(simplified))
	for i, p := range simplified {
		out[i] = plotter.XY{
			X: fromAxis(c.cfg.X, bound.Left()+p[0]*width),
			Y: fromAxis(c.cfg.Y, bound.Bottom()+p[1]*height),
		}
	}

	return out
}

func toAxis(a Axis, v float64) float64 {
	if a.Scale == Log2 {
		return math.Log2(v)
	}
	return v
}

func fromAxis(a Axis, v float64) float64 {
	if a.Scale == Log2 {
		return math.Exp2(v)
	}
	return v
}
