package render

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// maxLabeledTicks is the number of labeled powers of two an axis shows at most
const maxLabeledTicks = 10

// log2Ticks places ticks at powers of two
type log2Ticks struct{}

func (log2Ticks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= 0 || min > max {
		return nil
	}

	lo := math.Floor(math.Log2(min))
	hi := math.Ceil(math.Log2(max))

	step := 1.0
	for (hi-lo)/step > maxLabeledTicks {
		step *= 2
	}

	var ticks []plot.Tick
	for e := lo; e <= hi; e++ {
		v := math.Exp2(e)
		if math.Mod(e-lo, step) != 0 {
			// unlabeled ticks are minor
			ticks = append(ticks, plot.Tick{Value: v})
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}

	return ticks
}

// CompassTicks label the unit interval with the cardinal directions,
// clockwise from north.
func CompassTicks() []plot.Tick {
	return []plot.Tick{
		{Value: 0, Label: "North"},
		{Value: 0.25, Label: "East"},
		{Value: 0.5, Label: "South"},
		{Value: 0.75, Label: "West"},
		{Value: 1, Label: "North"},
	}
}
