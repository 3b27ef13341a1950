package table

import (
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
)

// Table is a numeric matrix stored column by column
type Table struct {
	Columns [][]float64

	// Peaks holds, per column, the row of its maximum. Ties resolve to the
	// first row.
	Peaks []int
}

// Series is one named dataset of (x, y) observations
type Series struct {
	Name string
	X    []float64
	Y    []float64

	// Peak is the row of the largest y value
	Peak int
}

// Len returns the number of observations
func (s Series) Len() int {
	return len(s.X)
}

// Bound returns the extent of the observations
func (s Series) Bound() orb.Bound {
	points := make(orb.MultiPoint, len(s.X))
	for i := range s.X {
		points[i] = orb.Point{s.X[i], s.Y[i]}
	}
	return points.Bound()
}

// NameFromPath derives a series name from a file name: "dir/grad.tsv.gz" -> "grad"
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

func argmax(values []float64) int {
	peak := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[peak] {
			peak = i
		}
	}
	return peak
}
