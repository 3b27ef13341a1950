package dem

import (
	"fmt"
	"io"
)

const (
	// BucketSize is the elevation range of one histogram bucket in metres
	BucketSize = 32.0

	// DefaultTop is the elevation the histogram covers at least
	DefaultTop = 8900.0

	// MinElevation is the exclusive lower limit for cells to be counted.
	// Sea level and below is treated as water.
	MinElevation = 1.0
)

// Histogram accumulates the area covered by each elevation bucket
// over one or more rasters.
type Histogram struct {
	Area []float64
}

// NewHistogram returns an empty histogram spanning 0 to DefaultTop
func NewHistogram() *Histogram {
	top := DefaultTop
	return &Histogram{Area: make([]float64, int(top/BucketSize))}
}

// Add counts every valid cell above MinElevation of raster.
// Cell sizes are assumed to be in metres.
func (h *Histogram) Add(raster EsriASCIIRaster) {
	area := raster.CellArea()

	for r := uint(0); r < raster.Nrows; r++ {
		for c := uint(0); c < raster.Ncols; c++ {
			if !raster.Valid(c, r) {
				continue
			}

			z := raster.Z(c, r)
			if z <= MinElevation {
				continue
			}

			bucket := int(z / BucketSize)
			if bucket >= len(h.Area) {
				h.Area = append(h.Area, make([]float64, bucket+1-len(h.Area))...)
			}
			h.Area[bucket] += area
		}
	}
}

// Total returns the summed area of all buckets
func (h *Histogram) Total() float64 {
	total := 0.0
	for _, a := range h.Area {
		total += a
	}
	return total
}

// WriteTo writes one line per bucket holding the bucket center elevation
// and the covered area per metre of elevation.
func (h *Histogram) WriteTo(w io.Writer) (int64, error) {
	var written int64

	for i, a := range h.Area {
		z0 := BucketSize * float64(i)
		z1 := BucketSize * float64(i+1)

		n, err := fmt.Fprintf(w, "%.8e %.16g\n", 0.5*(z0+z1), a/(z1-z0))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	return written, nil
}
