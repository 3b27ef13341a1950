// Package fit fits closed-form and polynomial models to (x, y) observations.
package fit

import (
	"gonum.org/v1/gonum/floats"
)

// SamplePoints is the number of points a fitted curve is drawn with
const SamplePoints = 128

// rangePadding widens the observed x range when sampling a curve
const rangePadding = 1.05

// Range is the observed x extent of the data a model was fitted to
type Range struct {
	XMin float64
	XMax float64
}

// Param is a named fitted parameter
type Param struct {
	Name  string
	Value float64
}

// Model is a fitted function of x
type Model interface {
	Name() string
	Eval(x float64) float64
	Range() Range
	Params() []Param
}

// Domain returns the interval a model is sampled on
func Domain(r Range) (lo, hi float64) {
	return r.XMin / rangePadding, r.XMax * rangePadding
}

// Sample evaluates m at n evenly spaced points covering Domain(m.Range()),
// both endpoints included.
func Sample(m Model, n int) (xs, ys []float64) {
	lo, hi := Domain(m.Range())
	xs = floats.Span(make([]float64, n), lo, hi)
	xs[n-1] = hi
	ys = make([]float64, n)
	for i, x := range xs {
		ys[i] = m.Eval(x)
	}
	return xs, ys
}

func observedRange(x []float64) Range {
	return Range{XMin: floats.Min(x), XMax: floats.Max(x)}
}

func checkSizes(x, y []float64) error {
	if len(x) == 0 {
		return ErrDegenerate
	}
	if len(x) != len(y) {
		return ErrDegenerate
	}
	return nil
}
