package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Ratio is the model y = x / A
type Ratio struct {
	A     float64
	Xs    Range
	Label string
}

// FitRatio solves y = x / a for a by linear least squares
func FitRatio(x, y []float64) (*Ratio, error) {
	const name = "Pure exp"

	if err := checkSizes(x, y); err != nil {
		return nil, &Error{Model: name, Err: err}
	}

	xx := floats.Dot(x, x)
	if xx == 0 {
		return nil, &Error{Model: name, Err: fmt.Errorf("%w: all x are zero", ErrDegenerate)}
	}

	slope := floats.Dot(x, y) / xx
	if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
		return nil, &Error{Model: name, Err: fmt.Errorf("%w: slope is %g", ErrDegenerate, slope)}
	}

	return &Ratio{A: 1 / slope, Xs: observedRange(x), Label: name}, nil
}

func (r *Ratio) Name() string           { return r.Label }
func (r *Ratio) Eval(x float64) float64 { return x / r.A }
func (r *Ratio) Range() Range           { return r.Xs }

func (r *Ratio) Params() []Param {
	return []Param{{"a", r.A}}
}
