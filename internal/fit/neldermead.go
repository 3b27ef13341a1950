package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

func nelderMead(sp *scaledProblem, s Settings) (Result, error) {
	r := make([]float64, len(sp.X))

	problem := optimize.Problem{
		Func: func(q []float64) float64 {
			if !sp.feasible(q) {
				return math.Inf(1)
			}
			sp.residuals(r, q)
			return sp.cost(r)
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: s.MaxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-20,
			Relative:   s.FTol,
			Iterations: 200,
		},
	}

	res, err := optimize.Minimize(problem, sp.q0, settings, &optimize.NelderMead{SimplexSize: 0.05})
	if res == nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}

	out := sp.result(res.X, res.F)
	if res.Status == optimize.FunctionEvaluationLimit {
		return out, fmt.Errorf("%w after %d evaluations", ErrNotConverged, sp.evals)
	}
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}
	if math.IsInf(res.F, 0) {
		return out, fmt.Errorf("%w: no feasible point with finite residuals", ErrDegenerate)
	}

	return out, nil
}
