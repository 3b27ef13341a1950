package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultMaxEvaluations bounds the function evaluations of a nonlinear fit
const DefaultMaxEvaluations = 16384

// Method selects the nonlinear least squares solver
type Method int

const (
	// LevenbergMarquardt is a bounded Levenberg-Marquardt solver
	LevenbergMarquardt Method = iota
	// NelderMead minimizes the squared residuals with the downhill simplex method
	NelderMead
)

func (m Method) String() string {
	switch m {
	case LevenbergMarquardt:
		return "lm"
	case NelderMead:
		return "nelder-mead"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses the names returned by Method.String
func ParseMethod(s string) (Method, error) {
	switch s {
	case "lm", "":
		return LevenbergMarquardt, nil
	case "nelder-mead":
		return NelderMead, nil
	}
	return 0, fmt.Errorf("unknown fit method %q (must be lm or nelder-mead)", s)
}

// Problem is a curve fitting problem with box constraints
type Problem struct {
	Func func(x float64, p []float64) float64
	X    []float64
	Y    []float64

	Init  []float64
	Lower []float64
	Upper []float64
}

// Settings control the solver. The zero value uses the defaults.
type Settings struct {
	Method         Method
	MaxEvaluations int

	// FTol stops when an accepted step reduces the cost by less than
	// FTol * cost. XTol stops when the scaled step is shorter than
	// XTol * |p|.
	FTol float64
	XTol float64
}

// Result of a least squares fit
type Result struct {
	Params      []float64
	Cost        float64
	Evaluations int
}

func (s *Settings) withDefaults() Settings {
	out := Settings{}
	if s != nil {
		out = *s
	}
	if out.MaxEvaluations <= 0 {
		out.MaxEvaluations = DefaultMaxEvaluations
	}
	if out.FTol <= 0 {
		out.FTol = 1e-10
	}
	if out.XTol <= 0 {
		out.XTol = 1e-10
	}
	return out
}

// LeastSquares minimizes the sum of squared residuals Func(X[i], p) - Y[i]
// subject to Lower <= p <= Upper.
func LeastSquares(prob Problem, settings *Settings) (Result, error) {
	s := settings.withDefaults()

	sp, err := newScaledProblem(prob)
	if err != nil {
		return Result{}, err
	}

	switch s.Method {
	case LevenbergMarquardt:
		return levenbergMarquardt(sp, s)
	case NelderMead:
		return nelderMead(sp, s)
	}
	return Result{}, fmt.Errorf("unknown fit method %v", s.Method)
}

// scaledProblem works on q = p / scale so that every parameter starts at
// magnitude one.
type scaledProblem struct {
	Problem
	scale  []float64
	lo, hi []float64
	q0     []float64
	evals  int
	p      []float64
}

func newScaledProblem(prob Problem) (*scaledProblem, error) {
	n := len(prob.Init)
	if len(prob.Lower) != n || len(prob.Upper) != n {
		return nil, fmt.Errorf("%w: %d parameters but %d lower and %d upper bounds",
			ErrInfeasible, n, len(prob.Lower), len(prob.Upper))
	}
	if len(prob.X) != len(prob.Y) || len(prob.X) == 0 {
		return nil, fmt.Errorf("%w: %d x and %d y values", ErrDegenerate, len(prob.X), len(prob.Y))
	}
	if len(prob.X) < n {
		return nil, fmt.Errorf("%w: %d observations for %d parameters", ErrDegenerate, len(prob.X), n)
	}

	sp := &scaledProblem{
		Problem: prob,
		scale:   make([]float64, n),
		lo:      make([]float64, n),
		hi:      make([]float64, n),
		q0:      make([]float64, n),
		p:       make([]float64, n),
	}

	for i := 0; i < n; i++ {
		lo, hi, init := prob.Lower[i], prob.Upper[i], prob.Init[i]
		if !(lo < hi) || init < lo || init > hi {
			return nil, fmt.Errorf("%w: parameter %d: start %g not in [%g, %g]", ErrInfeasible, i, init, lo, hi)
		}

		sp.scale[i] = math.Abs(init)
		if sp.scale[i] == 0 {
			sp.scale[i] = 1
		}
		sp.lo[i] = lo / sp.scale[i]
		sp.hi[i] = hi / sp.scale[i]

		// start strictly inside the box
		q := init / sp.scale[i]
		margin := 1e-10 * math.Max(1, math.Abs(q))
		if !math.IsInf(sp.hi[i]-sp.lo[i], 0) {
			margin = math.Min(margin, (sp.hi[i]-sp.lo[i])/4)
		}
		q = math.Max(q, sp.lo[i]+margin)
		q = math.Min(q, sp.hi[i]-margin)
		sp.q0[i] = q
	}

	return sp, nil
}

func (sp *scaledProblem) params(dst, q []float64) []float64 {
	for i := range q {
		dst[i] = q[i] * sp.scale[i]
	}
	return dst
}

// residuals writes Func(X[i], p) - Y[i] into dst
func (sp *scaledProblem) residuals(dst, q []float64) {
	sp.evals++
	p := sp.params(sp.p, q)
	for i, x := range sp.X {
		dst[i] = sp.Func(x, p) - sp.Y[i]
	}
}

func (sp *scaledProblem) cost(r []float64) float64 {
	c := 0.5 * floats.Dot(r, r)
	if math.IsNaN(c) {
		return math.Inf(1)
	}
	return c
}

func (sp *scaledProblem) feasible(q []float64) bool {
	for i, v := range q {
		if v < sp.lo[i] || v > sp.hi[i] {
			return false
		}
	}
	return true
}

// pullBack moves components of next that left the box to half the distance
// between cur and the violated bound.
func (sp *scaledProblem) pullBack(next, cur []float64) {
	for i := range next {
		if next[i] <= sp.lo[i] {
			next[i] = sp.lo[i] + 0.5*(cur[i]-sp.lo[i])
		} else if next[i] >= sp.hi[i] {
			next[i] = sp.hi[i] - 0.5*(sp.hi[i]-cur[i])
		}
	}
}

func (sp *scaledProblem) result(q []float64, cost float64) Result {
	return Result{
		Params:      sp.params(make([]float64, len(q)), q),
		Cost:        cost,
		Evaluations: sp.evals,
	}
}

func levenbergMarquardt(sp *scaledProblem, s Settings) (Result, error) {
	const (
		lambdaInit = 1e-3
		lambdaMin  = 1e-15
		lambdaMax  = 1e16
		diagFloor  = 1e-12
	)

	n, m := len(sp.q0), len(sp.X)

	q := append([]float64(nil), sp.q0...)
	next := make([]float64, n)
	r := make([]float64, m)
	rNext := make([]float64, m)

	sp.residuals(r, q)
	cost := sp.cost(r)
	if math.IsInf(cost, 0) {
		return sp.result(q, cost), fmt.Errorf("%w: residuals are not finite at the start guess", ErrDegenerate)
	}

	jac := mat.NewDense(m, n, nil)
	var jtj mat.Dense
	var g, step mat.VecDense
	a := mat.NewDense(n, n, nil)
	lambda := lambdaInit

	for {
		if cost == 0 {
			return sp.result(q, cost), nil
		}
		if sp.evals >= s.MaxEvaluations {
			return sp.result(q, cost), fmt.Errorf("%w after %d evaluations", ErrNotConverged, sp.evals)
		}

		sp.jacobian(jac, q, r)
		jtj.Mul(jac.T(), jac)
		g.MulVec(jac.T(), mat.NewVecDense(m, r))

		accepted := false
		for !accepted {
			if sp.evals >= s.MaxEvaluations {
				return sp.result(q, cost), fmt.Errorf("%w after %d evaluations", ErrNotConverged, sp.evals)
			}
			if lambda > lambdaMax {
				// no step reduces the cost any further
				return sp.result(q, cost), nil
			}

			a.Copy(&jtj)
			for i := 0; i < n; i++ {
				a.Set(i, i, jtj.At(i, i)+lambda*math.Max(jtj.At(i, i), diagFloor))
			}

			if err := step.SolveVec(a, &g); err != nil {
				if _, ok := err.(mat.Condition); !ok {
					lambda *= 10
					continue
				}
			}

			for i := 0; i < n; i++ {
				next[i] = q[i] - step.AtVec(i)
			}
			sp.pullBack(next, q)

			sp.residuals(rNext, next)
			costNext := sp.cost(rNext)

			if costNext >= cost || math.IsInf(costNext, 0) {
				lambda *= 10
				continue
			}

			accepted = true
			lambda = math.Max(lambda/10, lambdaMin)

			reduction := cost - costNext
			stepNorm := floats.Distance(next, q, 2)

			copy(q, next)
			copy(r, rNext)
			cost = costNext

			if reduction <= s.FTol*cost || stepNorm <= s.XTol*(floats.Norm(q, 2)+s.XTol) {
				return sp.result(q, cost), nil
			}
		}
	}
}

// jacobian of the residuals at q. Central differences are used unless q is
// too close to a lower bound, where forward differences stay inside the box.
func (sp *scaledProblem) jacobian(dst *mat.Dense, q, r []float64) {
	const centralStep = 6e-6

	formula := fd.Central
	for i, v := range q {
		if v-centralStep <= sp.lo[i] {
			formula = fd.Forward
			break
		}
	}

	fd.Jacobian(dst, sp.residuals, q, &fd.JacobianSettings{
		Formula:     formula,
		OriginValue: r,
	})
}
