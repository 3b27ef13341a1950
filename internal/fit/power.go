package fit

import (
	"math"
)

// Options for the nonlinear fitters
type Options struct {
	Settings Settings
}

// PowerLaw is the model y = (x / Z0)^Alpha
type PowerLaw struct {
	Z0    float64
	Alpha float64
	Xs    Range
	Label string
}

func powerLaw(x, z0, alpha float64) float64 {
	return math.Pow(x/z0, alpha)
}

// FitPowerLaw fits PowerLaw with Z0 >= 0 and 0 <= Alpha <= 1, starting at
// Z0 = 4096, Alpha = 0.5.
func FitPowerLaw(x, y []float64, opts Options) (*PowerLaw, error) {
	m := &PowerLaw{Z0: 4096, Alpha: 0.5, Label: "Model 1"}

	if err := checkSizes(x, y); err != nil {
		return nil, &Error{Model: m.Label, Err: err}
	}

	res, err := LeastSquares(Problem{
		Func: func(x float64, p []float64) float64 {
			return powerLaw(x, p[0], p[1])
		},
		X:     x,
		Y:     y,
		Init:  []float64{m.Z0, m.Alpha},
		Lower: []float64{0, 0},
		Upper: []float64{math.Inf(1), 1},
	}, &opts.Settings)
	if res.Params != nil {
		m.Z0, m.Alpha = res.Params[0], res.Params[1]
	}
	if err != nil {
		return nil, &Error{Model: m.Label, Params: m.Params(), Err: err}
	}

	m.Xs = observedRange(x)
	return m, nil
}

func (m *PowerLaw) Name() string           { return m.Label }
func (m *PowerLaw) Range() Range           { return m.Xs }
func (m *PowerLaw) Eval(x float64) float64 { return powerLaw(x, m.Z0, m.Alpha) }

func (m *PowerLaw) Params() []Param {
	return []Param{{"z0", m.Z0}, {"alpha", m.Alpha}}
}

// Saturation is the model
//
//	y = A * u^Alpha/(1 + u^Alpha) * (1 + u^(2 Beta))/(1 + u^Beta),  u = x / Z0
//
// It rises like u^Alpha below Z0 and continues like u^Beta above it.
type Saturation struct {
	A     float64
	Z0    float64
	Alpha float64
	Beta  float64
	Xs    Range
	Label string
}

func saturation(x, a, z0, alpha, beta float64) float64 {
	u := x / z0
	ua := math.Pow(u, alpha)
	ub := math.Pow(u, beta)
	return a * (ua / (1 + ua)) * ((1 + ub*ub) / (1 + ub))
}

// FitSaturation fits Saturation with all parameters >= 0 and Beta <= 1,
// starting at A = 1/2, Z0 = 256, Alpha = 2, Beta = 1/4.
func FitSaturation(x, y []float64, opts Options) (*Saturation, error) {
	m := &Saturation{A: 0.5, Z0: 256, Alpha: 2, Beta: 0.25, Label: "Model 2"}

	if err := checkSizes(x, y); err != nil {
		return nil, &Error{Model: m.Label, Err: err}
	}

	inf := math.Inf(1)
	res, err := LeastSquares(Problem{
		Func: func(x float64, p []float64) float64 {
			return saturation(x, p[0], p[1], p[2], p[3])
		},
		X:     x,
		Y:     y,
		Init:  []float64{m.A, m.Z0, m.Alpha, m.Beta},
		Lower: []float64{0, 0, 0, 0},
		Upper: []float64{inf, inf, inf, 1},
	}, &opts.Settings)
	if res.Params != nil {
		m.A, m.Z0, m.Alpha, m.Beta = res.Params[0], res.Params[1], res.Params[2], res.Params[3]
	}
	if err != nil {
		return nil, &Error{Model: m.Label, Params: m.Params(), Err: err}
	}

	m.Xs = observedRange(x)
	return m, nil
}

func (m *Saturation) Name() string { return m.Label }
func (m *Saturation) Range() Range { return m.Xs }
func (m *Saturation) Eval(x float64) float64 {
	return saturation(x, m.A, m.Z0, m.Alpha, m.Beta)
}

func (m *Saturation) Params() []Param {
	return []Param{{"A", m.A}, {"z0", m.Z0}, {"alpha", m.Alpha}, {"beta", m.Beta}}
}
