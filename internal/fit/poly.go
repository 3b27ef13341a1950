package fit

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Poly is a least-squares polynomial. Coefficients apply to the mapped
// variable t = Offset + Scale*x, lowest degree first.
type Poly struct {
	Coefs  []float64
	Offset float64
	Scale  float64
	Xs     Range
	Label  string
}

// FitPoly fits a polynomial of degree deg to (x, y). The x range is mapped
// onto [-1, 1] before solving to keep the Vandermonde matrix well conditioned.
func FitPoly(x, y []float64, deg int) (*Poly, error) {
	name := fmt.Sprintf("Polynomial (deg %d)", deg)

	if err := checkSizes(x, y); err != nil {
		return nil, &Error{Model: name, Err: err}
	}
	if deg < 0 {
		return nil, &Error{Model: name, Err: fmt.Errorf("%w: negative degree", ErrDegenerate)}
	}
	if n := distinct(x); n < deg+1 {
		return nil, &Error{
			Model: name,
			Err:   fmt.Errorf("%w: %d distinct x values for %d coefficients", ErrDegenerate, n, deg+1),
		}
	}

	p := &Poly{Xs: observedRange(x), Label: name, Scale: 1}
	if width := p.Xs.XMax - p.Xs.XMin; width > 0 {
		p.Scale = 2 / width
		p.Offset = -(p.Xs.XMax + p.Xs.XMin) / width
	}

	// vandermonde matrix of the mapped x
	v := mat.NewDense(len(x), deg+1, nil)
	for i, xi := range x {
		t := p.Offset + p.Scale*xi
		pow := 1.0
		for j := 0; j <= deg; j++ {
			v.Set(i, j, pow)
			pow *= t
		}
	}

	var c mat.VecDense
	if err := c.SolveVec(v, mat.NewVecDense(len(y), append([]float64(nil), y...))); err != nil {
		return nil, &Error{Model: name, Err: fmt.Errorf("%w: %v", ErrDegenerate, err)}
	}

	p.Coefs = make([]float64, deg+1)
	for j := range p.Coefs {
		p.Coefs[j] = c.AtVec(j)
	}

	return p, nil
}

func (p *Poly) Name() string { return p.Label }
func (p *Poly) Range() Range { return p.Xs }

// Eval evaluates the polynomial with Horner's scheme
func (p *Poly) Eval(x float64) float64 {
	t := p.Offset + p.Scale*x
	sum := 0.0
	for j := len(p.Coefs) - 1; j >= 0; j-- {
		sum = sum*t + p.Coefs[j]
	}
	return sum
}

func (p *Poly) Params() []Param {
	params := make([]Param, len(p.Coefs))
	for j, c := range p.Coefs {
		params[j] = Param{fmt.Sprintf("c%d", j), c}
	}
	return params
}

func distinct(x []float64) int {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	n := 0
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			n++
		}
	}
	return n
}
