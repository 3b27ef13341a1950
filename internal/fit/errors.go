package fit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDegenerate is returned when the data can't determine the model
	ErrDegenerate = errors.New("degenerate data")

	// ErrNotConverged is returned when the solver runs out of function evaluations
	ErrNotConverged = errors.New("fit did not converge")

	// ErrInfeasible is returned for bounds that exclude the start guess
	ErrInfeasible = errors.New("infeasible bounds")
)

// Error is returned by all fitters and names the model and the parameters
// that were tried last.
type Error struct {
	Model  string
	Params []Param
	Err    error
}

func (e *Error) Error() string {
	if len(e.Params) == 0 {
		return fmt.Sprintf("fitting %s: %v", e.Model, e.Err)
	}
	return fmt.Sprintf("fitting %s (%s): %v", e.Model, formatParams(e.Params), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func formatParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s=%.6g", p.Name, p.Value)
	}
	return strings.Join(parts, ", ")
}
