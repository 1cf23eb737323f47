package transport

import (
	"errors"
	"fmt"
)

// ErrConvergence indicates the implicit current equation did not converge
// within the iteration budget. An unconverged point never yields a numeric
// result; callers record the error instead.
var ErrConvergence = errors.New("transport: failed to converge")

// ConvergenceError carries the state of the failed solve.
type ConvergenceError struct {
	Residual   float64 // Last terminal-voltage residual (V)
	LastIds    float64 // Last current estimate (A)
	Iterations int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("failed to converge in %d iterations (residual=%g V, ids=%g A)",
		e.Iterations, e.Residual, e.LastIds)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrConvergence
}
