// Package sweep generates the ordered, finite value sequences the
// characteristic simulator walks through.
package sweep

import (
	"fmt"
	"math"
)

// Linear returns points evenly spaced over [start, stop], endpoints included.
func Linear(start, stop float64, points int) ([]float64, error) {
	if points < 1 {
		return nil, fmt.Errorf("sweep needs at least 1 point, got %d", points)
	}
	if err := checkFinite(start, stop); err != nil {
		return nil, err
	}
	if points == 1 {
		return []float64{start}, nil
	}

	vals := make([]float64, points)
	step := (stop - start) / float64(points-1)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	vals[points-1] = stop
	return vals, nil
}

// DualLinear concatenates two half-sweeps meeting at the midpoint of
// [start, stop]. The midpoint appears in both halves, matching the measured
// dual-ramp convention.
func DualLinear(start, stop float64, points int) ([]float64, error) {
	if points < 2 {
		return nil, fmt.Errorf("dual-linear sweep needs at least 2 points, got %d", points)
	}
	mid := 0.5 * (start + stop)
	first, err := Linear(start, mid, points/2)
	if err != nil {
		return nil, err
	}
	second, err := Linear(mid, stop, points/2)
	if err != nil {
		return nil, err
	}
	return append(first, second...), nil
}

// Log returns points evenly spaced in log10 over [start, stop]. Both
// endpoints must be strictly positive.
func Log(start, stop float64, points int) ([]float64, error) {
	if start <= 0 || stop <= 0 {
		return nil, fmt.Errorf("log sweep endpoints must be positive, got [%g, %g]", start, stop)
	}
	exps, err := Linear(math.Log10(start), math.Log10(stop), points)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, len(exps))
	for i, e := range exps {
		vals[i] = math.Pow(10, e)
	}
	return vals, nil
}

// Validate rejects non-finite entries so they never reach the solver.
func Validate(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidValueError{Index: i, Value: v}
		}
	}
	return nil
}

func checkFinite(vals ...float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &InvalidValueError{Index: i, Value: v}
		}
	}
	return nil
}
