// Package analysis sweeps an operating-point solver over gate or drain bias
// and collects ordered characteristic curves.
package analysis

import (
	"math"
	"sync"

	"gfet-sim/pkg/sweep"
	"gfet-sim/pkg/transport"
)

// Point is one sample of a characteristic curve. A non-nil Err marks a point
// that did not converge or was rejected; Ids and Rds are meaningless then and
// sinks must treat the slot as missing rather than numeric.
type Point struct {
	X   float64 // Swept variable (Vgs for transfer, Vds for output) (V)
	Ids float64 // Drain current (A)
	Rds float64 // Drain-source resistance (Ω)
	Err error
}

func (p Point) Failed() bool {
	return p.Err != nil
}

// Simulator runs one solver call per sweep value. Points are independent, so
// evaluation may fan out over workers; results are always reassembled in
// sweep order.
type Simulator struct {
	solver  transport.Solver
	workers int
}

func New(solver transport.Solver) *Simulator {
	return &Simulator{solver: solver, workers: 1}
}

// SetWorkers caps concurrent point evaluations. Values below 1 mean
// sequential.
func (s *Simulator) SetWorkers(n int) {
	s.workers = n
}

// Transfer sweeps Vgs at fixed Vds.
func (s *Simulator) Transfer(vgsValues []float64, vds float64) []Point {
	return s.run(vgsValues, func(x float64) (transport.Result, error) {
		return s.solver.Solve(x, vds)
	})
}

// Output sweeps Vds at fixed Vgs.
func (s *Simulator) Output(vdsValues []float64, vgs float64) []Point {
	return s.run(vdsValues, func(x float64) (transport.Result, error) {
		return s.solver.Solve(vgs, x)
	})
}

func (s *Simulator) run(xs []float64, eval func(float64) (transport.Result, error)) []Point {
	points := make([]Point, len(xs))

	workers := s.workers
	if workers > len(xs) {
		workers = len(xs)
	}
	if workers <= 1 {
		for i, x := range xs {
			points[i] = evalPoint(i, x, eval)
		}
		return points
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, x := range xs {
		wg.Add(1)
		go func(i int, x float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			points[i] = evalPoint(i, x, eval)
		}(i, x)
	}
	wg.Wait()

	return points
}

// evalPoint guards against non-finite sweep entries and records per-point
// failures in the slot instead of aborting the sweep.
func evalPoint(i int, x float64, eval func(float64) (transport.Result, error)) Point {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Point{X: x, Err: &sweep.InvalidValueError{Index: i, Value: x}}
	}

	res, err := eval(x)
	if err != nil {
		return Point{X: x, Err: err}
	}
	return Point{X: x, Ids: res.Ids, Rds: res.Rds}
}
