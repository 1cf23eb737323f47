package transport

import (
	"math"

	"gfet-sim/internal/consts"
	"gfet-sim/pkg/device"
	"gfet-sim/pkg/matrix"
)

// NetworkSolver discretizes the channel into a ladder of series resistors
// whose conductances follow the midpoint carrier density, then iterates the
// node potentials to self-consistency: stamp conductances from the latest
// potentials, solve the sparse tridiagonal system, apply a damped update,
// repeat. Source and drain nodes are held at 0 and Vds.
type NetworkSolver struct {
	params *device.Params
	cfg    Config
}

func NewNetworkSolver(p *device.Params, cfg Config) (*NetworkSolver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &NetworkSolver{params: p, cfg: cfg}, nil
}

func (s *NetworkSolver) Solve(vgs, vds float64) (Result, error) {
	return solveDevice(s.params, &s.cfg, vgs, vds, s.channelCurrent)
}

func (s *NetworkSolver) channelCurrent(vgs, vch float64) (float64, error) {
	p := s.params
	cfg := &s.cfg
	nseg := cfg.Segments
	nodes := nseg - 1 // internal nodes; boundaries are fixed
	dx := p.L / float64(nseg)

	mat, err := matrix.NewMatrix(nodes)
	if err != nil {
		return 0, err
	}
	defer mat.Destroy()

	// Initial guess: linear potential ramp.
	v := make([]float64, nseg+1)
	for i := range v {
		v[i] = vch * float64(i) / float64(nseg)
	}

	g := make([]float64, nseg)
	stampConductances := func() {
		for i := 1; i <= nseg; i++ {
			vmid := 0.5 * (v[i-1] + v[i])
			n := p.CarrierDensity(vgs, vmid)
			g[i-1] = consts.CHARGE * p.Mobility * math.Abs(n) * p.W / dx
		}
	}

	for iter := 0; iter < cfg.MaxIter; iter++ {
		// Segment conductances from midpoint densities.
		stampConductances()

		// Stamp the resistor ladder. Segment i joins node i-1 and node i;
		// node 0 is the grounded source, node nseg the drain at vch.
		mat.Clear()
		for i := 1; i <= nseg; i++ {
			gi := g[i-1]
			left, right := i-1, i
			if left >= 1 {
				mat.AddElement(left, left, gi)
			}
			if right <= nodes {
				mat.AddElement(right, right, gi)
			}
			if left >= 1 && right <= nodes {
				mat.AddElement(left, right, -gi)
				mat.AddElement(right, left, -gi)
			}
			if right > nodes {
				// Drain boundary folds into the RHS.
				mat.AddRHS(left, gi*vch)
			}
		}
		mat.LoadGmin(cfg.Gmin)

		if err := mat.Solve(); err != nil {
			return 0, err
		}

		sol := mat.Solution()

		// Self-consistency: the potentials that produced the conductances
		// must reproduce themselves.
		if converged(v[1:nodes+1], sol[1:nodes+1], cfg.AbsTol, cfg.RelTol) {
			for i := 1; i <= nodes; i++ {
				v[i] = sol[i]
			}
			stampConductances()
			// Drain-end segment current is the terminal current.
			return g[nseg-1] * (vch - v[nodes]), nil
		}

		// Damped update keeps the fixed-point iteration from oscillating
		// around the Dirac crossing.
		for i := 1; i <= nodes; i++ {
			v[i] += 0.7 * (sol[i] - v[i])
		}
	}

	return 0, &ConvergenceError{
		Residual:   vch - v[nodes],
		LastIds:    g[nseg-1] * (vch - v[nodes]),
		Iterations: cfg.MaxIter,
	}
}
