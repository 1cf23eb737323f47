// Package transport computes the DC drain current of a graphene FET channel.
//
// The channel is a series chain of infinitesimal resistive elements whose
// local sheet resistance depends on the local channel potential through the
// ambipolar carrier density. The local potential in turn depends on the
// terminal current, so the terminal current is the solution of an implicit
// equation. Two interchangeable solvers are provided: a shooting solver that
// root-finds the current against an integrated potential profile, and a
// network solver that Newton-iterates a discretized resistor ladder.
package transport

import (
	"math"

	"gfet-sim/pkg/device"
)

// Result is one converged operating point.
type Result struct {
	Ids float64 // Drain current (A)
	Rds float64 // Total drain-source resistance, contact term included (Ω)
}

// Config holds the numerical knobs shared by both solvers.
type Config struct {
	Segments        int     // Channel discretization segments
	MaxIter         int     // Iteration cap for root search / Newton loop
	RelTol          float64 // Residual tolerance relative to |Vds|
	AbsTol          float64 // Absolute residual floor (V)
	Gmin            float64 // Diagonal conductance loaded by the network solver
	Probe           float64 // Small-signal Vds used for Rds when Ids = 0 (V)
	MaxBracketTries int     // Geometric bracket expansion retries
}

func DefaultConfig() Config {
	return Config{
		Segments:        200,
		MaxIter:         100,
		RelTol:          1e-6,
		AbsTol:          1e-12,
		Gmin:            1e-12,
		Probe:           1e-3,
		MaxBracketTries: 40,
	}
}

// normalize fills unset fields with defaults so partially populated configs
// stay usable. Explicit nonzero values (including deliberately tiny MaxIter)
// are preserved.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Segments <= 0 {
		c.Segments = def.Segments
	}
	if c.Segments < 8 {
		c.Segments = 8
	}
	if c.MaxIter <= 0 {
		c.MaxIter = def.MaxIter
	}
	if c.RelTol <= 0 {
		c.RelTol = def.RelTol
	}
	if c.AbsTol <= 0 {
		c.AbsTol = def.AbsTol
	}
	if c.Gmin <= 0 {
		c.Gmin = def.Gmin
	}
	if c.Probe <= 0 {
		c.Probe = def.Probe
	}
	if c.MaxBracketTries <= 0 {
		c.MaxBracketTries = def.MaxBracketTries
	}
}

// residTol is the convergence criterion on the terminal-voltage residual.
func (c *Config) residTol(vds float64) float64 {
	tol := c.RelTol * math.Abs(vds)
	if tol < c.AbsTol {
		tol = c.AbsTol
	}
	return tol
}

// Solver is the operating-point contract shared by both implementations.
type Solver interface {
	Solve(vgs, vds float64) (Result, error)
}

// channelFunc computes the channel-only current for a given internal
// drain-source drop, excluding any contact resistance.
type channelFunc func(vgs, vch float64) (float64, error)

// solveDevice handles the cases common to both solvers: the exact zero-bias
// point, the small-signal Rds probe, and the series contact term.
func solveDevice(p *device.Params, cfg *Config, vgs, vds float64, channel channelFunc) (Result, error) {
	if math.Abs(vds) <= cfg.AbsTol {
		// Zero bias carries no current by construction. Rds comes from a
		// small-signal probe so the Dirac-point resistance stays finite.
		ids, err := solveTerminal(p, cfg, vgs, cfg.Probe, channel)
		if err != nil {
			return Result{}, err
		}
		return Result{Ids: 0, Rds: cfg.Probe / ids}, nil
	}

	ids, err := solveTerminal(p, cfg, vgs, vds, channel)
	if err != nil {
		return Result{}, err
	}
	return Result{Ids: ids, Rds: vds / ids}, nil
}

// solveTerminal resolves the series contact resistance around the
// channel-only solve. The channel sees the reduced drop
// Vch = Vds - Ids*RContact, iterated (damped) to self-consistency, so the
// reported Rds = Vds/Ids includes the contact term.
func solveTerminal(p *device.Params, cfg *Config, vgs, vds float64, channel channelFunc) (float64, error) {
	if p.RContact <= 0 {
		return channel(vgs, vds)
	}

	tol := cfg.residTol(vds)
	vch := vds
	for iter := 0; iter < cfg.MaxIter; iter++ {
		ids, err := channel(vgs, vch)
		if err != nil {
			return 0, err
		}
		next := vds - ids*p.RContact
		if math.Abs(next-vch) <= tol {
			return ids, nil
		}
		vch = 0.5 * (vch + next)
	}
	return 0, &ConvergenceError{Residual: vds - vch, Iterations: cfg.MaxIter}
}

// converged applies the combined absolute/relative criterion to two
// successive solution vectors.
func converged(oldSol, newSol []float64, abstol, reltol float64) bool {
	if len(oldSol) != len(newSol) {
		return false
	}
	for i := range oldSol {
		diff := math.Abs(newSol[i] - oldSol[i])
		if diff > abstol && diff > reltol*math.Abs(newSol[i]) {
			return false
		}
	}
	return true
}
