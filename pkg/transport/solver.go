package transport

import (
	"math"

	"gfet-sim/internal/consts"
	"gfet-sim/pkg/device"
)

// ShootingSolver finds Ids as the root of R(Ids) = Vend(Ids) - Vds, where
// Vend is obtained by integrating dV/dx = Ids*rho(V(x))/W along the channel
// with V(0) = 0. Vend is strictly increasing in Ids (rho > 0 everywhere
// thanks to the n0 floor), so the root is unique.
type ShootingSolver struct {
	params *device.Params
	cfg    Config
}

func NewShootingSolver(p *device.Params, cfg Config) (*ShootingSolver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &ShootingSolver{params: p, cfg: cfg}, nil
}

func (s *ShootingSolver) Solve(vgs, vds float64) (Result, error) {
	return solveDevice(s.params, &s.cfg, vgs, vds, s.channelCurrent)
}

// channelCurrent solves the channel-only implicit equation for a given
// internal drop vch.
func (s *ShootingSolver) channelCurrent(vgs, vch float64) (float64, error) {
	cfg := &s.cfg
	tol := cfg.residTol(vch)

	resid := func(ids float64) float64 {
		return s.integrate(vgs, ids) - vch
	}

	// Bracket the root. At Ids = 0 the residual is -vch; the opposite end is
	// seeded from the current a uniform channel at its densest point would
	// carry, which bounds the true current, then expanded geometrically as a
	// safeguard.
	a, fa := 0.0, -vch
	b := s.uniformBound(vgs, vch)
	fb := resid(b)
	tries := 0
	for fa*fb > 0 {
		tries++
		if tries > cfg.MaxBracketTries {
			return 0, &ConvergenceError{Residual: fb, LastIds: b, Iterations: tries}
		}
		b *= 2
		fb = resid(b)
	}

	return brentSolve(resid, a, b, fa, fb, tol, cfg.MaxIter)
}

// uniformBound returns a signed current bound assuming the whole channel sits
// at the density of its more conductive end.
func (s *ShootingSolver) uniformBound(vgs, vds float64) float64 {
	p := s.params
	n1 := math.Abs(p.CarrierDensity(vgs, 0))
	n2 := math.Abs(p.CarrierDensity(vgs, vds))
	nmax := math.Max(n1, n2)
	g := consts.CHARGE * p.Mobility * nmax * p.W / p.L
	return 1.05 * g * vds
}

// integrate runs a fixed-step RK4 pass of dV/dx = Ids*rho(V)/W over the
// channel length and returns the drain-end potential.
func (s *ShootingSolver) integrate(vgs, ids float64) float64 {
	if ids == 0 {
		return 0
	}

	p := s.params
	h := p.L / float64(s.cfg.Segments)
	grad := func(v float64) float64 {
		n := p.CarrierDensity(vgs, v)
		return ids * p.SheetResistance(n) / p.W
	}

	v := 0.0
	for i := 0; i < s.cfg.Segments; i++ {
		k1 := grad(v)
		k2 := grad(v + 0.5*h*k1)
		k3 := grad(v + 0.5*h*k2)
		k4 := grad(v + h*k3)
		v += h / 6.0 * (k1 + 2*k2 + 2*k3 + k4)
	}
	return v
}

// brentSolve is Brent's method with a residual-magnitude stopping criterion:
// it returns once |f| <= ftol, or fails after maxIter iterations. fa and fb
// must bracket the root.
func brentSolve(f func(float64) float64, a, b, fa, fb, ftol float64, maxIter int) (float64, error) {
	c, fc := a, fa
	d := b - a
	e := d

	for iter := 0; iter < maxIter; iter++ {
		if fb*fc > 0 {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, fa = b, fb
			b, fb = c, fc
			c, fc = a, fa
		}
		if math.Abs(fb) <= ftol {
			return b, nil
		}

		xm := 0.5 * (c - b)
		tol1 := 4.0 * 2.220446049250313e-16 * math.Abs(b)
		if math.Abs(xm) <= tol1 {
			// Interval exhausted in double precision without meeting the
			// residual criterion.
			break
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// Secant / inverse quadratic step.
			var pp, q float64
			t := fb / fa
			if a == c {
				pp = 2.0 * xm * t
				q = 1.0 - t
			} else {
				q = fa / fc
				r := fb / fc
				pp = t * (2.0*xm*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (t - 1.0)
			}
			if pp > 0 {
				q = -q
			}
			pp = math.Abs(pp)
			if 2.0*pp < math.Min(3.0*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = pp / q
			} else {
				d = xm
				e = d
			}
		} else {
			// Bisection fallback.
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = f(b)
	}

	return 0, &ConvergenceError{Residual: fb, LastIds: b, Iterations: maxIter}
}
