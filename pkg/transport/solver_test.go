package transport

import (
	"errors"
	"math"
	"testing"

	"gfet-sim/internal/consts"
	"gfet-sim/pkg/device"
)

func testParams() *device.Params {
	return &device.Params{
		L:        1e-6,
		W:        1e-6,
		Tox:      10e-9,
		EpsR:     3.9,
		Mobility: 0.1,
		N0:       1e15,
		VDirac:   0.0,
		RContact: 0,
	}
}

// referenceCurrent evaluates the closed-form channel current for zero contact
// resistance. Changing the integration variable from x to V gives
//
//	Ids = (W*mu*q/L) * Integral_0^Vds |n(Vgs - V)| dV,
//
// computed here with a fine Simpson rule as an independent oracle.
func referenceCurrent(p *device.Params, vgs, vds float64) float64 {
	const n = 2000
	h := vds / n
	sum := math.Abs(p.CarrierDensity(vgs, 0)) + math.Abs(p.CarrierDensity(vgs, vds))
	for i := 1; i < n; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		sum += w * math.Abs(p.CarrierDensity(vgs, float64(i)*h))
	}
	integral := sum * h / 3.0
	return p.W * p.Mobility * consts.CHARGE * integral / p.L
}

func relDiff(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	return math.Abs(a-b) / math.Max(math.Abs(a), math.Abs(b))
}

func solvers(t *testing.T, p *device.Params) map[string]Solver {
	t.Helper()
	shooting, err := NewShootingSolver(p, DefaultConfig())
	if err != nil {
		t.Fatalf("NewShootingSolver: %v", err)
	}
	network, err := NewNetworkSolver(p, DefaultConfig())
	if err != nil {
		t.Fatalf("NewNetworkSolver: %v", err)
	}
	return map[string]Solver{"shooting": shooting, "network": network}
}

func TestInvalidParamsRejected(t *testing.T) {
	p := testParams()
	p.L = 0
	if _, err := NewShootingSolver(p, DefaultConfig()); !errors.Is(err, device.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
	if _, err := NewNetworkSolver(p, DefaultConfig()); !errors.Is(err, device.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
}

func TestZeroBias(t *testing.T) {
	for name, s := range solvers(t, testParams()) {
		for _, vgs := range []float64{-2, 0, 2} {
			res, err := s.Solve(vgs, 0)
			if err != nil {
				t.Fatalf("%s: Solve(%g, 0): %v", name, vgs, err)
			}
			if res.Ids != 0 {
				t.Errorf("%s: Ids at Vds=0 must be exactly 0, got %g", name, res.Ids)
			}
			if !(res.Rds > 0) || math.IsInf(res.Rds, 0) {
				t.Errorf("%s: Rds at Vds=0 must be finite and positive, got %g", name, res.Rds)
			}
		}
	}
}

func TestDiracPointResistanceBounded(t *testing.T) {
	p := testParams()
	s, err := NewShootingSolver(p, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	res, err := s.Solve(p.VDirac, 0)
	if err != nil {
		t.Fatalf("Solve at Dirac point: %v", err)
	}
	// The n0 floor bounds the worst-case resistance: Rds <= L/(W*q*mu*n0).
	bound := p.L / (p.W * consts.CHARGE * p.Mobility * p.N0)
	if res.Rds <= 0 || res.Rds > 1.01*bound {
		t.Errorf("Dirac-point Rds = %g, want within (0, %g]", res.Rds, bound)
	}
}

func TestShootingMatchesQuadrature(t *testing.T) {
	p := testParams()
	s, err := NewShootingSolver(p, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct{ vgs, vds float64 }{
		{2, 0.5},
		{2, 1.5},
		{0.5, 0.2},
		{-1, 0.3},
		{0, 0.05},
		{2, -0.5}, // reverse bias
	}
	for _, c := range cases {
		res, err := s.Solve(c.vgs, c.vds)
		if err != nil {
			t.Fatalf("Solve(%g, %g): %v", c.vgs, c.vds, err)
		}
		want := referenceCurrent(p, c.vgs, c.vds)
		if d := relDiff(res.Ids, want); d > 1e-3 {
			t.Errorf("Solve(%g, %g): Ids = %g, want %g (rel diff %g)", c.vgs, c.vds, res.Ids, want, d)
		}
		if c.vds < 0 && res.Ids >= 0 {
			t.Errorf("Solve(%g, %g): expected negative current, got %g", c.vgs, c.vds, res.Ids)
		}
	}
}

func TestNetworkMatchesShooting(t *testing.T) {
	p := testParams()
	ss := solvers(t, p)

	cases := []struct{ vgs, vds float64 }{
		{2, 0.5},
		{2, 1.5},
		{-1, 0.3},
		{0, 0.05},
	}
	for _, c := range cases {
		a, err := ss["shooting"].Solve(c.vgs, c.vds)
		if err != nil {
			t.Fatalf("shooting Solve(%g, %g): %v", c.vgs, c.vds, err)
		}
		b, err := ss["network"].Solve(c.vgs, c.vds)
		if err != nil {
			t.Fatalf("network Solve(%g, %g): %v", c.vgs, c.vds, err)
		}
		if d := relDiff(a.Ids, b.Ids); d > 1e-2 {
			t.Errorf("(%g, %g): shooting Ids = %g, network Ids = %g (rel diff %g)",
				c.vgs, c.vds, a.Ids, b.Ids, d)
		}
	}
}

func TestOutputMonotonicWithKink(t *testing.T) {
	p := testParams()
	for name, s := range solvers(t, p) {
		vds := []float64{0, 0.5, 1, 1.5, 2}
		ids := make([]float64, len(vds))
		for i, v := range vds {
			res, err := s.Solve(2, v)
			if err != nil {
				t.Fatalf("%s: Solve(2, %g): %v", name, v, err)
			}
			ids[i] = res.Ids
		}

		for i := 1; i < len(ids); i++ {
			if ids[i] < ids[i-1] {
				t.Errorf("%s: Ids not monotonic: Ids(%g)=%g < Ids(%g)=%g",
					name, vds[i], ids[i], vds[i-1], ids[i-1])
			}
		}

		// Approaching Vds = Vgs - Vdirac the drain end crosses the Dirac
		// point and the incremental conductance collapses.
		firstSlope := ids[1] - ids[0]
		lastSlope := ids[4] - ids[3]
		if lastSlope > 0.5*firstSlope {
			t.Errorf("%s: expected saturation kink: first slope %g, last slope %g",
				name, firstSlope, lastSlope)
		}
	}
}

func TestTransferResistanceSymmetry(t *testing.T) {
	p := testParams()
	s, err := NewShootingSolver(p, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	const vds = 0.05
	vgs := []float64{-2, -1, 0, 1, 2}
	rds := make([]float64, len(vgs))
	for i, v := range vgs {
		res, err := s.Solve(v, vds)
		if err != nil {
			t.Fatalf("Solve(%g, %g): %v", v, vds, err)
		}
		rds[i] = res.Rds
	}

	// Single maximum at the Dirac point.
	for i, r := range rds {
		if vgs[i] != 0 && r >= rds[2] {
			t.Errorf("Rds(%g) = %g not below Dirac-point Rds = %g", vgs[i], r, rds[2])
		}
	}

	// Mirrored about Vgs = 0. The finite Vds shifts the sampled density
	// window slightly, so the symmetry is approximate.
	for _, pair := range [][2]int{{0, 4}, {1, 3}} {
		if d := relDiff(rds[pair[0]], rds[pair[1]]); d > 0.1 {
			t.Errorf("Rds(%g) = %g vs Rds(%g) = %g: asymmetry %g",
				vgs[pair[0]], rds[pair[0]], vgs[pair[1]], rds[pair[1]], d)
		}
	}
}

func TestRoundTripResistance(t *testing.T) {
	p := testParams()
	for name, s := range solvers(t, p) {
		res, err := s.Solve(1.5, 0.4)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if d := relDiff(res.Rds, 0.4/res.Ids); d > 1e-9 {
			t.Errorf("%s: Rds = %g but Vds/Ids = %g", name, res.Rds, 0.4/res.Ids)
		}
	}
}

func TestContactResistance(t *testing.T) {
	p := testParams()
	p.RContact = 1000

	bare := testParams()

	for name, s := range solvers(t, p) {
		res, err := s.Solve(2, 1)
		if err != nil {
			t.Fatalf("%s: Solve with contacts: %v", name, err)
		}

		// Self-consistency of the fixed-point convention: the channel alone,
		// driven with the contact-reduced drop, must carry the same current.
		vch := 1 - res.Ids*p.RContact
		want := referenceCurrent(bare, 2, vch)
		if d := relDiff(res.Ids, want); d > 1e-2 {
			t.Errorf("%s: Ids = %g, channel at Vch=%g gives %g (rel diff %g)",
				name, res.Ids, vch, want, d)
		}

		// Contacts always add to the total resistance.
		bareSolver, err := NewShootingSolver(bare, DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		ref, err := bareSolver.Solve(2, 1)
		if err != nil {
			t.Fatal(err)
		}
		if res.Rds <= ref.Rds {
			t.Errorf("%s: Rds with contacts (%g) not above bare channel (%g)", name, res.Rds, ref.Rds)
		}
	}
}

func TestConvergenceFailure(t *testing.T) {
	p := testParams()
	cfg := DefaultConfig()
	cfg.MaxIter = 1

	shooting, err := NewShootingSolver(p, cfg)
	if err != nil {
		t.Fatal(err)
	}
	network, err := NewNetworkSolver(p, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for name, s := range map[string]Solver{"shooting": shooting, "network": network} {
		_, err := s.Solve(2, 0.5)
		if err == nil {
			t.Fatalf("%s: expected convergence failure with MaxIter=1", name)
		}
		if !errors.Is(err, ErrConvergence) {
			t.Errorf("%s: error does not wrap ErrConvergence: %v", name, err)
		}
		var ce *ConvergenceError
		if !errors.As(err, &ce) {
			t.Errorf("%s: error is not a *ConvergenceError: %v", name, err)
		}
	}
}

func TestMonotonicInVds(t *testing.T) {
	// Far from the Dirac point the channel is unipolar and Ids must be
	// non-decreasing in |Vds|.
	p := testParams()
	s, err := NewShootingSolver(p, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	prev := 0.0
	for _, vds := range []float64{0.1, 0.2, 0.3, 0.4, 0.5} {
		res, err := s.Solve(5, vds)
		if err != nil {
			t.Fatalf("Solve(5, %g): %v", vds, err)
		}
		if res.Ids < prev {
			t.Errorf("Ids(%g) = %g below Ids at previous Vds (%g)", vds, res.Ids, prev)
		}
		prev = res.Ids
	}
}
