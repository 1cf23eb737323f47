package device

import (
	"math"

	"gfet-sim/internal/consts"
)

// CarrierDensity returns the signed net sheet carrier density (1/m²) at a
// channel position whose local potential is vLocal, under gate bias vgs.
// Positive values mean electron-dominated transport, negative hole-dominated.
//
// The ambipolar combination law
//
//	n(dV) = sign(dV) * sqrt(n0² + (Cox*dV/q)²)
//
// with dV = (Vgs - Vlocal) - Vdirac keeps |n| at a smooth minimum of n0 at
// the Dirac point instead of letting the density collapse to zero. The sqrt
// form is exact for any dV, so the model stays stable far from the Dirac
// point as well.
func (p *Params) CarrierDensity(vgs, vLocal float64) float64 {
	dv := (vgs - vLocal) - p.VDirac
	gate := p.Cox() * dv / consts.CHARGE
	n := math.Sqrt(p.N0*p.N0 + gate*gate)
	if dv < 0 {
		return -n
	}
	return n
}

// SheetResistance converts a signed sheet carrier density into the local
// sheet resistance rho = 1/(q*mu*|n|) (Ω per square). The n0 floor in
// CarrierDensity keeps this finite everywhere.
func (p *Params) SheetResistance(n float64) float64 {
	return 1.0 / (consts.CHARGE * p.Mobility * math.Abs(n))
}
