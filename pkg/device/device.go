package device

import (
	"gfet-sim/internal/consts"
)

// Params holds the geometry and material parameters of a graphene FET.
// A zero RContact disables the series contact term.
type Params struct {
	L        float64 `json:"channelLength"`     // Channel length (m)
	W        float64 `json:"channelWidth"`      // Channel width (m)
	Tox      float64 `json:"oxideThickness"`    // Gate oxide thickness (m)
	EpsR     float64 `json:"oxidePermittivity"` // Oxide relative permittivity
	Mobility float64 `json:"mobility"`          // Carrier mobility (m²/V·s)
	N0       float64 `json:"residualDensity"`   // Residual sheet carrier density (1/m²)
	VDirac   float64 `json:"diracVoltage"`      // Dirac point voltage (V)
	RContact float64 `json:"contactResistance"` // Series contact resistance (Ω)
}

// Validate checks the parameter invariants. Geometry, permittivity, mobility
// and the residual density must be strictly positive; RContact may be zero
// but not negative.
func (p *Params) Validate() error {
	checks := []struct {
		field string
		value float64
	}{
		{"channelLength", p.L},
		{"channelWidth", p.W},
		{"oxideThickness", p.Tox},
		{"oxidePermittivity", p.EpsR},
		{"mobility", p.Mobility},
		{"residualDensity", p.N0},
	}
	for _, c := range checks {
		if !(c.value > 0) {
			return &ParamError{Field: c.field, Value: c.value}
		}
	}
	if p.RContact < 0 {
		return &ParamError{Field: "contactResistance", Value: p.RContact}
	}
	return nil
}

// Cox returns the gate oxide capacitance per unit area (F/m²).
func (p *Params) Cox() float64 {
	return p.EpsR * consts.EPSILON0 / p.Tox
}
