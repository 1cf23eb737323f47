// Package config loads simulation settings from JSON files.
package config

import (
	"encoding/json"
	"os"

	pkgerrors "github.com/pkg/errors"

	"gfet-sim/pkg/device"
	"gfet-sim/pkg/transport"
)

// Solver selects and tunes the operating-point solver.
type Solver struct {
	Method          string  `json:"method"` // "shooting" or "network"
	Segments        int     `json:"segments"`
	MaxIter         int     `json:"maxIterations"`
	RelTol          float64 `json:"relTol"`
	AbsTol          float64 `json:"absTol"`
	Gmin            float64 `json:"gmin"`
	Probe           float64 `json:"probeVoltage"`
	MaxBracketTries int     `json:"maxBracketTries"`
	Workers         int     `json:"workers"`
}

// Config is the on-disk simulation setup: one device plus solver tuning.
type Config struct {
	Device device.Params `json:"device"`
	Solver Solver        `json:"solver"`
}

// Default returns the reference device from the model documentation and the
// standard solver tuning.
func Default() *Config {
	tc := transport.DefaultConfig()
	return &Config{
		Device: device.Params{
			L:        1e-6,    // 1 um
			W:        10e-6,   // 10 um
			Tox:      300e-9,  // 300 nm
			EpsR:     3.9,     // SiO2
			Mobility: 0.1,     // m²/V·s
			N0:       1e16,    // 1/m²
			VDirac:   0.2,     // V
			RContact: 0,
		},
		Solver: Solver{
			Method:          "shooting",
			Segments:        tc.Segments,
			MaxIter:         tc.MaxIter,
			RelTol:          tc.RelTol,
			AbsTol:          tc.AbsTol,
			Gmin:            tc.Gmin,
			Probe:           tc.Probe,
			MaxBracketTries: tc.MaxBracketTries,
			Workers:         1,
		},
	}
}

// Load reads a JSON config file over the defaults, so partial files only
// override the fields they mention.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "reading config %s", path)
	}

	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, pkgerrors.Wrapf(err, "parsing config %s", path)
	}

	if err := c.Device.Validate(); err != nil {
		return nil, pkgerrors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "encoding config")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return pkgerrors.Wrapf(err, "writing config %s", path)
	}
	return nil
}

// TransportConfig converts the solver section into the transport package's
// numeric settings.
func (c *Config) TransportConfig() transport.Config {
	return transport.Config{
		Segments:        c.Solver.Segments,
		MaxIter:         c.Solver.MaxIter,
		RelTol:          c.Solver.RelTol,
		AbsTol:          c.Solver.AbsTol,
		Gmin:            c.Solver.Gmin,
		Probe:           c.Solver.Probe,
		MaxBracketTries: c.Solver.MaxBracketTries,
	}
}

// NewSolver builds the configured solver implementation.
func (c *Config) NewSolver() (transport.Solver, error) {
	switch c.Solver.Method {
	case "", "shooting":
		return transport.NewShootingSolver(&c.Device, c.TransportConfig())
	case "network":
		return transport.NewNetworkSolver(&c.Device, c.TransportConfig())
	default:
		return nil, pkgerrors.Errorf("unknown solver method %q", c.Solver.Method)
	}
}
