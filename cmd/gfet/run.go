package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gfet-sim/pkg/analysis"
	"gfet-sim/pkg/config"
	"gfet-sim/pkg/output"
	"gfet-sim/pkg/sweep"
	"gfet-sim/pkg/util"
)

// runOptions collects the flags shared by the transfer and output commands.
type runOptions struct {
	paramsPath string
	deviceOver map[string]*string // flag name -> raw override value

	method   string
	segments int
	maxIter  int
	workers  int

	sweepFrom string
	sweepTo   string
	points    int
	sweepType string
	sweepCSV  string

	csvPath string
	plotDir string
}

func newRunOptions() *runOptions {
	return &runOptions{deviceOver: make(map[string]*string)}
}

func (o *runOptions) registerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&o.paramsPath, "params", "", "JSON device/solver parameter file")
	for _, name := range []string{"length", "width", "tox", "epsr", "mobility", "n0", "vdirac", "rcontact"} {
		s := new(string)
		o.deviceOver[name] = s
		flags.StringVar(s, name, "", "override device "+name+" (unit factors allowed, e.g. 1u)")
	}

	flags.StringVar(&o.method, "method", "", "solver method: shooting or network")
	flags.IntVar(&o.segments, "segments", 0, "channel discretization segments")
	flags.IntVar(&o.maxIter, "max-iter", 0, "solver iteration cap")
	flags.IntVar(&o.workers, "workers", 0, "parallel point evaluations")

	flags.StringVar(&o.sweepFrom, "from", "", "sweep start value")
	flags.StringVar(&o.sweepTo, "to", "", "sweep stop value")
	flags.IntVar(&o.points, "points", 101, "number of sweep points")
	flags.StringVar(&o.sweepType, "sweep-type", "linear", "sweep spacing: linear, dual-linear or log")
	flags.StringVar(&o.sweepCSV, "sweep-csv", "", "load sweep values from a CSV file instead")

	flags.StringVar(&o.csvPath, "csv", "", "export results to this CSV file")
	flags.StringVar(&o.plotDir, "plot-dir", "", "render PNG plots into this directory")
}

// buildConfig merges the parameter file (or defaults) with flag overrides.
func (o *runOptions) buildConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.paramsPath != "" {
		loaded, err := config.Load(o.paramsPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	targets := map[string]*float64{
		"length":   &cfg.Device.L,
		"width":    &cfg.Device.W,
		"tox":      &cfg.Device.Tox,
		"epsr":     &cfg.Device.EpsR,
		"mobility": &cfg.Device.Mobility,
		"n0":       &cfg.Device.N0,
		"vdirac":   &cfg.Device.VDirac,
		"rcontact": &cfg.Device.RContact,
	}
	for name, raw := range o.deviceOver {
		if *raw == "" {
			continue
		}
		v, err := sweep.ParseValue(*raw)
		if err != nil {
			return nil, fmt.Errorf("flag --%s: %v", name, err)
		}
		*targets[name] = v
	}

	if o.method != "" {
		cfg.Solver.Method = o.method
	}
	if o.segments > 0 {
		cfg.Solver.Segments = o.segments
	}
	if o.maxIter > 0 {
		cfg.Solver.MaxIter = o.maxIter
	}
	if o.workers > 0 {
		cfg.Solver.Workers = o.workers
	}

	if err := cfg.Device.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSweep materializes the requested value sequence.
func (o *runOptions) buildSweep() ([]float64, error) {
	if o.sweepCSV != "" {
		return sweep.FromCSV(o.sweepCSV)
	}
	if o.sweepFrom == "" || o.sweepTo == "" {
		return nil, fmt.Errorf("either --sweep-csv or both --from and --to are required")
	}

	from, err := sweep.ParseValue(o.sweepFrom)
	if err != nil {
		return nil, fmt.Errorf("flag --from: %v", err)
	}
	to, err := sweep.ParseValue(o.sweepTo)
	if err != nil {
		return nil, fmt.Errorf("flag --to: %v", err)
	}

	switch o.sweepType {
	case "linear":
		return sweep.Linear(from, to, o.points)
	case "dual-linear", "dual":
		return sweep.DualLinear(from, to, o.points)
	case "log":
		return sweep.Log(from, to, o.points)
	default:
		return nil, fmt.Errorf("unknown sweep type %q", o.sweepType)
	}
}

func (o *runOptions) newSimulator(cfg *config.Config) (*analysis.Simulator, error) {
	solver, err := cfg.NewSolver()
	if err != nil {
		return nil, err
	}
	sim := analysis.New(solver)
	sim.SetWorkers(cfg.Solver.Workers)
	return sim, nil
}

// finish prints, exports and summarizes a completed sweep.
func (o *runOptions) finish(points []analysis.Point, xName string, export func() error) error {
	printPoints(points, xName)

	failed := 0
	for _, p := range points {
		if p.Failed() {
			failed++
		}
	}

	if failed > 0 {
		color.New(color.FgRed).Fprintf(color.Error, "%d of %d points did not converge\n", failed, len(points))
	}
	if failed == len(points) {
		return fmt.Errorf("no point converged")
	}

	if o.csvPath != "" {
		if err := output.WriteCSV(o.csvPath, xName, points); err != nil {
			return err
		}
		logrus.Infof("results exported to %s", o.csvPath)
	}
	if o.plotDir != "" {
		if err := export(); err != nil {
			return err
		}
		logrus.Infof("plots saved under %s", o.plotDir)
	}

	return nil
}

func printPoints(points []analysis.Point, xName string) {
	fmt.Printf("\nSweep Results (%d points):\n", len(points))
	fmt.Println("------------------------------------------------------------")
	for _, p := range points {
		if p.Failed() {
			fmt.Printf("%s=%-11s %s\n", xName, util.FormatValueFactor(p.X, "V"),
				color.RedString("failed: %v", p.Err))
			continue
		}
		fmt.Printf("%s=%-11s Ids=%-13s Rds=%s\n", xName,
			util.FormatValueFactor(p.X, "V"),
			util.FormatValueFactor(p.Ids, "A"),
			util.FormatValueFactor(p.Rds, "Ohm"))
	}
}
