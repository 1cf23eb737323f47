package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gfet-sim/pkg/output"
	"gfet-sim/pkg/sweep"
)

func NewOutputCommand() *cobra.Command {
	opts := newRunOptions()
	var vgsRaw string

	cmd := &cobra.Command{
		Use:   "output",
		Short: "Sweep Vds at fixed Vgs (output characteristic)",
		Example: `  gfet output --vgs 0.5 --from 0 --to 1 --points 101
  gfet output --params device.json --vgs 2 --from 0 --to 2 --csv output.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vgs, err := sweep.ParseValue(vgsRaw)
			if err != nil {
				return fmt.Errorf("flag --vgs: %v", err)
			}

			cfg, err := opts.buildConfig()
			if err != nil {
				return err
			}
			values, err := opts.buildSweep()
			if err != nil {
				return err
			}
			sim, err := opts.newSimulator(cfg)
			if err != nil {
				return err
			}

			logrus.Debugf("output sweep: %d points at Vgs=%g V", len(values), vgs)
			points := sim.Output(values, vgs)

			return opts.finish(points, "Vds", func() error {
				return output.SaveOutputPlot(opts.plotDir, vgs, points)
			})
		},
	}

	cmd.Flags().StringVar(&vgsRaw, "vgs", "0.5", "fixed gate-source voltage")
	opts.registerFlags(cmd)

	return cmd
}
