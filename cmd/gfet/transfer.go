package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gfet-sim/pkg/output"
	"gfet-sim/pkg/sweep"
)

func NewTransferCommand() *cobra.Command {
	opts := newRunOptions()
	var vdsRaw string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Sweep Vgs at fixed Vds (transfer characteristic)",
		Example: `  gfet transfer --vds 50m --from -2 --to 2 --points 101
  gfet transfer --params device.json --vds 0.1 --sweep-csv vgs.csv --plot-dir plots`,
		RunE: func(cmd *cobra.Command, args []string) error {
			vds, err := sweep.ParseValue(vdsRaw)
			if err != nil {
				return fmt.Errorf("flag --vds: %v", err)
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

			logrus.Debugf("transfer sweep: %d points at Vds=%g V", len(values), vds)
			points := sim.Transfer(values, vds)

			return opts.finish(points, "Vgs", func() error {
				return output.SaveTransferPlots(opts.plotDir, vds, points)
			})
		},
	}

	cmd.Flags().StringVar(&vdsRaw, "vds", "50m", "fixed drain-source voltage")
	opts.registerFlags(cmd)

	return cmd
}
