package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel = "info"

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.Kitchen,
	})
	return nil
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gfet",
		Short: "gfet simulates the DC characteristics of graphene field-effect transistors",
		Long: `gfet simulates the DC characteristics of graphene field-effect transistors.

Graphene has no bandgap, so the channel never pinches off: conductivity passes
through a minimum at the Dirac point and the carrier type flips between
electrons and holes. gfet resolves the resulting position-dependent carrier
density along the channel and solves the implicit current equation point by
point over a gate or drain sweep.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}

	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", logLevel,
		"log level (trace, debug, info, warn, error)")

	cmd.AddCommand(
		NewTransferCommand(),
		NewOutputCommand(),
	)

	return cmd
}
