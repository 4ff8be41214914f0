package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sarchlab/groundtemp/groundtemp"
	"github.com/sarchlab/groundtemp/input"
	"github.com/sarchlab/groundtemp/simulation"
	"github.com/spf13/cobra"
)

func newLookupCommand() *cobra.Command {
	var (
		inputPath string
		object    string
		month     int
		seconds   float64
		depth     float64
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up one ground temperature.",
		Long: "lookup resolves a ground temperature model either to a month " +
			"(1 is January) or to elapsed simulated seconds and prints the " +
			"temperature in Celsius.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader, err := input.Open(inputPath)
			if err != nil {
				return err
			}

			s := simulation.MakeBuilder().
				WithoutMonitoring().
				WithoutRecording().
				WithErrWriter(cmd.ErrOrStderr()).
				WithLogger(slog.Default()).
				Build()
			defer s.Terminate()

			err = s.ProcessInput(reader)
			if err != nil && !errors.Is(err, simulation.ErrInputErrors) {
				return err
			}

			m, ok := s.Model(object)
			if !ok {
				return fmt.Errorf("no valid %s model", object)
			}

			var t float64
			if cmd.Flags().Changed("month") {
				t, err = groundtemp.GroundTemperatureAtMonth(m, depth, month)
			} else {
				t, err = groundtemp.GroundTemperatureAtSeconds(m, depth, seconds)
			}

			if err != nil {
				return err
			}

			_, err = io.WriteString(cmd.OutOrStdout(), fmt.Sprintf("%.2f\n", t))

			return err
		},
	}

	addInputFlag(cmd, &inputPath)
	cmd.Flags().StringVar(&object, "object", groundtemp.BuildingSurfaceObject,
		"Ground temperature object to look up")
	cmd.Flags().IntVar(&month, "month", 0, "Month, 1 to 12")
	cmd.Flags().Float64Var(&seconds, "seconds", 0, "Elapsed simulated seconds")
	cmd.Flags().Float64Var(&depth, "depth", 0, "Depth in meters")
	cmd.MarkFlagsMutuallyExclusive("month", "seconds")
	cmd.MarkFlagsOneRequired("month", "seconds")

	return cmd
}
