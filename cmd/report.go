package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/sarchlab/groundtemp/input"
	"github.com/sarchlab/groundtemp/simulation"
	"github.com/spf13/cobra"
)

func newReportCommand() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the ground temperature models and print them.",
		Long: "report processes the input, prints the initialization audit, " +
			"the diagnostics, and a table of the registered models.",
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
				WithAuditWriter(cmd.OutOrStdout()).
				WithLogger(slog.Default()).
				Build()
			defer s.Terminate()

			inputErr := s.ProcessInput(reader)
			if inputErr != nil && !errors.Is(inputErr, simulation.ErrInputErrors) {
				return inputErr
			}

			printModels(cmd.OutOrStdout(), s)
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", s.GetDiagnostics().Summary())

			return inputErr
		},
	}

	addInputFlag(cmd, &inputPath)

	return cmd
}

func printModels(w io.Writer, s *simulation.Simulation) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Handle\tObject\tUser Input\tJan\tFeb\tMar\tApr\tMay\tJun\t"+
		"Jul\tAug\tSep\tOct\tNov\tDec")

	for i, m := range s.GetRegistry().Models() {
		fmt.Fprintf(tw, "%d\t%s\t%t", i, m.Name(), s.UserInputPresent(m.Name()))

		for _, t := range m.MonthlyTemperatures() {
			fmt.Fprintf(tw, "\t%.2f", t)
		}

		fmt.Fprintln(tw)
	}
}
