package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/sarchlab/groundtemp/datarecording"
	"github.com/spf13/cobra"
)

func newShowCommand() *cobra.Command {
	var (
		object      string
		limit       int
		diagnostics bool
	)

	cmd := &cobra.Command{
		Use:   "show DATABASE",
		Short: "Print recorded ground temperatures from a run database.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer tw.Flush()

			if diagnostics {
				return showDiagnostics(cmd.Context(), reader, tw)
			}

			params := datarecording.QueryParams{
				OrderBy: "Time, Object",
				Limit:   limit,
			}
			if object != "" {
				params.Where = "Object = ? COLLATE NOCASE"
				params.Args = []any{object}
			}

			reader.MapTable(datarecording.TemperatureTable,
				datarecording.TemperatureEntry{})

			rows, total, err := reader.Query(cmd.Context(),
				datarecording.TemperatureTable, params)
			if err != nil {
				return err
			}

			fmt.Fprintln(tw, "Time (h)\tObject\tMonth\tTemperature (C)")
			for _, row := range rows {
				e := row.(*datarecording.TemperatureEntry)
				fmt.Fprintf(tw, "%.2f\t%s\t%d\t%.2f\n",
					e.Time/3600, e.Object, e.Month, e.Temperature)
			}

			fmt.Fprintf(tw, "(%d of %d rows)\n", len(rows), total)

			return nil
		},
	}

	cmd.Flags().StringVar(&object, "object", "", "Only show one object")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum rows to print, 0 for all")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false,
		"Print the recorded diagnostics instead")

	return cmd
}

func showDiagnostics(
	ctx context.Context,
	reader datarecording.DataReader,
	tw *tabwriter.Writer,
) error {
	reader.MapTable(datarecording.DiagnosticTable,
		datarecording.DiagnosticEntry{})

	rows, _, err := reader.Query(ctx, datarecording.DiagnosticTable,
		datarecording.QueryParams{})
	if err != nil {
		return err
	}

	for _, row := range rows {
		e := row.(*datarecording.DiagnosticEntry)

		severity := e.Severity
		if e.Continuation {
			severity = "~~~"
		}

		fmt.Fprintf(tw, "%s\t%s\n", severity, e.Message)
	}

	return nil
}
