// Package cmd provides the command-line interface of the ground temperature
// tool.
package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// Environment variables that supply flag defaults. They may be set in a .env
// file in the working directory.
const (
	EnvOutput      = "GROUNDTEMP_OUTPUT"
	EnvMonitorPort = "GROUNDTEMP_MONITOR_PORT"
)

// NewRootCommand creates the command tree.
func NewRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "groundtemp",
		Short: "Monthly ground temperature models for building energy runs.",
		Long: "groundtemp reads Site:GroundTemperature objects from an IDF or " +
			"YAML input, reports the resulting models, looks up temperatures, " +
			"and runs a timestep simulation that records them.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			err := godotenv.Load()
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(
				cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log lifecycle messages")

	root.AddCommand(
		newReportCommand(),
		newLookupCommand(),
		newRunCommand(),
		newShowCommand(),
	)

	return root
}

// Execute runs the command line and exits the process.
func Execute() {
	err := NewRootCommand().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func addInputFlag(cmd *cobra.Command, input *string) {
	cmd.Flags().StringVarP(input, "input", "i", "",
		"Input file (.idf, .yaml, or .yml)")

	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

func envOr(name, fallback string) string {
	if v, ok := lookupEnv(name); ok {
		return v
	}

	return fallback
}
