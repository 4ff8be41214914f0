package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/sarchlab/groundtemp/input"
	"github.com/sarchlab/groundtemp/simulation"
	"github.com/spf13/cobra"
)

type runOptions struct {
	input       string
	output      string
	monitor     bool
	port        int
	open        bool
	trendDepth  int
	trendSource string
	traceEvents bool
	config      simulation.RunConfig
}

func newRunCommand() *cobra.Command {
	opts := runOptions{config: simulation.DefaultRunConfig()}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a timestep simulation and record the ground temperatures.",
		Long: "run builds the models, steps through the configured period, " +
			"and records every resolved temperature to a SQLite database. " +
			"Defaults for --output and --port are read from " +
			EnvOutput + " and " + EnvMonitorPort + ".",
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.applyEnv(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	addInputFlag(cmd, &opts.input)

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "",
		"Database name without extension (default: unique name)")
	f.BoolVar(&opts.monitor, "monitor", false, "Serve the monitoring dashboard")
	f.IntVar(&opts.port, "port", 0, "Monitoring port (default: random)")
	f.BoolVar(&opts.open, "open", false, "Open the dashboard in a browser")
	f.IntVar(&opts.config.Days, "days", opts.config.Days, "Days to simulate")
	f.IntVar(&opts.config.TimestepsPerHour, "timesteps-per-hour",
		opts.config.TimestepsPerHour, "Zone timesteps per hour")
	f.IntVar(&opts.config.StartDayOfYear, "start-day",
		opts.config.StartDayOfYear, "Day of year the run starts on")
	f.IntVar(&opts.trendDepth, "trend-depth", 0,
		"Keep a trend of this many timesteps and report it at the end")
	f.StringVar(&opts.trendSource, "trend-variable", "Site Ground Temperature",
		"Output variable the trend follows")
	f.BoolVar(&opts.traceEvents, "trace-events", false,
		"Write one line per engine event to stderr")

	return cmd
}

func (o *runOptions) applyEnv(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("output") {
		o.output = envOr(EnvOutput, o.output)
	}

	if !cmd.Flags().Changed("port") {
		if v, ok := lookupEnv(EnvMonitorPort); ok {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", EnvMonitorPort, err)
			}

			o.port = port
		}
	}

	if o.open {
		o.monitor = true
	}

	return nil
}

func (o *runOptions) run(out, errOut io.Writer) error {
	if err := o.config.Validate(); err != nil {
		return err
	}

	reader, err := input.Open(o.input)
	if err != nil {
		return err
	}

	b := simulation.MakeBuilder().
		WithErrWriter(errOut).
		WithOutputFileName(o.output).
		WithLogger(slog.Default())
	if o.traceEvents {
		b = b.WithEventTrace(errOut)
	}

	if o.monitor {
		b = b.WithMonitorPort(o.port)
	} else {
		b = b.WithoutMonitoring()
	}

	s := b.Build()
	defer s.Terminate()

	if o.open {
		if err := s.GetMonitor().OpenDashboard(); err != nil {
			slog.Warn("cannot open dashboard", "err", err)
		}
	}

	var trend *simulation.TrendPlugin
	if o.trendDepth > 0 {
		trend = simulation.NewTrendPlugin(o.trendSource, o.trendDepth)
		s.RegisterPlugin(trend)
	}

	if err := s.ProcessInput(reader); err != nil {
		return err
	}

	if err := s.Run(o.config); err != nil {
		return err
	}

	printModels(out, s)

	if trend != nil {
		if err := printTrend(out, s, trend); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\n%s\n", s.GetDiagnostics().Summary())

	return nil
}

func printTrend(
	out io.Writer,
	s *simulation.Simulation,
	trend *simulation.TrendPlugin,
) error {
	x := s.GetExchange()

	h, err := x.TrendHandle(trend.TrendName())
	if err != nil {
		return err
	}

	avg, err := x.TrendAverage(h, trend.Depth)
	if err != nil {
		return err
	}

	direction, err := x.TrendDirection(h, trend.Depth)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s over the last %d timesteps: "+
		"average %.2f C, direction %+.4f C/h\n",
		trend.VariableType, trend.Depth, avg, direction)

	return nil
}
