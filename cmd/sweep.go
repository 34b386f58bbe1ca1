package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/schedsim/schedsim/sim"
)

var (
	sweepConfigPath  string // YAML sweep file
	sweepOut         string // Overrides the sweep file's output
	sweepParallelism int    // Overrides the sweep file's parallelism
)

// sweepCmd runs every (policy, rate) pair and appends one row per run
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run an arrival-rate sweep for each policy and append rows to a results file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := DefaultSweepConfig()
		if sweepConfigPath != "" {
			var err error
			if cfg, err = LoadSweepConfig(sweepConfigPath); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("out") {
			cfg.Output = sweepOut
		}
		if cmd.Flags().Changed("parallelism") {
			cfg.Parallelism = sweepParallelism
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		rows, err := runSweep(cfg, cmd.OutOrStdout())
		if err != nil {
			var ie *sim.InvariantError
			if errors.As(err, &ie) && ie.Stats != nil {
				logrus.Fatalf("sweep aborted: %v\n%s", err, ie.Stats)
			}
			return err
		}
		if err := sim.AppendResults(cfg.Output, rows...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "appended %d rows to %s\n", len(rows), cfg.Output)
		return nil
	},
}

// runSweep runs the sweep's simulations concurrently and returns their rows
// in sweep order: every rate for the first policy, then the next policy.
func runSweep(cfg SweepConfig, progress io.Writer) ([]sim.ResultRow, error) {
	runs, err := cfg.Runs()
	if err != nil {
		return nil, err
	}

	rows := make([]sim.ResultRow, len(runs))
	var g errgroup.Group
	g.SetLimit(cfg.Parallelism)
	for i, rc := range runs {
		g.Go(func() error {
			s, err := sim.NewScheduler(rc)
			if err != nil {
				return err
			}
			if err := s.Run(); err != nil {
				return fmt.Errorf("%s at rate %v: %w", rc.Policy, rc.ArrivalRate, err)
			}
			rows[i] = s.CollectMetrics().Row()
			logrus.Infof("finished %s at arrival_rate = %v", rc.Policy, rc.ArrivalRate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	current := sim.Policy(0)
	for _, r := range rows {
		if r.Policy != current {
			current = r.Policy
			fmt.Fprintf(progress, "starting %s\n", current)
		}
		fmt.Fprintf(progress, "arrival_rate = %v\n", r.ArrivalRate)
	}
	return rows, nil
}

func init() {
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "Sweep YAML file (defaults to the built-in 1..30 sweep)")
	sweepCmd.Flags().StringVar(&sweepOut, "out", "data.csv", "Results file to append to")
	sweepCmd.Flags().IntVar(&sweepParallelism, "parallelism", 4, "Simulations to run at once")

	rootCmd.AddCommand(sweepCmd)
}
