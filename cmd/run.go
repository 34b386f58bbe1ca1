package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

const runUsage = `this program takes 4 arguments and should be executed as
schedsim run arg1 arg2 arg3 arg4
arg1: integer 1-3 representing the desired scheduling algorithm. 	1) FCFS 	2) STRF 	3) RR
arg2: average arrival rate (average processes per second)
arg3: float, average burst time (0.06 is recommended)
arg4: float, time quantum for RR (0.04 is recommended and this argument may be omitted if arg1 is not 3)
`

var (
	runSeed            int64  // Seed for arrival and burst sampling
	runCompletions     int    // Processes to complete before stopping
	runArrivalProcess  string // Inter-arrival gap distribution
	runCheckInvariants bool   // Walk the event list after every event
	runTraceLevel      string // Decision trace level
	runOut             string // Results file to append a row to
	runSamples         string // Per-process samples file
	runPlain           bool   // Print metrics as plain text instead of a table
)

// runOutputs selects where a single run writes its results.
type runOutputs struct {
	ResultsPath string // append a results row when set
	SamplesPath string // write per-process samples when set
	Plain       bool
}

// runCmd executes a single simulation from positional arguments
var runCmd = &cobra.Command{
	Use:   "run <policy> <rate> <burst> [quantum]",
	Short: "Run one scheduling simulation",
	Long: "Run one simulation and print its statistics and metrics. policy is 1|2|3 or fcfs|strf|rr; " +
		"quantum is required for rr only. Invalid arguments print usage and exit cleanly.",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		cfg, err := parseRunArgs(args)
		if err != nil {
			fmt.Fprintf(out, "%v\n%s", err, runUsage)
			return
		}
		cfg.Seed = runSeed
		cfg.TargetCompletions = runCompletions
		cfg.ArrivalProcess = runArrivalProcess
		cfg.CheckInvariants = runCheckInvariants
		cfg.Trace = trace.TraceConfig{Level: trace.TraceLevel(runTraceLevel)}

		outputs := runOutputs{ResultsPath: runOut, SamplesPath: runSamples, Plain: runPlain}
		if err := runSimulation(cfg, out, outputs); err != nil {
			var ie *sim.InvariantError
			if errors.As(err, &ie) && ie.Stats != nil {
				logrus.Fatalf("simulation aborted: %v\n%s", err, ie.Stats)
			}
			logrus.Fatalf("simulation failed: %v", err)
		}
	},
}

// parseRunArgs turns the positional arguments into a base Config.
func parseRunArgs(args []string) (sim.Config, error) {
	if len(args) < 3 || len(args) > 4 {
		return sim.Config{}, fmt.Errorf("expected 3 or 4 arguments, got %d", len(args))
	}
	policy, err := sim.ParsePolicy(args[0])
	if err != nil {
		return sim.Config{}, err
	}
	rate, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return sim.Config{}, fmt.Errorf("arrival rate %q: %w", args[1], err)
	}
	burst, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return sim.Config{}, fmt.Errorf("average burst %q: %w", args[2], err)
	}
	quantum := 0.0
	if policy.UsesQuantum() {
		if len(args) != 4 {
			return sim.Config{}, fmt.Errorf("%s needs a quantum", policy)
		}
		if quantum, err = strconv.ParseFloat(args[3], 64); err != nil {
			return sim.Config{}, fmt.Errorf("quantum %q: %w", args[3], err)
		}
	}
	cfg := sim.DefaultConfig(policy, rate, burst, quantum)
	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	return cfg, nil
}

// runSimulation runs one simulation, prints its stats and metrics to out and
// optionally appends a results row and writes per-process samples.
func runSimulation(cfg sim.Config, out io.Writer, outputs runOutputs) error {
	s, err := sim.NewScheduler(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d %v %v %v\n", int(cfg.Policy), cfg.ArrivalRate, cfg.AvgServiceTime, cfg.Quantum)
	if err := s.Run(); err != nil {
		return err
	}

	fmt.Fprint(out, s.Stats())
	m := s.CollectMetrics()
	if outputs.Plain {
		m.Print(out)
	} else {
		printMetricsTable(out, m)
	}
	if s.Trace != nil {
		printTraceSummary(out, trace.Summarize(s.Trace))
	}

	if outputs.ResultsPath != "" {
		if err := s.WriteMetrics(outputs.ResultsPath); err != nil {
			return err
		}
		logrus.Infof("appended results row to %s", outputs.ResultsPath)
	}
	if outputs.SamplesPath != "" {
		if err := s.SaveSamples(outputs.SamplesPath); err != nil {
			return err
		}
	}
	return nil
}

func printMetricsTable(w io.Writer, m sim.Metrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{sim.MetricAvgTurnaround, fmt.Sprintf("%.6f", m.AvgTurnaround)},
		{sim.MetricThroughput, fmt.Sprintf("%.6f", m.Throughput)},
		{sim.MetricAvgWait, fmt.Sprintf("%.6f", m.AvgWait)},
		{sim.MetricAvgQueueLen, fmt.Sprintf("%.6f", m.AvgQueueLen)},
		{"p90 turnaround time", fmt.Sprintf("%.6f", m.P90Turnaround)},
		{"p99 turnaround time", fmt.Sprintf("%.6f", m.P99Turnaround)},
		{"cpu utilization", fmt.Sprintf("%.4f", m.CPUUtilization)},
	})
	table.SetFooter([]string{"completed", strconv.Itoa(m.Completed)})
	table.Render()
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Decision Trace ===")
	fmt.Fprintf(w, "Dispatches           : %d\n", ts.TotalDispatches)
	fmt.Fprintf(w, "Preemptions          : %d\n", ts.Preemptions)
	fmt.Fprintf(w, "Mean Slice           : %.6f\n", ts.MeanSlice)
	fmt.Fprintf(w, "Max Dispatches/Proc  : %d\n", ts.MaxDispatchesPerProcess)
}

func init() {
	runCmd.Flags().Int64Var(&runSeed, "seed", sim.DefaultSeed, "Seed for arrival and burst sampling")
	runCmd.Flags().IntVar(&runCompletions, "completions", sim.DefaultTargetCompletions, "Number of processes to complete")
	runCmd.Flags().StringVar(&runArrivalProcess, "arrival-process", workload.ProcessPoissonMs,
		"Inter-arrival gap distribution (poisson-ms, exponential)")
	runCmd.Flags().BoolVar(&runCheckInvariants, "check-invariants", false, "Verify event list invariants after every event")
	runCmd.Flags().StringVar(&runTraceLevel, "trace", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&runOut, "out", "", "Append a results row to this CSV file")
	runCmd.Flags().StringVar(&runSamples, "samples", "", "Write per-process samples to this CSV file")
	runCmd.Flags().BoolVar(&runPlain, "plain", false, "Print metrics as plain text instead of a table")

	rootCmd.AddCommand(runCmd)
}
