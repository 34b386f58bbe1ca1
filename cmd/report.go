package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/schedsim/schedsim/sim"
)

var (
	reportResultsPath string // Results CSV to read
	reportMetric      string // Metric shown in the table
)

// reportCmd renders a per-policy comparison table from a results file
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compare policies across arrival rates from a results file",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := sim.ReadResults(reportResultsPath)
		if err != nil {
			return err
		}
		return renderReport(cmd.OutOrStdout(), rows, reportMetric)
	},
}

// renderReport writes one table row per arrival rate and one column per
// policy. When a (policy, rate) pair appears more than once, the last row
// in the file wins.
func renderReport(w io.Writer, rows []sim.ResultRow, metric string) error {
	if len(rows) == 0 {
		return fmt.Errorf("results file has no rows")
	}

	var policies []sim.Policy
	var rates []float64
	values := make(map[sim.Policy]map[float64]float64)
	for _, r := range rows {
		v, err := r.Value(metric)
		if err != nil {
			return err
		}
		if _, ok := values[r.Policy]; !ok {
			values[r.Policy] = make(map[float64]float64)
			policies = append(policies, r.Policy)
		}
		if !slices.Contains(rates, r.ArrivalRate) {
			rates = append(rates, r.ArrivalRate)
		}
		values[r.Policy][r.ArrivalRate] = v
	}
	slices.Sort(policies)
	slices.Sort(rates)

	fmt.Fprintln(w, metric)
	table := tablewriter.NewWriter(w)
	header := []string{"lambda"}
	for _, p := range policies {
		header = append(header, p.String())
	}
	table.SetHeader(header)

	body := make([][]string, 0, len(rates))
	for _, rate := range rates {
		line := []string{strconv.FormatFloat(rate, 'g', -1, 64)}
		for _, p := range policies {
			v, ok := values[p][rate]
			if !ok {
				line = append(line, "-")
				continue
			}
			line = append(line, fmt.Sprintf("%.6f", v))
		}
		body = append(body, line)
	}
	table.AppendBulk(body)

	footer := []string{"mean"}
	for _, p := range policies {
		col := make([]float64, 0, len(values[p]))
		for _, rate := range rates {
			if v, ok := values[p][rate]; ok {
				col = append(col, v)
			}
		}
		footer = append(footer, fmt.Sprintf("%.6f", stat.Mean(col, nil)))
	}
	table.SetFooter(footer)
	table.Render()
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportResultsPath, "results", "data.csv", "Results CSV to read")
	reportCmd.Flags().StringVar(&reportMetric, "metric", sim.MetricAvgTurnaround,
		"Metric to compare (average turnaround time, throughput, average wait time, average time events in queue)")

	rootCmd.AddCommand(reportCmd)
}
