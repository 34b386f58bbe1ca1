// sim/metrics_utils.go
package sim

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// CalculatePercentile returns the p-th percentile (0-100) of data using the
// empirical quantile. data is not modified. Empty input yields 0.
func CalculatePercentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := slices.Clone(data)
	slices.Sort(sorted)
	return stat.Quantile(p/100, stat.Empirical, sorted, nil)
}

// samples returns per-process turnaround and wait times in completion order.
func (s *Scheduler) samples() (turnarounds, waits []float64) {
	turnarounds = make([]float64, len(s.Done))
	waits = make([]float64, len(s.Done))
	for i, p := range s.Done {
		turnarounds[i] = p.Turnaround()
		waits[i] = p.Wait()
	}
	return turnarounds, waits
}

// SaveSamples writes one CSV row per completed process to fileName,
// truncating it: pid, arrival, burst, termination, turnaround, wait, dispatches.
func (s *Scheduler) SaveSamples(fileName string) (err error) {
	file, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating samples file %s: %w", fileName, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing samples file %s: %w", fileName, closeErr)
		}
	}()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"pid", "arrival", "burst", "termination", "turnaround", "wait", "dispatches"}); err != nil {
		return err
	}
	for _, p := range s.Done {
		row := []string{
			strconv.Itoa(p.ID),
			formatFloat(p.ArrivalTime),
			formatFloat(p.BurstTime),
			formatFloat(p.TerminationTime),
			formatFloat(p.Turnaround()),
			formatFloat(p.Wait()),
			strconv.Itoa(p.Dispatches),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
