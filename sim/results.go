package sim

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// resultColumns is the column count of a results file row.
const resultColumns = 8

// ResultRow is one line of a results file: the run's parameters followed by
// its four headline metrics. Results files have no header and are only ever
// appended to, so rows from many runs accumulate in sweep order.
type ResultRow struct {
	Policy         Policy
	ArrivalRate    float64
	AvgServiceTime float64
	Quantum        float64
	AvgTurnaround  float64
	Throughput     float64
	AvgWait        float64
	AvgQueueLen    float64
}

// Row converts the metrics into a results file row.
func (m Metrics) Row() ResultRow {
	return ResultRow{
		Policy:         m.Policy,
		ArrivalRate:    m.ArrivalRate,
		AvgServiceTime: m.AvgServiceTime,
		Quantum:        m.Quantum,
		AvgTurnaround:  m.AvgTurnaround,
		Throughput:     m.Throughput,
		AvgWait:        m.AvgWait,
		AvgQueueLen:    m.AvgQueueLen,
	}
}

// Record renders the row as CSV fields.
func (r ResultRow) Record() []string {
	return []string{
		strconv.Itoa(int(r.Policy)),
		formatFloat(r.ArrivalRate),
		formatFloat(r.AvgServiceTime),
		formatFloat(r.Quantum),
		formatFloat(r.AvgTurnaround),
		formatFloat(r.Throughput),
		formatFloat(r.AvgWait),
		formatFloat(r.AvgQueueLen),
	}
}

// Value returns the named headline metric.
func (r ResultRow) Value(metric string) (float64, error) {
	switch metric {
	case MetricAvgTurnaround:
		return r.AvgTurnaround, nil
	case MetricThroughput:
		return r.Throughput, nil
	case MetricAvgWait:
		return r.AvgWait, nil
	case MetricAvgQueueLen:
		return r.AvgQueueLen, nil
	default:
		return 0, fmt.Errorf("unknown metric %q", metric)
	}
}

func parseResultRow(rec []string) (ResultRow, error) {
	if len(rec) != resultColumns {
		return ResultRow{}, fmt.Errorf("want %d columns, got %d", resultColumns, len(rec))
	}
	// Older files were written with a float policy id ("1.0").
	id, err := strconv.ParseFloat(rec[0], 64)
	if err != nil {
		return ResultRow{}, fmt.Errorf("policy id %q: %w", rec[0], err)
	}
	p := Policy(int(id))
	if !p.IsValid() {
		return ResultRow{}, fmt.Errorf("%w: %s", ErrUnknownPolicy, rec[0])
	}
	vals := make([]float64, resultColumns-1)
	for i := range vals {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return ResultRow{}, fmt.Errorf("column %d: %w", i+2, err)
		}
		vals[i] = v
	}
	return ResultRow{
		Policy:         p,
		ArrivalRate:    vals[0],
		AvgServiceTime: vals[1],
		Quantum:        vals[2],
		AvgTurnaround:  vals[3],
		Throughput:     vals[4],
		AvgWait:        vals[5],
		AvgQueueLen:    vals[6],
	}, nil
}

// AppendResults appends rows to the results file at path, creating it if needed.
func AppendResults(path string, rows ...ResultRow) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening results file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing results file: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	for _, r := range rows {
		if err := w.Write(r.Record()); err != nil {
			return fmt.Errorf("writing results row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadResults parses every row of the results file at path.
func ReadResults(path string) ([]ResultRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}
	defer f.Close()
	return ParseResults(f)
}

// ParseResults parses results rows from r.
func ParseResults(r io.Reader) ([]ResultRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []ResultRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("results line %d: %w", line, err)
		}
		row, err := parseResultRow(rec)
		if err != nil {
			return nil, fmt.Errorf("results line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

// WriteMetrics appends this run's metrics row to the results file at path.
func (s *Scheduler) WriteMetrics(path string) error {
	return AppendResults(path, s.CollectMetrics().Row())
}
