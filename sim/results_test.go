package sim

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim/internal/testutil"
)

func TestAppendResults_RoundTrip(t *testing.T) {
	// GIVEN rows appended in two separate calls
	path := testutil.TempResultsPath(t)
	first := ResultRow{Policy: PolicyFCFS, ArrivalRate: 10, AvgServiceTime: 0.06, Quantum: 0.04,
		AvgTurnaround: 0.15, Throughput: 9.98, AvgWait: 0.09, AvgQueueLen: 0.9}
	second := ResultRow{Policy: PolicyRR, ArrivalRate: 11, AvgServiceTime: 0.06, Quantum: 0.04,
		AvgTurnaround: 0.2, Throughput: 10.9, AvgWait: 0.14, AvgQueueLen: 1.54}
	require.NoError(t, AppendResults(path, first))
	require.NoError(t, AppendResults(path, second))

	// WHEN the file is read back
	rows, err := ReadResults(path)

	// THEN both rows survive in order
	require.NoError(t, err)
	assert.Equal(t, []ResultRow{first, second}, rows)
}

func TestAppendResults_FormatHasNoHeader(t *testing.T) {
	path := testutil.TempResultsPath(t)
	require.NoError(t, AppendResults(path, ResultRow{Policy: PolicySTRF, ArrivalRate: 3, AvgServiceTime: 0.06, Quantum: 0.04,
		AvgTurnaround: 1, Throughput: 2, AvgWait: 3, AvgQueueLen: 4}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2,3,0.06,0.04,1,2,3,4\n", string(data))
}

func TestParseResults_AcceptsFloatPolicyIDs(t *testing.T) {
	rows, err := ParseResults(strings.NewReader("1.0,10.0,0.06,0.04,0.1,9.9,0.04,0.4\n3,1,0.06,0.04,0.1,1,0,0\n"))

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, PolicyFCFS, rows[0].Policy)
	assert.Equal(t, 10.0, rows[0].ArrivalRate)
	assert.Equal(t, PolicyRR, rows[1].Policy)
}

func TestParseResults_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too few columns", "1,10,0.06\n"},
		{"unknown policy", "7,10,0.06,0.04,0.1,9.9,0.04,0.4\n"},
		{"bad number", "1,ten,0.06,0.04,0.1,9.9,0.04,0.4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResults(strings.NewReader(tt.input))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestReadResults_MissingFile(t *testing.T) {
	_, err := ReadResults(testutil.TempResultsPath(t))
	assert.Error(t, err)
}

func TestScheduler_WriteMetrics(t *testing.T) {
	// GIVEN a finished run
	s := newReplayScheduler(t, PolicyFCFS, 0, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, []float64{1, 1, 1, 1, 1})
	require.NoError(t, s.Run())
	path := testutil.TempResultsPath(t)

	// WHEN its metrics are written twice
	require.NoError(t, s.WriteMetrics(path))
	require.NoError(t, s.WriteMetrics(path))

	// THEN the file holds two identical rows matching the metrics
	rows, err := ReadResults(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, rows[0], rows[1])
	assert.Equal(t, s.CollectMetrics().Row(), rows[0])
}

func TestResultRow_Value(t *testing.T) {
	r := ResultRow{AvgTurnaround: 1, Throughput: 2, AvgWait: 3, AvgQueueLen: 4}

	for name, want := range map[string]float64{
		MetricAvgTurnaround: 1, MetricThroughput: 2, MetricAvgWait: 3, MetricAvgQueueLen: 4,
	} {
		got, err := r.Value(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	_, err := r.Value("latency")
	assert.Error(t, err)
}
