package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestCollectMetrics_HandBuiltFCFS(t *testing.T) {
	// GIVEN five overlapping one-unit jobs arriving 0.1 apart
	s := newReplayScheduler(t, PolicyFCFS, 0, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, []float64{1, 1, 1, 1, 1})
	require.NoError(t, s.Run())

	// WHEN metrics are collected
	m := s.CollectMetrics()

	// THEN turnarounds are 1.0, 1.9, 2.8, 3.7, 4.6
	assert.Equal(t, 5, m.Completed)
	assert.InDelta(t, 2.8, m.AvgTurnaround, 1e-9)
	assert.InDelta(t, 1.8, m.AvgWait, 1e-9)
	assert.InDelta(t, 5/5.1, m.Throughput, 1e-9)
	// rate is 1, so the queue estimate equals the mean wait
	assert.InDelta(t, 1.8, m.AvgQueueLen, 1e-9)
	assert.InDelta(t, 3.6, m.MaxWait, 1e-9)
	assert.InDelta(t, 5/5.1, m.CPUUtilization, 1e-9)
}

func TestCollectMetrics_WaitIdentity(t *testing.T) {
	for _, policy := range AllPolicies() {
		t.Run(policy.String(), func(t *testing.T) {
			s, err := NewScheduler(smallConfig(policy))
			require.NoError(t, err)
			require.NoError(t, s.Run())

			m := s.CollectMetrics()

			turnarounds := make([]float64, len(s.Done))
			bursts := make([]float64, len(s.Done))
			for i, p := range s.Done {
				turnarounds[i] = p.Turnaround()
				bursts[i] = p.BurstTime
			}
			assert.InDelta(t, stat.Mean(turnarounds, nil)-stat.Mean(bursts, nil), m.AsMap()[MetricAvgWait], 1e-9)
			assert.InDelta(t, m.AvgWait*s.Config().ArrivalRate, m.AvgQueueLen, 1e-9)
			assert.InDelta(t, float64(s.ProcessesCompleted)/s.Clock, m.Throughput, 1e-12)
		})
	}
}

func TestCollectMetrics_PercentilesOrdered(t *testing.T) {
	s, err := NewScheduler(smallConfig(PolicyRR))
	require.NoError(t, err)
	require.NoError(t, s.Run())

	m := s.CollectMetrics()

	assert.LessOrEqual(t, m.P90Turnaround, m.P99Turnaround)
	assert.Greater(t, m.StdTurnaround, 0.0)
	assert.Greater(t, m.CPUUtilization, 0.0)
	assert.LessOrEqual(t, m.CPUUtilization, 1.0)
}

func TestCollectMetrics_NothingCompleted(t *testing.T) {
	s, err := NewScheduler(DefaultConfig(PolicySTRF, 5, 0.1, 0))
	require.NoError(t, err)

	m := s.CollectMetrics()

	assert.Equal(t, 0, m.Completed)
	assert.Equal(t, 0.0, m.AvgTurnaround)
	assert.Equal(t, 0.0, m.Throughput)
	assert.Equal(t, PolicySTRF, m.Policy)
}

func TestMetrics_AsMapKeys(t *testing.T) {
	m := Metrics{AvgTurnaround: 1, Throughput: 2, AvgWait: 3, AvgQueueLen: 4}

	assert.Equal(t, map[string]float64{
		"average turnaround time":      1,
		"throughput":                   2,
		"average wait time":            3,
		"average time events in queue": 4,
	}, m.AsMap())
}

func TestMetrics_Print(t *testing.T) {
	var buf bytes.Buffer
	Metrics{Policy: PolicyRR, Completed: 3, AvgTurnaround: 1.5}.Print(&buf)

	assert.Contains(t, buf.String(), "Policy               : rr")
	assert.Contains(t, buf.String(), "Average Turnaround   : 1.500000")
}
