package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
)

func TestParseRunArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    sim.Policy
		quantum float64
		wantErr bool
	}{
		{"fcfs without quantum", []string{"1", "10", "0.06"}, sim.PolicyFCFS, 0, false},
		{"fcfs ignores quantum", []string{"1", "10", "0.06", "0.04"}, sim.PolicyFCFS, 0, false},
		{"strf by name", []string{"strf", "5", "0.06"}, sim.PolicySTRF, 0, false},
		{"rr with quantum", []string{"3", "10", "0.06", "0.04"}, sim.PolicyRR, 0.04, false},
		{"rr without quantum", []string{"3", "10", "0.06"}, 0, 0, true},
		{"too few", []string{"1", "10"}, 0, 0, true},
		{"unknown policy", []string{"4", "10", "0.06"}, 0, 0, true},
		{"bad rate", []string{"1", "fast", "0.06"}, 0, 0, true},
		{"zero rate", []string{"1", "0", "0.06"}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseRunArgs(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Policy)
			assert.Equal(t, tt.quantum, cfg.Quantum)
			assert.Equal(t, sim.DefaultTargetCompletions, cfg.TargetCompletions)
		})
	}
}

func TestRunCmd_InvalidArgsPrintUsage(t *testing.T) {
	// GIVEN the run command with a missing argument
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"run", "3", "10"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// WHEN it executes
	err := rootCmd.Execute()

	// THEN it prints usage and succeeds
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "this program takes 4 arguments")
}

func TestRunSimulation_PrintsMetricsAndAppendsRow(t *testing.T) {
	// GIVEN a short RR run writing to a results file
	cfg := sim.DefaultConfig(sim.PolicyRR, 10, 0.06, 0.04)
	cfg.TargetCompletions = 300
	dir := t.TempDir()
	results := filepath.Join(dir, "data.csv")
	samples := filepath.Join(dir, "samples.csv")
	var out bytes.Buffer

	// WHEN it runs
	err := runSimulation(cfg, &out, runOutputs{ResultsPath: results, SamplesPath: samples})

	// THEN stats and metrics are printed and one row is appended
	require.NoError(t, err)
	assert.Contains(t, out.String(), "processes_completed=300")
	assert.Contains(t, out.String(), sim.MetricAvgTurnaround)
	rows, err := sim.ReadResults(results)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, sim.PolicyRR, rows[0].Policy)
	assert.Equal(t, 0.04, rows[0].Quantum)
	assert.FileExists(t, samples)
}

func TestRunSimulation_TraceSummary(t *testing.T) {
	cfg := sim.DefaultConfig(sim.PolicyFCFS, 5, 0.06, 0)
	cfg.TargetCompletions = 50
	cfg.Trace.Level = "decisions"
	var out bytes.Buffer

	require.NoError(t, runSimulation(cfg, &out, runOutputs{}))

	assert.Contains(t, out.String(), "=== Decision Trace ===")
}

func TestRunSimulation_PlainMetrics(t *testing.T) {
	// GIVEN a short STRF run asking for plain output
	cfg := sim.DefaultConfig(sim.PolicySTRF, 8, 0.06, 0)
	cfg.TargetCompletions = 100
	var out bytes.Buffer

	// WHEN it runs
	require.NoError(t, runSimulation(cfg, &out, runOutputs{Plain: true}))

	// THEN metrics are printed as text lines, not a table
	assert.Contains(t, out.String(), "=== Simulation Metrics ===")
	assert.Contains(t, out.String(), "Policy               : strf")
	assert.Contains(t, out.String(), "Completed Processes  : 100")
	assert.NotContains(t, out.String(), "+--")
}
