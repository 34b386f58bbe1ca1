package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

// newReplayList builds an event list holding arrivals at the given absolute
// times. Replenishment appends far-future filler arrivals.
func newReplayList(t *testing.T, times, bursts []float64) *EventList {
	t.Helper()
	src, err := workload.NewReplayAt(times, bursts)
	require.NoError(t, err)
	l := NewEventList(src, 4)
	l.Extend(len(times))
	return l
}

// newReplayScheduler builds a scheduler over hand-built arrivals that stops
// once every one of them has completed. Tracing and per-step invariant
// checks are on.
func newReplayScheduler(t *testing.T, policy Policy, quantum float64, times, bursts []float64) *Scheduler {
	t.Helper()
	src, err := workload.NewReplayAt(times, bursts)
	require.NoError(t, err)
	cfg := DefaultConfig(policy, 1, 1, quantum)
	cfg.InitialArrivals = len(times)
	cfg.ReplenishBatch = 4
	cfg.TargetCompletions = len(times)
	cfg.CheckInvariants = true
	cfg.Trace = trace.TraceConfig{Level: trace.TraceLevelDecisions}
	s, err := NewSchedulerWithSource(cfg, src)
	require.NoError(t, err)
	return s
}

// smallConfig is a seeded stochastic run short enough for per-step checks.
func smallConfig(policy Policy) Config {
	cfg := DefaultConfig(policy, 10, 0.06, 0.04)
	cfg.TargetCompletions = 1500
	cfg.InitialArrivals = 2000
	cfg.ReplenishBatch = 200
	return cfg
}

// requireInvariant runs fn and requires it to panic with an *InvariantError
// wrapping want.
func requireInvariant(t *testing.T, want error, fn func()) *InvariantError {
	t.Helper()
	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()
	require.NotNil(t, got, "expected an invariant panic")
	ie, ok := got.(*InvariantError)
	require.Truef(t, ok, "panic value %T is not *InvariantError", got)
	require.ErrorIs(t, ie, want)
	return ie
}

// eventTypes returns the type of every linked event, head first.
func eventTypes(l *EventList) []EventType {
	var out []EventType
	l.Each(func(_ EventID, ev Event) bool {
		out = append(out, ev.Type)
		return true
	})
	return out
}
