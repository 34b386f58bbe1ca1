package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{PID: 3, Clock: 1.5, Slice: 0.04, Remaining: 0.02})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].PID != 3 {
		t.Errorf("expected PID 3, got %d", st.Dispatches[0].PID)
	}
	if st.Dispatches[0].Final {
		t.Error("expected final=false")
	}
}

func TestSimulationTrace_RecordTermination_AppendsRecord(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	st.RecordTermination(TerminationRecord{PID: 7, Clock: 2, Turnaround: 0.5, Wait: 0.1})

	if len(st.Terminations) != 1 {
		t.Fatalf("expected 1 termination, got %d", len(st.Terminations))
	}
	if st.Terminations[0].PID != 7 {
		t.Errorf("expected PID 7, got %d", st.Terminations[0].PID)
	}
}

func TestSimulationTrace_DispatchOrder_FirstGrantOnly(t *testing.T) {
	// GIVEN interleaved round-robin style dispatches
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	for _, pid := range []int{2, 0, 2, 1, 0, 2} {
		st.RecordDispatch(DispatchRecord{PID: pid})
	}

	// WHEN the dispatch order is computed
	order := st.DispatchOrder()

	// THEN each PID appears once, at its first grant
	want := []int{2, 0, 1}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestSimulationTrace_DispatchesFor_FiltersByPID(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	st.RecordDispatch(DispatchRecord{PID: 1, Slice: 0.04})
	st.RecordDispatch(DispatchRecord{PID: 2, Slice: 0.01, Final: true})
	st.RecordDispatch(DispatchRecord{PID: 1, Slice: 0.02, Final: true})

	got := st.DispatchesFor(1)
	if len(got) != 2 {
		t.Fatalf("expected 2 dispatches for PID 1, got %d", len(got))
	}
	if !got[1].Final {
		t.Error("expected last dispatch of PID 1 to be final")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}

func TestTraceLevel_Enabled(t *testing.T) {
	if TraceLevelNone.Enabled() {
		t.Error("none must not be enabled")
	}
	if TraceLevel("").Enabled() {
		t.Error("empty level must not be enabled")
	}
	if !TraceLevelDecisions.Enabled() {
		t.Error("decisions must be enabled")
	}
}
