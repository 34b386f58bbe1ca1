package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every dispatch and termination.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelDecisions
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a simulation run.
type SimulationTrace struct {
	Config       TraceConfig
	Dispatches   []DispatchRecord
	Terminations []TerminationRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:       config,
		Dispatches:   make([]DispatchRecord, 0),
		Terminations: make([]TerminationRecord, 0),
	}
}

// RecordDispatch appends a dispatch record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	st.Dispatches = append(st.Dispatches, record)
}

// RecordTermination appends a termination record.
func (st *SimulationTrace) RecordTermination(record TerminationRecord) {
	st.Terminations = append(st.Terminations, record)
}

// DispatchOrder returns the PIDs of the first dispatch of each process, in the
// order the CPU was first granted to them.
func (st *SimulationTrace) DispatchOrder() []int {
	seen := make(map[int]bool)
	order := make([]int, 0)
	for _, d := range st.Dispatches {
		if seen[d.PID] {
			continue
		}
		seen[d.PID] = true
		order = append(order, d.PID)
	}
	return order
}

// DispatchesFor returns every dispatch record of one process, in order.
func (st *SimulationTrace) DispatchesFor(pid int) []DispatchRecord {
	var out []DispatchRecord
	for _, d := range st.Dispatches {
		if d.PID == pid {
			out = append(out, d)
		}
	}
	return out
}
