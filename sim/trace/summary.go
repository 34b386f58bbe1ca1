package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches         int
	Preemptions             int // dispatches that did not finish their process
	Completions             int
	UniqueProcesses         int
	MeanSlice               float64
	MaxSlice                float64
	TotalService            float64
	MaxDispatchesPerProcess int
	DispatchDistribution    map[int]int // PID → number of dispatches
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	summary.Completions = len(st.Terminations)
	for _, d := range st.Dispatches {
		summary.DispatchDistribution[d.PID]++
		summary.TotalService += d.Slice
		if !d.Final {
			summary.Preemptions++
		}
		if d.Slice > summary.MaxSlice {
			summary.MaxSlice = d.Slice
		}
	}
	if summary.TotalDispatches > 0 {
		summary.MeanSlice = summary.TotalService / float64(summary.TotalDispatches)
	}
	for _, n := range summary.DispatchDistribution {
		if n > summary.MaxDispatchesPerProcess {
			summary.MaxDispatchesPerProcess = n
		}
	}
	summary.UniqueProcesses = len(summary.DispatchDistribution)

	return summary
}
