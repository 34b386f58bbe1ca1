// Package trace provides decision-trace recording for scheduler analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DispatchRecord captures one grant of the CPU to a process.
type DispatchRecord struct {
	PID       int
	Clock     float64 // simulation time the dispatch event was handled
	Slice     float64 // CPU time granted by this dispatch
	Remaining float64 // service still owed after this slice
	Final     bool    // true when this slice completes the process
}

// TerminationRecord captures a process leaving the system.
type TerminationRecord struct {
	PID        int
	Clock      float64
	Turnaround float64
	Wait       float64
}
