package sim

import "fmt"

// Process models a single job's lifecycle in the simulation: it arrives,
// waits for the CPU, receives one or more slices of service and terminates.
type Process struct {
	ID              int     // unique, assigned in arrival order
	ArrivalTime     float64 // simulation time the process entered the system
	BurstTime       float64 // total CPU time required; fixed at creation
	TimeRemaining   float64 // service still owed; reaches 0 exactly once
	TerminationTime float64 // set once, when the termination event is handled

	Dispatches  int     // number of times the CPU was granted
	ServiceTime float64 // CPU time granted so far
	Completed   bool
}

// NewProcess creates a process that still owes its whole burst.
func NewProcess(id int, arrival, burst float64) *Process {
	return &Process{
		ID:            id,
		ArrivalTime:   arrival,
		BurstTime:     burst,
		TimeRemaining: burst,
	}
}

// Turnaround returns termination time minus arrival time.
func (p *Process) Turnaround() float64 {
	return p.TerminationTime - p.ArrivalTime
}

// Wait returns turnaround minus burst, i.e. time spent not being served.
func (p *Process) Wait() float64 {
	return p.Turnaround() - p.BurstTime
}

func (p *Process) String() string {
	return fmt.Sprintf("<Process: pid=%d, arrival_time=%.6f, burst_time=%.6f, remaining=%.6f, termination_time=%.6f>",
		p.ID, p.ArrivalTime, p.BurstTime, p.TimeRemaining, p.TerminationTime)
}
