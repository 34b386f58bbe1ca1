package sim

import "fmt"

// EventType tags the three kinds of simulation events.
type EventType int

const (
	// EventArrival marks a new process entering the system.
	EventArrival EventType = iota + 1
	// EventDispatch marks a process being granted the CPU.
	EventDispatch
	// EventTermination marks a process's service completing.
	EventTermination
)

func (t EventType) String() string {
	switch t {
	case EventArrival:
		return "arrival"
	case EventDispatch:
		return "dispatch"
	case EventTermination:
		return "termination"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// EventID addresses an event slot in an EventList arena.
type EventID int32

// NoEvent is the nil EventID: end of chain, absent anchor, or "insert as head".
const NoEvent EventID = -1

// Event is one node of the event list. Events form a singly-linked chain
// ordered by Time; ties are broken by position in the chain.
//
// For FCFS and STRF, the Time of a queued dispatch event is a queue-position
// marker copied from its neighbour, not a wall-clock prediction. Real service
// time is computed from the clock when the event is handled.
type Event struct {
	Type EventType
	Time float64
	Proc *Process

	next EventID
}

func (e Event) String() string {
	pid := -1
	if e.Proc != nil {
		pid = e.Proc.ID
	}
	return fmt.Sprintf("type=%s, time=%.6f, pid=%d", e.Type, e.Time, pid)
}
