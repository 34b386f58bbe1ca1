package sim

import (
	"fmt"
	"strings"
)

// Stats is a diagnostic snapshot of a scheduler. It has no stable format and
// is meant for humans reading a failure report.
type Stats struct {
	Policy              Policy
	Clock               float64
	CPUTime             float64
	QueuedDispatches    int
	TerminationPending  bool
	TermEvent           string // outstanding termination event, empty if none
	LastDispatch        string // most recently queued dispatch event, empty if none
	EventsHandled       int
	ArrivalsHandled     int
	DispatchesHandled   int
	TerminationsHandled int
	ProcessesCompleted  int
	ProcessesCreated    int
	EventsLinked        int
	Extensions          int
	RecentCompletions   []int // last completed PIDs, oldest first
}

// Stats captures the current scheduler state.
func (s *Scheduler) Stats() Stats {
	st := Stats{
		Policy:              s.policy,
		Clock:               s.Clock,
		CPUTime:             s.CPUTime,
		QueuedDispatches:    s.queuedDispatches,
		TerminationPending:  s.termEvent != NoEvent,
		EventsHandled:       s.EventsHandled,
		ArrivalsHandled:     s.ArrivalsHandled,
		DispatchesHandled:   s.DispatchesHandled,
		TerminationsHandled: s.TerminationsHandled,
		ProcessesCompleted:  s.ProcessesCompleted,
		ProcessesCreated:    s.Events.ProcessesCreated(),
		EventsLinked:        s.Events.Len(),
		Extensions:          s.Events.Extensions(),
	}
	if s.termEvent != NoEvent {
		st.TermEvent = s.Events.At(s.termEvent).String()
	}
	if s.lastDispatch != NoEvent {
		st.LastDispatch = s.Events.At(s.lastDispatch).String()
	}
	for _, v := range s.recent.Values() {
		st.RecentCompletions = append(st.RecentCompletions, v.(int))
	}
	return st
}

func (st Stats) String() string {
	var b strings.Builder
	b.WriteString("------------------------------------\n")
	fmt.Fprintf(&b, "policy=%s\n", st.Policy)
	fmt.Fprintf(&b, "clock=%v\n", st.Clock)
	fmt.Fprintf(&b, "cpu_time=%v\n", st.CPUTime)
	fmt.Fprintf(&b, "time_events_ready=%d\n", st.QueuedDispatches)
	fmt.Fprintf(&b, "termination_event_ready=%t\n", st.TerminationPending)
	fmt.Fprintf(&b, "term_event=%s\n", orNone(st.TermEvent))
	fmt.Fprintf(&b, "last_time_event=%s\n", orNone(st.LastDispatch))
	fmt.Fprintf(&b, "events_completed=%d\n", st.EventsHandled)
	fmt.Fprintf(&b, "arrival_events_called=%d\n", st.ArrivalsHandled)
	fmt.Fprintf(&b, "time_slice_events=%d\n", st.DispatchesHandled)
	fmt.Fprintf(&b, "termination_events_called=%d\n", st.TerminationsHandled)
	fmt.Fprintf(&b, "processes_completed=%d\n", st.ProcessesCompleted)
	fmt.Fprintf(&b, "processes_created=%d events_linked=%d extensions=%d\n",
		st.ProcessesCreated, st.EventsLinked, st.Extensions)
	fmt.Fprintf(&b, "done_recent: %v\n", st.RecentCompletions)
	b.WriteString("------------------------------------\n")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
