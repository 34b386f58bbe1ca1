package sim

// insertDispatchFCFS appends p's dispatch event to the back of the queue.
// The queue lives right behind the outstanding termination (or at the head
// when the CPU is idle) and every queued event carries the same time marker.
func (s *Scheduler) insertDispatchFCFS(p *Process) {
	switch {
	case s.lastDispatch != NoEvent:
		anchor := s.Events.At(s.lastDispatch)
		s.lastDispatch = s.Events.InsertAfter(s.lastDispatch, Event{Type: EventDispatch, Time: anchor.Time, Proc: p})
	case s.termEvent != NoEvent:
		anchor := s.Events.At(s.termEvent)
		s.lastDispatch = s.Events.InsertAfter(s.termEvent, Event{Type: EventDispatch, Time: anchor.Time, Proc: p})
	default:
		s.lastDispatch = s.Events.InsertHead(Event{Type: EventDispatch, Time: s.Clock, Proc: p})
	}

	if s.termEvent != NoEvent {
		if head := s.Events.At(s.Events.Head()); s.Events.At(s.termEvent).Time < head.Time {
			s.fail(ErrUnorderedEvents, "outstanding termination at %.6f precedes head %s",
				s.Events.At(s.termEvent).Time, head)
		}
	}
}

// runToCompletion serves p's whole remaining burst and schedules its
// termination. Used by both non-preemptive policies.
func (s *Scheduler) runToCompletion(p *Process) float64 {
	t := s.grant(p, p.TimeRemaining)
	p.TimeRemaining = 0
	s.insertTermination(s.Clock+t, p)
	return t
}
