package sim

// insertDispatchSTRF places p's dispatch event in the queued run ordered by
// burst time, after any queued process with an equal burst. Only queue order
// differs from FCFS; once dispatched a process runs to completion.
func (s *Scheduler) insertDispatchSTRF(p *Process) {
	burst := p.BurstTime
	stop := func(next *Event) bool {
		return next.Type != EventDispatch || next.Proc.BurstTime > burst
	}

	start := s.termEvent
	anchor := s.Events.FindInsertionPoint(start, stop)

	t := s.Clock
	if anchor != NoEvent {
		t = s.Events.At(anchor).Time
	}
	id := s.Events.InsertAfter(anchor, Event{Type: EventDispatch, Time: t, Proc: p})

	if next := s.Events.Next(id); next == NoEvent || s.Events.At(next).Type != EventDispatch {
		s.lastDispatch = id
	}
}
