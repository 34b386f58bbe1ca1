package sim

// insertDispatchRR schedules p's next slice one quantum after the most
// recently queued slice of another process, or one quantum from now.
func (s *Scheduler) insertDispatchRR(p *Process) {
	q := s.cfg.Quantum
	start, t := NoEvent, s.Clock+q
	if s.lastDispatch != NoEvent {
		if anchor := s.Events.At(s.lastDispatch); anchor.Proc != p {
			start, t = s.lastDispatch, anchor.Time+q
		}
	}
	s.lastDispatch = s.Events.InsertOrdered(start, Event{Type: EventDispatch, Time: t, Proc: p})
}

// runQuantum serves at most one quantum of p. A process with more than a
// quantum left is queued again; otherwise its termination is scheduled.
func (s *Scheduler) runQuantum(p *Process) float64 {
	q := s.cfg.Quantum
	if p.TimeRemaining > q {
		s.grant(p, q)
		s.insertDispatch(p)
		return q
	}
	t := s.grant(p, p.TimeRemaining)
	p.TimeRemaining = 0
	s.insertTermination(s.Clock+t, p)
	return t
}

// insertTerminationRR links a termination by plain time order. RR events are
// real timestamps, so nothing needs retiming. A termination lands ahead of a
// dispatch with the same time so the CPU is released first.
func (s *Scheduler) insertTerminationRR(ev Event) EventID {
	anchor := s.Events.FindInsertionPoint(NoEvent, func(next *Event) bool {
		return next.Time > ev.Time || (next.Time == ev.Time && next.Type == EventDispatch)
	})
	return s.Events.InsertAfter(anchor, ev)
}
