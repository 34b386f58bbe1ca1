package sim

import (
	"fmt"

	"github.com/emirpasic/gods/queues/circularbuffer"
	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

// recentCompletions is how many completed PIDs Stats reports.
const recentCompletions = 20

// Scheduler owns one simulation run: the event list, the clock and every
// counter. The policy tag decides how dispatch events are placed and handled;
// everything else is shared.
//
// Two anchors into the event list speed up insertion:
//   - termEvent is the single outstanding termination event, if any.
//   - lastDispatch is the most recently queued dispatch event, if any.
//
// Both are cleared before their event is popped, so they never point at a
// recycled slot.
type Scheduler struct {
	cfg    Config
	policy Policy

	Clock  float64
	Events *EventList
	Done   []*Process // completed processes, in completion order

	termEvent        EventID
	lastDispatch     EventID
	queuedDispatches int

	CPUTime             float64
	EventsHandled       int
	ArrivalsHandled     int
	DispatchesHandled   int
	TerminationsHandled int
	ProcessesCompleted  int

	recent *circularbuffer.Queue
	Trace  *trace.SimulationTrace // nil unless tracing is enabled
}

// NewScheduler validates cfg and builds a scheduler fed by the stochastic
// workload generator seeded from cfg.Seed.
func NewScheduler(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(cfg.Seed)
	gen, err := workload.NewGenerator(workload.GeneratorConfig{
		ArrivalRate:    cfg.ArrivalRate,
		AvgServiceTime: cfg.AvgServiceTime,
		ArrivalProcess: cfg.ArrivalProcess,
	}, rng.ForSubsystem(SubsystemArrivals), rng.ForSubsystem(SubsystemBursts))
	if err != nil {
		return nil, fmt.Errorf("workload: %w", err)
	}
	return NewSchedulerWithSource(cfg, gen)
}

// NewSchedulerWithSource builds a scheduler whose arrivals come from src and
// seeds the event list with cfg.InitialArrivals of them.
func NewSchedulerWithSource(cfg Config, src workload.Source) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("workload source must not be nil")
	}
	cfg = cfg.withDefaults()

	s := &Scheduler{
		cfg:          cfg,
		policy:       cfg.Policy,
		Events:       NewEventList(src, cfg.ReplenishBatch),
		Done:         make([]*Process, 0, cfg.TargetCompletions),
		termEvent:    NoEvent,
		lastDispatch: NoEvent,
		recent:       circularbuffer.New(recentCompletions),
	}
	if cfg.Trace.Level.Enabled() {
		s.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	s.Events.Extend(cfg.InitialArrivals)
	return s, nil
}

// Config returns the configuration the scheduler was built with, defaults filled in.
func (s *Scheduler) Config() Config { return s.cfg }

// Policy returns the scheduling discipline.
func (s *Scheduler) Policy() Policy { return s.policy }

// Run handles events until the target number of processes has completed.
// An engine invariant violation stops the run and is returned as an
// *InvariantError carrying a Stats snapshot; any other panic propagates.
func (s *Scheduler) Run() (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ie, ok := r.(*InvariantError)
		if !ok {
			panic(r)
		}
		if ie.Stats == nil {
			st := s.Stats()
			ie.Stats = &st
		}
		err = ie
	}()

	logrus.Infof("starting %s simulation: rate=%v burst=%v quantum=%v target=%d",
		s.policy, s.cfg.ArrivalRate, s.cfg.AvgServiceTime, s.cfg.Quantum, s.cfg.TargetCompletions)
	for s.ProcessesCompleted < s.cfg.TargetCompletions {
		s.step()
	}
	logrus.Infof("%s simulation finished: clock=%.6f events=%d completed=%d",
		s.policy, s.Clock, s.EventsHandled, s.ProcessesCompleted)
	return nil
}

// step pops and handles exactly one event.
func (s *Scheduler) step() {
	id, ev := s.Events.PopFront()
	s.Clock = ev.Time
	logrus.Tracef("[%.6f] handling %s", s.Clock, ev)

	switch ev.Type {
	case EventArrival:
		s.handleArrival(ev.Proc)
	case EventDispatch:
		s.handleDispatch(id, ev.Proc)
	case EventTermination:
		s.handleTermination(id, ev.Proc)
	default:
		s.fail(ErrUnknownEvent, "event %s", ev)
	}
	s.EventsHandled++

	if s.cfg.CheckInvariants {
		if err := s.Events.Check(); err != nil {
			ie := err.(*InvariantError)
			st := s.Stats()
			ie.Stats = &st
			panic(ie)
		}
	}
}

// fail aborts the run with an *InvariantError carrying the current stats.
func (s *Scheduler) fail(err error, format string, args ...any) {
	st := s.Stats()
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...), Err: err, Stats: &st})
}

func (s *Scheduler) handleArrival(p *Process) {
	s.ArrivalsHandled++
	s.insertDispatch(p)
}

// insertDispatch queues a dispatch event for p according to the policy.
func (s *Scheduler) insertDispatch(p *Process) {
	s.queuedDispatches++
	switch s.policy {
	case PolicyFCFS:
		s.insertDispatchFCFS(p)
	case PolicySTRF:
		s.insertDispatchSTRF(p)
	case PolicyRR:
		s.insertDispatchRR(p)
	default:
		s.fail(ErrUnknownPolicy, "policy %s", s.policy)
	}
}

// handleDispatch grants the CPU to p. id is the popped event's slot.
func (s *Scheduler) handleDispatch(id EventID, p *Process) {
	s.DispatchesHandled++
	s.queuedDispatches--
	if id == s.lastDispatch {
		s.lastDispatch = NoEvent
	}
	p.Dispatches++

	var slice float64
	switch s.policy {
	case PolicyFCFS, PolicySTRF:
		slice = s.runToCompletion(p)
	case PolicyRR:
		slice = s.runQuantum(p)
	default:
		s.fail(ErrUnknownPolicy, "policy %s", s.policy)
	}

	if s.Trace != nil {
		s.Trace.RecordDispatch(trace.DispatchRecord{
			PID:       p.ID,
			Clock:     s.Clock,
			Slice:     slice,
			Remaining: p.TimeRemaining,
			Final:     p.TimeRemaining == 0,
		})
	}
}

// grant moves t units of service to p and returns t.
func (s *Scheduler) grant(p *Process, t float64) float64 {
	s.CPUTime += t
	p.ServiceTime += t
	p.TimeRemaining -= t
	return t
}

// insertTermination schedules p's termination at t.
func (s *Scheduler) insertTermination(t float64, p *Process) {
	if s.termEvent != NoEvent {
		s.fail(ErrMultipleTerminations, "termination for pid %d at %.6f while %s is outstanding",
			p.ID, t, s.Events.At(s.termEvent))
	}
	if t < s.Clock {
		s.fail(ErrTerminationBeforeClock, "termination for pid %d at %.6f, clock is %.6f", p.ID, t, s.Clock)
	}
	if t < p.ArrivalTime {
		s.fail(ErrTerminationBeforeArrival, "termination at %.6f for %s", t, p)
	}

	ev := Event{Type: EventTermination, Time: t, Proc: p}
	switch s.policy {
	case PolicyRR:
		s.termEvent = s.insertTerminationRR(ev)
	default:
		s.termEvent = s.insertTerminationQueued(ev)
	}
	logrus.Tracef("[%.6f] termination for pid %d scheduled at %.6f", s.Clock, p.ID, t)
}

// insertTerminationQueued places a termination ahead of the queued dispatch
// run. Queued dispatch events only mark queue position, so they are retimed
// to t and travel with the termination.
func (s *Scheduler) insertTerminationQueued(ev Event) EventID {
	if s.lastDispatch == NoEvent {
		return s.Events.InsertOrdered(NoEvent, ev)
	}

	run, end := 0, NoEvent
	for id := s.Events.Head(); id != NoEvent; id = s.Events.Next(id) {
		if s.Events.At(id).Type != EventDispatch {
			break
		}
		s.Events.SetTime(id, ev.Time)
		run++
		end = id
	}
	if end != s.lastDispatch || run != s.queuedDispatches {
		s.fail(ErrAnchorMismatch, "dispatch run at head has %d events ending at %d, want %d ending at %d",
			run, end, s.queuedDispatches, s.lastDispatch)
	}
	return s.Events.PrependToFrontRun(ev, end)
}

func (s *Scheduler) handleTermination(id EventID, p *Process) {
	if id != s.termEvent {
		s.fail(ErrAnchorMismatch, "handled termination %d for pid %d, outstanding termination is %d", id, p.ID, s.termEvent)
	}
	s.termEvent = NoEvent
	s.TerminationsHandled++
	p.TerminationTime = s.Clock
	p.Completed = true
	s.Done = append(s.Done, p)
	s.ProcessesCompleted++
	s.recent.Enqueue(p.ID)

	if s.Trace != nil {
		s.Trace.RecordTermination(trace.TerminationRecord{
			PID:        p.ID,
			Clock:      s.Clock,
			Turnaround: p.Turnaround(),
			Wait:       p.Wait(),
		})
	}
	logrus.Debugf("[%.6f] pid %d completed (turnaround %.6f)", s.Clock, p.ID, p.Turnaround())
}
