package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/workload"
)

// EventList is the single ordered event structure shared by every policy.
//
// Events live in an arena and link to each other by EventID, so anchors held
// by the scheduler are plain indices. Popped slots are recycled through a free
// list; a holder of an anchor must drop it when its event is popped.
//
// The list replenishes itself: whenever an insertion walk reaches the tail it
// appends ReplenishBatch fresh arrivals from its workload source and keeps
// walking, so an insertion can always find a later event to stop at.
//
// Not thread-safe. An EventList belongs to exactly one Scheduler.
type EventList struct {
	nodes []Event
	free  []EventID
	head  EventID
	tail  EventID
	size  int

	source    workload.Source
	replenish int
	nextPID   int

	// lastPopped is the time of the most recently popped event, i.e. the
	// simulation clock. Arrivals appended to an empty list start from here.
	lastPopped float64

	extensions int // number of Extend calls, for diagnostics
}

// NewEventList creates an empty list that draws arrivals from source and
// appends replenish arrivals whenever a walk runs off the tail.
func NewEventList(source workload.Source, replenish int) *EventList {
	if replenish < 1 {
		replenish = 1
	}
	return &EventList{
		head:      NoEvent,
		tail:      NoEvent,
		source:    source,
		replenish: replenish,
	}
}

// Len returns the number of linked events.
func (l *EventList) Len() int { return l.size }

// Head returns the earliest event's ID, or NoEvent when empty.
func (l *EventList) Head() EventID { return l.head }

// Tail returns the latest event's ID, or NoEvent when empty.
func (l *EventList) Tail() EventID { return l.tail }

// Next returns the ID following id.
func (l *EventList) Next(id EventID) EventID { return l.nodes[id].next }

// At returns a copy of the event stored at id.
func (l *EventList) At(id EventID) Event { return l.nodes[id] }

// SetTime overwrites the timestamp of a linked event. The caller is
// responsible for keeping the list ordered.
func (l *EventList) SetTime(id EventID, t float64) { l.nodes[id].Time = t }

// Extensions returns how many times the list has been extended with arrivals.
func (l *EventList) Extensions() int { return l.extensions }

// ProcessesCreated returns how many processes the list has created so far.
func (l *EventList) ProcessesCreated() int { return l.nextPID }

// Each calls fn for every event from head to tail until fn returns false.
func (l *EventList) Each(fn func(id EventID, ev Event) bool) {
	for id := l.head; id != NoEvent; id = l.nodes[id].next {
		if !fn(id, l.nodes[id]) {
			return
		}
	}
}

func (l *EventList) alloc(ev Event) EventID {
	ev.next = NoEvent
	l.size++
	if n := len(l.free); n > 0 {
		id := l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[id] = ev
		return id
	}
	if len(l.nodes) >= math.MaxInt32 {
		invariantPanic(ErrCorruptEventList, "event arena exhausted at %d slots", len(l.nodes))
	}
	l.nodes = append(l.nodes, ev)
	return EventID(len(l.nodes) - 1)
}

func (l *EventList) linkTail(id EventID) {
	if l.tail == NoEvent {
		l.head = id
	} else {
		l.nodes[l.tail].next = id
	}
	l.tail = id
}

// Extend appends n arrivals to the tail. Gaps from the source accumulate from
// the tail's time, or from the clock when the list is empty.
func (l *EventList) Extend(n int) {
	if n <= 0 {
		return
	}
	gaps, bursts := l.source.Next(n)
	if len(gaps) != n || len(bursts) != n {
		invariantPanic(ErrCorruptEventList, "workload source returned %d gaps and %d bursts for a batch of %d",
			len(gaps), len(bursts), n)
	}

	t := l.lastPopped
	if l.tail != NoEvent {
		t = l.nodes[l.tail].Time
	}
	for i := 0; i < n; i++ {
		t += gaps[i]
		p := NewProcess(l.nextPID, t, bursts[i])
		l.nextPID++
		l.linkTail(l.alloc(Event{Type: EventArrival, Time: t, Proc: p}))
	}
	l.extensions++
	logrus.Debugf("event list extended with %d arrivals (pids up to %d, tail at %.6f)", n, l.nextPID-1, t)
}

// PopFront unlinks and returns the earliest event. Its slot is recycled, so
// the returned ID is only good for comparing against anchors.
func (l *EventList) PopFront() (EventID, Event) {
	if l.head == NoEvent {
		invariantPanic(ErrEmptyEventList, "pop with clock at %.6f", l.lastPopped)
	}
	id := l.head
	ev := l.nodes[id]
	l.head = ev.next
	if l.head == NoEvent {
		l.tail = NoEvent
	}
	l.nodes[id] = Event{next: NoEvent}
	l.free = append(l.free, id)
	l.size--
	l.lastPopped = ev.Time
	ev.next = NoEvent
	return id, ev
}

// InsertHead links ev in front of the current head.
func (l *EventList) InsertHead(ev Event) EventID {
	id := l.alloc(ev)
	l.nodes[id].next = l.head
	l.head = id
	if l.tail == NoEvent {
		l.tail = id
	}
	return id
}

// InsertAfter links ev right after anchor. NoEvent as anchor inserts at the head.
func (l *EventList) InsertAfter(anchor EventID, ev Event) EventID {
	if anchor == NoEvent {
		return l.InsertHead(ev)
	}
	id := l.alloc(ev)
	l.nodes[id].next = l.nodes[anchor].next
	l.nodes[anchor].next = id
	if anchor == l.tail {
		l.tail = id
	}
	return id
}

// FindInsertionPoint walks from start (NoEvent = from the head) and returns the
// anchor after which a new event belongs: the first event whose successor
// satisfies stop. NoEvent means the new event belongs at the head. A walk that
// reaches the tail extends the list and continues, so it always terminates as
// long as stop eventually accepts a freshly generated arrival.
func (l *EventList) FindInsertionPoint(start EventID, stop func(next *Event) bool) EventID {
	if l.head == NoEvent {
		l.Extend(l.replenish)
	}
	cur := start
	if cur == NoEvent {
		if stop(&l.nodes[l.head]) {
			return NoEvent
		}
		cur = l.head
	}
	for {
		if cur == l.tail {
			l.Extend(l.replenish)
		}
		next := l.nodes[cur].next
		if stop(&l.nodes[next]) {
			return cur
		}
		cur = next
	}
}

// InsertOrdered links ev after every event with Time <= ev.Time, walking from
// start (NoEvent = from the head). start must not be later than ev.
func (l *EventList) InsertOrdered(start EventID, ev Event) EventID {
	if start != NoEvent && l.nodes[start].Time > ev.Time {
		invariantPanic(ErrUnorderedEvents, "ordered insert of %s behind anchor at %.6f", ev, l.nodes[start].Time)
	}
	anchor := l.FindInsertionPoint(start, func(next *Event) bool { return next.Time > ev.Time })
	return l.InsertAfter(anchor, ev)
}

// DetachFront unlinks the run from the head through last (inclusive) and
// returns the run's first ID. The run stays internally linked; it must be put
// back with InsertBlockOrdered before the list is used again.
func (l *EventList) DetachFront(last EventID) EventID {
	first := l.head
	if first == NoEvent {
		invariantPanic(ErrEmptyEventList, "detach from empty event list")
	}
	l.head = l.nodes[last].next
	l.nodes[last].next = NoEvent
	if l.tail == last {
		l.tail = NoEvent
		if l.head != NoEvent {
			invariantPanic(ErrCorruptEventList, "tail detached but head %d still linked", l.head)
		}
	}
	return first
}

// InsertBlockOrdered links an already-chained block first..last at the
// position given by first's time, after all events of equal time. Into an
// empty list the block becomes the whole list, so later arrivals are
// generated from its last event's time.
func (l *EventList) InsertBlockOrdered(first, last EventID) {
	if l.head == NoEvent {
		l.head, l.tail = first, last
		return
	}
	t := l.nodes[first].Time
	anchor := l.FindInsertionPoint(NoEvent, func(next *Event) bool { return next.Time > t })
	if anchor == NoEvent {
		l.nodes[last].next = l.head
		l.head = first
		if l.tail == NoEvent {
			l.tail = last
		}
		return
	}
	l.nodes[last].next = l.nodes[anchor].next
	l.nodes[anchor].next = first
	if anchor == l.tail {
		l.tail = last
	}
}

// PrependToFrontRun detaches the head run ending at last, links a new event
// in front of it and reinserts the whole block at ev.Time. Every event in the
// run must already carry a Time equal to ev.Time. It returns ev's ID.
func (l *EventList) PrependToFrontRun(ev Event, last EventID) EventID {
	first := l.DetachFront(last)
	id := l.alloc(ev)
	l.nodes[id].next = first
	l.InsertBlockOrdered(id, last)
	return id
}

// Check walks the list and verifies the ordering invariants: non-decreasing
// times, at most one termination, and no dispatch earlier than the
// outstanding termination. It also cross-checks the size and tail bookkeeping.
func (l *EventList) Check() error {
	prev := math.Inf(-1)
	terms := 0
	termTime := 0.0
	firstDispatch := math.Inf(1)
	n := 0
	last := NoEvent
	for id := l.head; id != NoEvent; id = l.nodes[id].next {
		ev := &l.nodes[id]
		if ev.Time < prev {
			return &InvariantError{Err: ErrUnorderedEvents,
				Msg: fmt.Sprintf("event %d (%s) precedes its predecessor at %.6f", id, *ev, prev)}
		}
		prev = ev.Time
		switch ev.Type {
		case EventTermination:
			terms++
			termTime = ev.Time
		case EventDispatch:
			firstDispatch = math.Min(firstDispatch, ev.Time)
		}
		n++
		if n > l.size {
			return &InvariantError{Err: ErrCorruptEventList, Msg: fmt.Sprintf("walked past %d linked events", l.size)}
		}
		last = id
	}
	if n != l.size {
		return &InvariantError{Err: ErrCorruptEventList, Msg: fmt.Sprintf("walked %d events, size says %d", n, l.size)}
	}
	if last != l.tail {
		return &InvariantError{Err: ErrCorruptEventList, Msg: fmt.Sprintf("walk ended at %d, tail is %d", last, l.tail)}
	}
	if terms > 1 {
		return &InvariantError{Err: ErrMultipleTerminations, Msg: fmt.Sprintf("%d termination events linked", terms)}
	}
	if terms == 1 && firstDispatch < termTime {
		return &InvariantError{Err: ErrDispatchBeforeTermination,
			Msg: fmt.Sprintf("dispatch at %.6f, termination at %.6f", firstDispatch, termTime)}
	}
	return nil
}
