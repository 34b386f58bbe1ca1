// Package sim provides the discrete-event engine for comparing CPU scheduling
// policies.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (arrival → queued → served → terminated)
//   - event.go: Event types that drive the simulation (Arrival, Dispatch, Termination)
//   - event_list.go: The single ordered event list and its replenishing splice primitives
//   - scheduler.go: The event loop, shared arrival/termination handling and anchors
//
// # Policies
//
// A Policy is a closed tag. Each discipline only decides where a dispatch
// event goes and what happens when it is handled:
//   - fcfs.go: queue-position dispatch events behind the running process
//   - strf.go: the same queue, ordered by burst time (non-preemptive)
//   - rr.go: timestamped quantum slices with preemption
//
// # Invariants
//
// After every mutation the event list is ordered by time, holds at most one
// termination event, and holds no dispatch event earlier than that
// termination. EventList.Check verifies them; Config.CheckInvariants runs it
// after every handled event. A violation is a defect in the engine: it panics
// with *InvariantError and Scheduler.Run returns it as an error.
//
// Sub-packages:
//   - sim/workload/: arrival gap and burst sources
//   - sim/trace/: dispatch and termination decision trace
package sim
