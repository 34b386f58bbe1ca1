package sim

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying which engine invariant broke. They reach callers
// wrapped in an *InvariantError.
var (
	ErrEmptyEventList            = errors.New("event list is empty")
	ErrUnorderedEvents           = errors.New("event list is not ordered by time")
	ErrMultipleTerminations      = errors.New("more than one termination event outstanding")
	ErrDispatchBeforeTermination = errors.New("dispatch event scheduled before outstanding termination")
	ErrTerminationBeforeClock    = errors.New("termination scheduled before the current clock")
	ErrTerminationBeforeArrival  = errors.New("termination scheduled before process arrival")
	ErrAnchorMismatch            = errors.New("dispatch anchor does not match the queued dispatch run")
	ErrCorruptEventList          = errors.New("event list links are inconsistent")
	ErrUnknownEvent              = errors.New("unknown event type")
)

// ErrUnknownPolicy is returned when a policy name or id is not recognized.
var ErrUnknownPolicy = errors.New("unknown scheduling policy")

// InvariantError reports a logic defect inside the simulation engine. It is
// raised with panic at the point of detection and turned back into an error
// by Scheduler.Run; it is never retried.
type InvariantError struct {
	Msg   string
	Err   error  // one of the Err* sentinels above
	Stats *Stats // scheduler state at the time of the failure (may be nil for bare event lists)
}

func (e *InvariantError) Error() string {
	if e.Err == nil {
		return "invariant violation: " + e.Msg
	}
	return fmt.Sprintf("invariant violation: %v: %s", e.Err, e.Msg)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// invariantPanic aborts the current operation with an *InvariantError.
func invariantPanic(err error, format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...), Err: err})
}
