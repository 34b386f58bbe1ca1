package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcess_TurnaroundAndWait(t *testing.T) {
	p := NewProcess(3, 1.0, 0.5)
	assert.Equal(t, 0.5, p.TimeRemaining)

	p.TerminationTime = 2.5

	assert.Equal(t, 1.5, p.Turnaround())
	assert.Equal(t, 1.0, p.Wait())
	assert.Contains(t, p.String(), "pid=3")
}

func TestEvent_String(t *testing.T) {
	ev := Event{Type: EventDispatch, Time: 0.25, Proc: NewProcess(4, 0, 1)}
	assert.Equal(t, "type=dispatch, time=0.250000, pid=4", ev.String())
	assert.Equal(t, "unknown(9)", EventType(9).String())
}

func TestInvariantError_Unwrap(t *testing.T) {
	err := &InvariantError{Msg: "two outstanding", Err: ErrMultipleTerminations}

	assert.ErrorIs(t, err, ErrMultipleTerminations)
	assert.Equal(t, "invariant violation: more than one termination event outstanding: two outstanding", err.Error())
}
