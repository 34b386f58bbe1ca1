package sim

import (
	"fmt"
	"strconv"
	"strings"
)

// Policy selects the scheduling discipline. It is a closed set; the scheduler
// switches on it wherever the disciplines differ.
type Policy int

const (
	// PolicyFCFS runs processes to completion in arrival order.
	PolicyFCFS Policy = iota + 1
	// PolicySTRF runs the queued process with the shortest burst next.
	// It is non-preemptive: a running process is never interrupted.
	PolicySTRF
	// PolicyRR grants the CPU in slices of at most one quantum.
	PolicyRR
)

var policyNames = map[Policy]string{
	PolicyFCFS: "fcfs",
	PolicySTRF: "strf",
	PolicyRR:   "rr",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// IsValid reports whether p is one of the known policies.
func (p Policy) IsValid() bool {
	_, ok := policyNames[p]
	return ok
}

// UsesQuantum reports whether the policy needs a time quantum.
func (p Policy) UsesQuantum() bool {
	return p == PolicyRR
}

// ParsePolicy accepts the numeric ids used in results files (1, 2, 3) and the
// names fcfs, strf and rr (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		p := Policy(n)
		if !p.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrUnknownPolicy, n)
		}
		return p, nil
	}
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// AllPolicies returns the policies in id order.
func AllPolicies() []Policy {
	return []Policy{PolicyFCFS, PolicySTRF, PolicyRR}
}
