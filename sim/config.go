package sim

import (
	"fmt"

	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

// Defaults taken over from the historical driver, so results stay comparable.
const (
	DefaultTargetCompletions = 10000
	DefaultInitialArrivals   = 12000
	DefaultReplenishBatch    = 1000
	DefaultSeed              = 42
)

// Config parameterizes one simulation run.
type Config struct {
	Policy         Policy
	ArrivalRate    float64 // average arrivals per time unit (must be > 0)
	AvgServiceTime float64 // mean burst time (must be > 0)
	Quantum        float64 // RR time slice (must be > 0 for RR, ignored otherwise)
	Seed           int64

	TargetCompletions int // stop once this many processes have terminated
	InitialArrivals   int // arrivals seeded before the first event is handled
	ReplenishBatch    int // arrivals appended whenever an insertion walk hits the tail

	ArrivalProcess  string // workload.ProcessPoissonMs (default) or workload.ProcessExponential
	CheckInvariants bool   // walk the whole event list after every handled event
	Trace           trace.TraceConfig
}

// DefaultConfig returns a Config for policy with every tunable at its default.
func DefaultConfig(policy Policy, rate, avgService, quantum float64) Config {
	return Config{
		Policy:            policy,
		ArrivalRate:       rate,
		AvgServiceTime:    avgService,
		Quantum:           quantum,
		Seed:              DefaultSeed,
		TargetCompletions: DefaultTargetCompletions,
		InitialArrivals:   DefaultInitialArrivals,
		ReplenishBatch:    DefaultReplenishBatch,
		ArrivalProcess:    workload.ProcessPoissonMs,
	}
}

// withDefaults fills zero-valued batch sizes.
func (c Config) withDefaults() Config {
	if c.TargetCompletions == 0 {
		c.TargetCompletions = DefaultTargetCompletions
	}
	if c.InitialArrivals == 0 {
		c.InitialArrivals = DefaultInitialArrivals
	}
	if c.ReplenishBatch == 0 {
		c.ReplenishBatch = DefaultReplenishBatch
	}
	return c
}

// Validate reports the first configuration error, if any. Zero batch sizes
// are accepted and mean "use the default".
func (c Config) Validate() error {
	if !c.Policy.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownPolicy, int(c.Policy))
	}
	if !(c.ArrivalRate > 0) {
		return fmt.Errorf("arrival rate must be positive, got %v", c.ArrivalRate)
	}
	if !(c.AvgServiceTime > 0) {
		return fmt.Errorf("average service time must be positive, got %v", c.AvgServiceTime)
	}
	if c.Policy.UsesQuantum() && !(c.Quantum > 0) {
		return fmt.Errorf("quantum must be positive for %s, got %v", c.Policy, c.Quantum)
	}
	if c.TargetCompletions < 0 {
		return fmt.Errorf("target completions must be non-negative, got %d", c.TargetCompletions)
	}
	if c.InitialArrivals < 0 || c.ReplenishBatch < 0 {
		return fmt.Errorf("arrival batch sizes must be non-negative, got initial=%d replenish=%d",
			c.InitialArrivals, c.ReplenishBatch)
	}
	if !workload.IsValidArrivalProcess(c.ArrivalProcess) {
		return fmt.Errorf("unknown arrival process %q", c.ArrivalProcess)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	return nil
}
