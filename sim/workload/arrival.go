package workload

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Arrival process names accepted by NewGapSampler.
const (
	// ProcessPoissonMs draws whole-millisecond gaps from Poisson(1000/rate).
	// This is the historical sampling behavior and the default, kept so new
	// results stay comparable with existing results files. Note that it is not
	// the memoryless (exponential) gap distribution of a Poisson process.
	ProcessPoissonMs = "poisson-ms"

	// ProcessExponential draws exponentially-distributed gaps with mean 1/rate.
	ProcessExponential = "exponential"
)

// validArrivalProcesses maps accepted arrival process names.
var validArrivalProcesses = map[string]bool{
	ProcessPoissonMs:   true,
	ProcessExponential: true,
	"":                 true, // empty defaults to poisson-ms
}

// IsValidArrivalProcess returns true if the given name is a recognized arrival process.
func IsValidArrivalProcess(name string) bool {
	return validArrivalProcesses[name]
}

// GapSampler generates inter-arrival gaps in simulation time units.
type GapSampler interface {
	// SampleGap returns the next gap. Never negative; may be zero.
	SampleGap() float64
}

// PoissonMsSampler counts a Poisson number of milliseconds between arrivals.
// Zero-millisecond gaps are possible and yield simultaneous arrivals.
type PoissonMsSampler struct {
	dist distuv.Poisson
}

func (s *PoissonMsSampler) SampleGap() float64 {
	return s.dist.Rand() / 1000
}

// ExponentialGapSampler generates memoryless gaps (CV=1).
type ExponentialGapSampler struct {
	dist distuv.Exponential
}

func (s *ExponentialGapSampler) SampleGap() float64 {
	return s.dist.Rand()
}

// NewGapSampler creates a GapSampler for the named process at the given
// average arrival rate (arrivals per time unit). src must not be shared with
// another sampler if draws are expected to be reproducible per stream.
func NewGapSampler(process string, rate float64, src rand.Source) (GapSampler, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("arrival rate must be positive, got %v", rate)
	}
	switch process {
	case "", ProcessPoissonMs:
		return &PoissonMsSampler{dist: distuv.Poisson{Lambda: 1000 / rate, Src: src}}, nil
	case ProcessExponential:
		return &ExponentialGapSampler{dist: distuv.Exponential{Rate: rate, Src: src}}, nil
	default:
		return nil, fmt.Errorf("unknown arrival process %q", process)
	}
}
