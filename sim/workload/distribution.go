package workload

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// BurstSampler produces CPU service demands (burst times).
type BurstSampler interface {
	// SampleBurst returns a non-negative service time.
	SampleBurst() float64
}

// ExponentialBurstSampler produces exponentially-distributed bursts.
type ExponentialBurstSampler struct {
	mean float64
	dist distuv.Exponential
}

// NewExponentialBurstSampler creates a sampler whose bursts average mean time units.
func NewExponentialBurstSampler(mean float64, src rand.Source) (*ExponentialBurstSampler, error) {
	if mean <= 0 {
		return nil, fmt.Errorf("average service time must be positive, got %v", mean)
	}
	return &ExponentialBurstSampler{
		mean: mean,
		dist: distuv.Exponential{Rate: 1 / mean, Src: src},
	}, nil
}

func (s *ExponentialBurstSampler) SampleBurst() float64 {
	return s.dist.Rand()
}

// Mean returns the configured average burst.
func (s *ExponentialBurstSampler) Mean() float64 {
	return s.mean
}
