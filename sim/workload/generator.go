// Package workload supplies the arrival and service-demand streams that feed
// the scheduler's event list.
//
// A Source hands out batches of (gap, burst) samples on demand. The event list
// turns gaps into absolute arrival times, so a Source never needs to know the
// simulation clock. Generator is the stochastic Source; Replay plays back a
// fixed sequence and is mostly used to build small hand-checked scenarios.
package workload

import (
	"fmt"
	"math/rand/v2"
)

// Source supplies arrivals in batches.
type Source interface {
	// Next returns n inter-arrival gaps and n burst times.
	Next(n int) (gaps, bursts []float64)
}

// GeneratorConfig selects the distributions used by a Generator.
type GeneratorConfig struct {
	ArrivalRate    float64 // average arrivals per time unit (must be > 0)
	AvgServiceTime float64 // mean burst time (must be > 0)
	ArrivalProcess string  // "poisson-ms" (default) or "exponential"
}

// Generator draws bursts and gaps from independent RNG streams.
type Generator struct {
	gaps   GapSampler
	bursts BurstSampler
}

// NewGenerator creates a Generator. gapSrc and burstSrc should be distinct
// streams so that changing the arrival process leaves bursts untouched.
func NewGenerator(cfg GeneratorConfig, gapSrc, burstSrc rand.Source) (*Generator, error) {
	gaps, err := NewGapSampler(cfg.ArrivalProcess, cfg.ArrivalRate, gapSrc)
	if err != nil {
		return nil, fmt.Errorf("gap sampler: %w", err)
	}
	bursts, err := NewExponentialBurstSampler(cfg.AvgServiceTime, burstSrc)
	if err != nil {
		return nil, fmt.Errorf("burst sampler: %w", err)
	}
	return &Generator{gaps: gaps, bursts: bursts}, nil
}

// Next samples all n bursts first, then all n gaps.
func (g *Generator) Next(n int) (gaps, bursts []float64) {
	if n <= 0 {
		return nil, nil
	}
	bursts = make([]float64, n)
	for i := range bursts {
		bursts[i] = g.bursts.SampleBurst()
	}
	gaps = make([]float64, n)
	for i := range gaps {
		gaps[i] = g.gaps.SampleGap()
	}
	return gaps, bursts
}
