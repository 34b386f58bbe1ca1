package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// RNG subsystems. Bursts and gaps draw from separate streams so that two runs
// differing only in arrival rate or arrival process see the same service
// demands.
const (
	// SubsystemBursts draws service times and is seeded with the run seed itself.
	SubsystemBursts = "bursts"

	// SubsystemArrivals draws inter-arrival gaps.
	SubsystemArrivals = "arrivals"
)

// pcgStream is the fixed PCG increment shared by every subsystem; streams
// differ through their derived seed only.
const pcgStream = 0x9e3779b97f4a7c15

// PartitionedRNG hands out one seeded stream per subsystem. Every subsystem
// except SubsystemBursts is seeded with seed XOR fnv1a64(name).
//
// Not thread-safe.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG for the given run seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use. The
// result also satisfies rand.Source, so it can feed gonum distributions.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := p.seed
	if name != SubsystemBursts {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewPCG(uint64(seed), pcgStream))
	p.subsystems[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
