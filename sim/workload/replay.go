package workload

import "fmt"

// Padding used once a Replay runs out of recorded arrivals. The gap is large
// enough to keep filler processes out of any realistic hand-built scenario.
const (
	DefaultPadGap   = 1e6
	DefaultPadBurst = 1.0
)

// Replay plays back a recorded sequence of (gap, burst) pairs, then pads with
// far-future arrivals so the event list can always be replenished.
type Replay struct {
	gaps     []float64
	bursts   []float64
	pos      int
	PadGap   float64
	PadBurst float64
}

// NewReplay creates a Replay from parallel gap and burst slices.
func NewReplay(gaps, bursts []float64) (*Replay, error) {
	if len(gaps) != len(bursts) {
		return nil, fmt.Errorf("replay has %d gaps but %d bursts", len(gaps), len(bursts))
	}
	for i := range gaps {
		if gaps[i] < 0 {
			return nil, fmt.Errorf("replay gap %d is negative (%v)", i, gaps[i])
		}
		if bursts[i] < 0 {
			return nil, fmt.Errorf("replay burst %d is negative (%v)", i, bursts[i])
		}
	}
	return &Replay{
		gaps:     append([]float64(nil), gaps...),
		bursts:   append([]float64(nil), bursts...),
		PadGap:   DefaultPadGap,
		PadBurst: DefaultPadBurst,
	}, nil
}

// NewReplayAt builds a Replay whose arrivals land at the given absolute times
// when the event list starts empty at time zero. Times must be non-decreasing.
func NewReplayAt(times, bursts []float64) (*Replay, error) {
	gaps := make([]float64, len(times))
	prev := 0.0
	for i, t := range times {
		if t < prev {
			return nil, fmt.Errorf("replay arrival %d at %v precedes previous arrival at %v", i, t, prev)
		}
		gaps[i] = t - prev
		prev = t
	}
	return NewReplay(gaps, bursts)
}

// Remaining returns how many recorded arrivals have not been handed out yet.
func (r *Replay) Remaining() int {
	return len(r.gaps) - r.pos
}

func (r *Replay) Next(n int) (gaps, bursts []float64) {
	if n <= 0 {
		return nil, nil
	}
	gaps = make([]float64, n)
	bursts = make([]float64, n)
	for i := 0; i < n; i++ {
		if r.pos < len(r.gaps) {
			gaps[i], bursts[i] = r.gaps[r.pos], r.bursts[r.pos]
			r.pos++
			continue
		}
		gaps[i], bursts[i] = r.PadGap, r.PadBurst
	}
	return gaps, bursts
}
