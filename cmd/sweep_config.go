package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/workload"
)

// SweepConfig describes an arrival-rate × policy experiment.
// Every policy runs once per arrival rate; rows are written policy by policy
// in the listed order. All top-level keys must be listed to satisfy
// KnownFields(true) strict parsing.
type SweepConfig struct {
	Policies       []string  `yaml:"policies"`
	ArrivalRates   []float64 `yaml:"arrival_rates"`
	AvgServiceTime float64   `yaml:"avg_service_time"`
	Quantum        float64   `yaml:"quantum"`
	Seed           int64     `yaml:"seed"`
	Completions    int       `yaml:"completions"`
	ArrivalProcess string    `yaml:"arrival_process"`
	Output         string    `yaml:"output"`
	Parallelism    int       `yaml:"parallelism"`
}

// DefaultSweepConfig reproduces the historical experiment: rates 1..30 with
// burst 0.06 and quantum 0.04 for FCFS, STRF and RR, appended to data.csv.
func DefaultSweepConfig() SweepConfig {
	rates := make([]float64, 30)
	for i := range rates {
		rates[i] = float64(i + 1)
	}
	return SweepConfig{
		Policies:       []string{"fcfs", "strf", "rr"},
		ArrivalRates:   rates,
		AvgServiceTime: 0.06,
		Quantum:        0.04,
		Seed:           sim.DefaultSeed,
		Completions:    sim.DefaultTargetCompletions,
		ArrivalProcess: workload.ProcessPoissonMs,
		Output:         "data.csv",
		Parallelism:    4,
	}
}

// LoadSweepConfig reads a sweep file. Keys missing from the file keep their
// default values; unknown keys are an error.
func LoadSweepConfig(path string) (SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SweepConfig{}, fmt.Errorf("reading sweep config: %w", err)
	}
	return ParseSweepConfig(data)
}

// ParseSweepConfig decodes sweep YAML on top of DefaultSweepConfig.
func ParseSweepConfig(data []byte) (SweepConfig, error) {
	cfg := DefaultSweepConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return SweepConfig{}, fmt.Errorf("parsing sweep config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SweepConfig{}, err
	}
	return cfg, nil
}

// Validate checks the sweep as a whole and every run it expands to.
func (c SweepConfig) Validate() error {
	if len(c.Policies) == 0 {
		return fmt.Errorf("sweep needs at least one policy")
	}
	if len(c.ArrivalRates) == 0 {
		return fmt.Errorf("sweep needs at least one arrival rate")
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if c.Output == "" {
		return fmt.Errorf("sweep output path must not be empty")
	}
	_, err := c.Runs()
	return err
}

// Runs expands the sweep into one Config per (policy, rate), policy-major.
func (c SweepConfig) Runs() ([]sim.Config, error) {
	runs := make([]sim.Config, 0, len(c.Policies)*len(c.ArrivalRates))
	for _, name := range c.Policies {
		policy, err := sim.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		for _, rate := range c.ArrivalRates {
			cfg := sim.DefaultConfig(policy, rate, c.AvgServiceTime, c.Quantum)
			cfg.Seed = c.Seed
			cfg.TargetCompletions = c.Completions
			cfg.ArrivalProcess = c.ArrivalProcess
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("%s at rate %v: %w", policy, rate, err)
			}
			runs = append(runs, cfg)
		}
	}
	return runs, nil
}
