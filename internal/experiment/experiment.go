package experiment

import (
	"context"
	"fmt"

	"github.com/mkumar097/MonteCarloProject/internal/config"
	"github.com/mkumar097/MonteCarloProject/internal/rng"
	"github.com/mkumar097/MonteCarloProject/internal/sim"
	"github.com/mkumar097/MonteCarloProject/internal/system"
)

// Experiment turns a run configuration into a ready-to-run simulator. The
// placement and sampler draw from separate streams of one seed, so changing
// the step count never changes the starting configuration.
type Experiment struct {
	cfg       *config.Config
	rng       *rng.PartitionedRNG
	sys       *system.System
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{
		cfg: cfg,
		rng: rng.New(cfg.Seed),
	}
}

// Setup builds the system and the simulator and attaches the named metrics
// from reg. With no names every registered metric is attached; a nil reg
// attaches none.
func (e *Experiment) Setup(reg *Registry, names ...string) error {
	sys, err := e.buildSystem()
	if err != nil {
		return fmt.Errorf("system setup: %w", err)
	}

	s, err := sim.New(sys, e.rng.ForSubsystem(rng.SubsystemSampler), e.cfg.SimConfig())
	if err != nil {
		return err
	}

	if reg != nil {
		if len(names) == 0 {
			names = reg.ListMetrics()
		}
		for _, name := range names {
			m, err := reg.GetMetric(name, e.cfg, sys)
			if err != nil {
				return err
			}
			s.AddMetric(m)
		}
	}

	e.sys = sys
	e.simulator = s
	return nil
}

func (e *Experiment) buildSystem() (*system.System, error) {
	params := e.cfg.SystemParams()
	if e.cfg.System.InputFile != "" {
		return system.FromFile(e.cfg.System.InputFile, params)
	}
	return system.Random(params, e.rng.ForSubsystem(rng.SubsystemPlacement))
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx)
}

// Simulator returns the underlying simulator for adding observers or a
// reporter.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) System() *system.System {
	return e.sys
}

func (e *Experiment) Config() *config.Config {
	return e.cfg
}
