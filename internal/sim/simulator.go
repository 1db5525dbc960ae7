package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/mkumar097/MonteCarloProject/internal/energy"
	"github.com/mkumar097/MonteCarloProject/internal/geometry"
	"github.com/mkumar097/MonteCarloProject/internal/mc"
	"github.com/mkumar097/MonteCarloProject/internal/system"
)

type Simulator struct {
	sys       *system.System
	engine    *energy.Engine
	src       mc.Source
	cfg       Config
	tuner     mc.Tuner
	reporter  Reporter
	metrics   []Metric
	observers []Observer
}

func New(sys *system.System, src mc.Source, cfg Config) (*Simulator, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		sys:       sys,
		engine:    energy.NewEngine(sys.BoxLength, sys.Cutoff),
		src:       src,
		cfg:       cfg,
		tuner:     mc.DefaultTuner(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetReporter(r Reporter) { s.reporter = r }
func (s *Simulator) SetTuner(t mc.Tuner)    { s.tuner = t }
func (s *Simulator) Config() Config         { return s.cfg }
func (s *Simulator) System() *system.System { return s.sys }
func (s *Simulator) Engine() *energy.Engine { return s.engine }

// Run executes the configured number of steps. Cancelling ctx stops the
// chain between steps and returns the partial result with ctx.Err().
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	chain, err := s.Start()
	if err != nil {
		return nil, err
	}

	for !chain.Done() {
		select {
		case <-ctx.Done():
			result, err := chain.Finish()
			if err != nil {
				return nil, err
			}
			return result, ctx.Err()
		default:
		}

		if _, err := chain.Step(); err != nil {
			return nil, err
		}
	}

	return chain.Finish()
}

// Start evaluates the initial energy and tail correction and returns a chain
// positioned before step 0.
func (s *Simulator) Start() (*Chain, error) {
	coords := geometry.Clone(s.sys.Coords)

	initial, err := s.engine.Total(coords)
	if err != nil {
		return nil, fmt.Errorf("initial energy: %w", err)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	if s.reporter != nil {
		s.reporter.Start(initial)
	}

	return &Chain{
		sim:        s,
		sampler:    mc.NewSampler(s.engine, s.src, s.sys.Beta(), s.sys.BoxLength),
		state:      mc.State{Coords: coords, PairEnergy: initial},
		disp:       mc.Displacement{Max: s.cfg.MaxDisplacement},
		tail:       energy.TailCorrection(s.sys.N(), s.sys.Volume(), s.sys.Cutoff),
		initial:    initial,
		trajectory: make([]float64, 0, s.cfg.NumSteps),
	}, nil
}

// Chain is the mutable state of one run.
type Chain struct {
	sim        *Simulator
	sampler    *mc.Sampler
	state      mc.State
	disp       mc.Displacement
	tail       float64
	initial    float64
	step       int
	trials     int
	accepted   int
	trajectory []float64
}

func (c *Chain) Done() bool { return c.step >= c.sim.cfg.NumSteps }

// StepIndex returns the index of the next step.
func (c *Chain) StepIndex() int { return c.step }

// NumSteps returns the configured length of the chain.
func (c *Chain) NumSteps() int { return c.sim.cfg.NumSteps }

func (c *Chain) PairEnergy() float64 { return c.state.PairEnergy }

func (c *Chain) TailCorrection() float64 { return c.tail }

func (c *Chain) Displacement() mc.Displacement { return c.disp }

// Trajectory returns the samples recorded so far. The slice is shared with
// the chain and must not be modified.
func (c *Chain) Trajectory() []float64 { return c.trajectory }

// Coords returns the current positions. The slice is shared with the chain
// and must not be modified.
func (c *Chain) Coords() []geometry.Vec3 { return c.state.Coords }

// TotalEnergy returns (pair energy + tail correction) / N.
func (c *Chain) TotalEnergy() float64 {
	return (c.state.PairEnergy + c.tail) / float64(len(c.state.Coords))
}

func (c *Chain) AcceptanceRatio() float64 {
	if c.trials == 0 {
		return 0
	}
	return float64(c.accepted) / float64(c.trials)
}

// Step advances the chain by one Metropolis trial and records its energy.
func (c *Chain) Step() (mc.Move, error) {
	if c.Done() {
		return mc.Move{}, ErrChainDone
	}

	move, err := c.sampler.Step(&c.state, &c.disp)
	if err != nil {
		return move, &SimulationError{Step: c.step, Wrapped: err}
	}

	c.trials++
	if move.Accepted {
		c.accepted++
	}

	e := c.TotalEnergy()
	c.trajectory = append(c.trajectory, e)

	for _, m := range c.sim.metrics {
		m.Observe(move, e)
	}
	for _, obs := range c.sim.observers {
		obs.OnStep(c.step, move, e)
	}

	cfg := c.sim.cfg
	if c.sim.reporter != nil && cfg.OutputFreq > 0 && (c.step+1)%cfg.OutputFreq == 0 {
		c.sim.reporter.Progress(c.step, e)
	}

	if cfg.TuneDisplacement && (c.step+1)%cfg.TuneFreq == 0 {
		before := c.disp.Max
		rate := c.disp.Rate()
		if c.sim.tuner.Adjust(&c.disp) {
			logrus.Debugf("[step %07d] acceptance %.3f, max displacement %.5f -> %.5f",
				c.step, rate, before, c.disp.Max)
		}
	}

	c.step++
	return move, nil
}

// Finish cross-checks the running pair energy against a full recomputation
// and packages the run. The chain may keep stepping afterwards.
func (c *Chain) Finish() (*Result, error) {
	recomputed, err := c.sim.engine.Total(c.state.Coords)
	if err != nil {
		return nil, fmt.Errorf("final energy: %w", err)
	}

	result := &Result{
		Trajectory:        append([]float64(nil), c.trajectory...),
		Coords:            geometry.Clone(c.state.Coords),
		InitialPairEnergy: c.initial,
		PairEnergy:        c.state.PairEnergy,
		TailCorrection:    c.tail,
		Displacement:      c.disp,
		Trials:            c.trials,
		Accepted:          c.accepted,
		EnergyDrift:       math.Abs(c.state.PairEnergy - recomputed),
		StepsTaken:        c.step,
		Metrics:           make(map[string]float64, len(c.sim.metrics)),
	}
	if result.Trajectory == nil {
		result.Trajectory = []float64{}
	}

	for _, m := range c.sim.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
