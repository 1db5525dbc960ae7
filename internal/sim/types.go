package sim

import (
	"fmt"
	"math"

	"github.com/mkumar097/MonteCarloProject/internal/geometry"
	"github.com/mkumar097/MonteCarloProject/internal/mc"
)

const (
	DefaultNumSteps        = 6000
	DefaultMaxDisplacement = 0.1
	DefaultOutputFreq      = 1000
	DefaultTuneFreq        = 100
)

type Config struct {
	NumSteps        int
	MaxDisplacement float64
	// OutputFreq is the progress-report cadence in steps; 0 disables reports.
	OutputFreq int
	// TuneDisplacement enables the step-size tuner every TuneFreq steps.
	TuneDisplacement bool
	TuneFreq         int
}

func DefaultConfig() Config {
	return Config{
		NumSteps:        DefaultNumSteps,
		MaxDisplacement: DefaultMaxDisplacement,
		OutputFreq:      DefaultOutputFreq,
		TuneFreq:        DefaultTuneFreq,
	}
}

func (c Config) Validate() error {
	if c.NumSteps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalidConfig, c.NumSteps)
	}
	if c.MaxDisplacement < 0 || math.IsNaN(c.MaxDisplacement) || math.IsInf(c.MaxDisplacement, 0) {
		return fmt.Errorf("%w: max displacement must be finite and non-negative, got %g", ErrInvalidConfig, c.MaxDisplacement)
	}
	if c.OutputFreq < 0 {
		return fmt.Errorf("%w: output frequency must not be negative, got %d", ErrInvalidConfig, c.OutputFreq)
	}
	if c.TuneFreq < 0 || (c.TuneDisplacement && c.TuneFreq == 0) {
		return fmt.Errorf("%w: tuning requires a positive tune frequency, got %d", ErrInvalidConfig, c.TuneFreq)
	}
	return nil
}

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(move mc.Move, totalEnergy float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, move mc.Move, totalEnergy float64)
}

// Reporter receives the textual progress of a run.
type Reporter interface {
	Start(initialPairEnergy float64)
	Progress(step int, totalEnergy float64)
}

type Result struct {
	// Trajectory holds one reduced total energy per step.
	Trajectory        []float64
	Coords            []geometry.Vec3
	InitialPairEnergy float64
	PairEnergy        float64
	TailCorrection    float64
	// Displacement is the tuner state at the end of the run; its counters
	// only cover the steps since the last tuning event.
	Displacement mc.Displacement
	Trials       int
	Accepted     int
	// EnergyDrift is |running pair energy - recomputed pair energy|.
	EnergyDrift float64
	StepsTaken  int
	Metrics     map[string]float64
}

// TotalEnergy returns the reduced total energy per particle at the end of
// the run.
func (r *Result) TotalEnergy() float64 {
	return (r.PairEnergy + r.TailCorrection) / float64(len(r.Coords))
}

func (r *Result) AcceptanceRatio() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Trials)
}
