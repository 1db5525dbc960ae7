package metrics

import "github.com/mkumar097/MonteCarloProject/internal/mc"

// MeanEnergy averages the reduced total energy per particle over the steps
// after the first Skip.
type MeanEnergy struct {
	name    string
	skip    int
	seen    int
	sum     float64
	samples int
}

func NewMeanEnergy(skip int) *MeanEnergy {
	if skip < 0 {
		skip = 0
	}
	return &MeanEnergy{
		name: "mean_energy",
		skip: skip,
	}
}

func (e *MeanEnergy) Name() string { return e.name }

func (e *MeanEnergy) Observe(move mc.Move, totalEnergy float64) {
	e.seen++
	if e.seen <= e.skip {
		return
	}
	e.sum += totalEnergy
	e.samples++
}

func (e *MeanEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *MeanEnergy) Samples() int { return e.samples }

func (e *MeanEnergy) Reset() {
	e.seen = 0
	e.sum = 0
	e.samples = 0
}

// EnergyRange tracks the spread between the lowest and highest energy seen.
type EnergyRange struct {
	name     string
	min, max float64
	samples  int
}

func NewEnergyRange() *EnergyRange {
	return &EnergyRange{name: "energy_range"}
}

func (r *EnergyRange) Name() string { return r.name }

func (r *EnergyRange) Observe(move mc.Move, totalEnergy float64) {
	if r.samples == 0 || totalEnergy < r.min {
		r.min = totalEnergy
	}
	if r.samples == 0 || totalEnergy > r.max {
		r.max = totalEnergy
	}
	r.samples++
}

func (r *EnergyRange) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.max - r.min
}

func (r *EnergyRange) Reset() {
	r.min = 0
	r.max = 0
	r.samples = 0
}
