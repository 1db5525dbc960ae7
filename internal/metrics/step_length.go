package metrics

import (
	"github.com/mkumar097/MonteCarloProject/internal/geometry"
	"github.com/mkumar097/MonteCarloProject/internal/mc"
)

// MeanStep averages the minimum-image length of accepted moves.
type MeanStep struct {
	name      string
	boxLength float64
	sum       float64
	samples   int
}

func NewMeanStep(boxLength float64) *MeanStep {
	return &MeanStep{
		name:      "mean_step",
		boxLength: boxLength,
	}
}

func (s *MeanStep) Name() string {
	return s.name
}

func (s *MeanStep) Observe(move mc.Move, totalEnergy float64) {
	if !move.Accepted {
		return
	}
	s.sum += geometry.MinimumImageDistance(move.From, move.To, s.boxLength)
	s.samples++
}

func (s *MeanStep) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *MeanStep) Reset() {
	s.sum = 0
	s.samples = 0
}
