package metrics

import "github.com/mkumar097/MonteCarloProject/internal/mc"

// Acceptance is the fraction of accepted trial moves over the whole run,
// independent of the tuner's windowed counters.
type Acceptance struct {
	name     string
	accepted int
	samples  int
}

func NewAcceptance() *Acceptance {
	return &Acceptance{
		name: "acceptance_ratio",
	}
}

func (a *Acceptance) Name() string {
	return a.name
}

func (a *Acceptance) Observe(move mc.Move, totalEnergy float64) {
	a.samples++
	if move.Accepted {
		a.accepted++
	}
}

func (a *Acceptance) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.samples)
}

func (a *Acceptance) Reset() {
	a.accepted = 0
	a.samples = 0
}
