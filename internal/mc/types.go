package mc

import "github.com/mkumar097/MonteCarloProject/internal/geometry"

// Source is the uniform sampling capability the sampler draws from.
// *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// EnergyModel evaluates the energy of particle i placed at pos against the
// rest of coords.
type EnergyModel interface {
	ParticleEnergy(i int, pos geometry.Vec3, coords []geometry.Vec3) (float64, error)
}

// State is the mutable part of a chain the sampler advances.
type State struct {
	Coords     []geometry.Vec3
	PairEnergy float64
}

// Displacement holds the trial step size and the counters the tuner reads.
type Displacement struct {
	Max      float64
	Trials   int
	Accepted int
}

// Rate returns Accepted/Trials, or 0 before any trial.
func (d Displacement) Rate() float64 {
	if d.Trials == 0 {
		return 0
	}
	return float64(d.Accepted) / float64(d.Trials)
}

// Move describes one completed trial.
type Move struct {
	Particle int
	From     geometry.Vec3
	To       geometry.Vec3 // wrapped trial position
	DeltaE   float64
	Accepted bool
}
