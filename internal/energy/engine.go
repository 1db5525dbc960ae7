package energy

import (
	"github.com/mkumar097/MonteCarloProject/internal/geometry"
)

// Engine evaluates pair energies within a cutoff in a cubic periodic box.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	BoxLength float64
	Cutoff    float64
}

func NewEngine(boxLength, cutoff float64) *Engine {
	return &Engine{BoxLength: boxLength, Cutoff: cutoff}
}

// pair returns the contribution of a pair at positions ri, rj: zero beyond
// the cutoff, an error at zero separation.
func (e *Engine) pair(i, j int, ri, rj geometry.Vec3) (float64, error) {
	r := geometry.MinimumImageDistance(ri, rj, e.BoxLength)
	if r == 0 {
		return 0, &PairError{I: i, J: j, Wrapped: ErrCoincidentParticles}
	}
	if r >= e.Cutoff {
		return 0, nil
	}
	return LennardJones(r), nil
}

// Total sums the pair potential over every unordered pair within the cutoff.
func (e *Engine) Total(coords []geometry.Vec3) (float64, error) {
	total := 0.0
	for i := range coords {
		for j := 0; j < i; j++ {
			u, err := e.pair(i, j, coords[i], coords[j])
			if err != nil {
				return 0, err
			}
			total += u
		}
	}
	return total, nil
}

// Single sums the pair potential between particle i and every other particle.
func (e *Engine) Single(i int, coords []geometry.Vec3) (float64, error) {
	return e.ParticleEnergy(i, coords[i], coords)
}

// ParticleEnergy is Single with particle i placed at pos instead of coords[i].
// This evaluates a trial position without copying the configuration.
func (e *Engine) ParticleEnergy(i int, pos geometry.Vec3, coords []geometry.Vec3) (float64, error) {
	total := 0.0
	for j := range coords {
		if j == i {
			continue
		}
		u, err := e.pair(i, j, pos, coords[j])
		if err != nil {
			return 0, err
		}
		total += u
	}
	return total, nil
}
