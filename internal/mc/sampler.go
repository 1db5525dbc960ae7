package mc

import (
	"fmt"
	"math"

	"github.com/mkumar097/MonteCarloProject/internal/geometry"
)

type Sampler struct {
	energy    EnergyModel
	src       Source
	beta      float64
	boxLength float64
}

func NewSampler(energy EnergyModel, src Source, beta, boxLength float64) *Sampler {
	return &Sampler{
		energy:    energy,
		src:       src,
		beta:      beta,
		boxLength: boxLength,
	}
}

func (s *Sampler) Beta() float64 { return s.beta }

// Step performs one trial move on st. Draw order: particle index, then the
// x, y, z displacement components, then (only when ΔE >= 0) the acceptance
// variate. A rejected move leaves st untouched apart from disp.Trials.
func (s *Sampler) Step(st *State, disp *Displacement) (Move, error) {
	i := s.src.Intn(len(st.Coords))
	from := st.Coords[i]

	current, err := s.energy.ParticleEnergy(i, from, st.Coords)
	if err != nil {
		return Move{}, fmt.Errorf("current energy of particle %d: %w", i, err)
	}

	var d geometry.Vec3
	for k := range d {
		d[k] = (2*s.src.Float64() - 1) * disp.Max
	}
	to := geometry.Wrap(from.Add(d), s.boxLength)

	proposed, err := s.energy.ParticleEnergy(i, to, st.Coords)
	if err != nil {
		return Move{}, fmt.Errorf("trial energy of particle %d: %w", i, err)
	}

	move := Move{
		Particle: i,
		From:     from,
		To:       to,
		DeltaE:   proposed - current,
	}
	move.Accepted = Accept(move.DeltaE, s.beta, s.src)

	if move.Accepted {
		st.Coords[i] = to
		st.PairEnergy += move.DeltaE
		disp.Accepted++
	}
	disp.Trials++

	return move, nil
}

// Accept applies the Metropolis criterion. Downhill moves are accepted
// without consuming a random draw; uphill moves are accepted with
// probability exp(-beta*deltaE), which underflows harmlessly to zero.
func Accept(deltaE, beta float64, src Source) bool {
	if deltaE < 0 {
		return true
	}
	return src.Float64() < math.Exp(-beta*deltaE)
}
