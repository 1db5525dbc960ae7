// Package system builds the particle configuration a Monte Carlo run starts
// from: random placement or a coordinate file, plus the box geometry derived
// from the reduced density.
package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/mkumar097/MonteCarloProject/internal/geometry"
)

// ErrInvalidParameter indicates a non-positive size, length or temperature.
var ErrInvalidParameter = errors.New("system: invalid parameter")

// System is the read-only description of a run's starting point. Drivers
// clone Coords before mutating them.
type System struct {
	Coords      []geometry.Vec3
	BoxLength   float64
	Cutoff      float64
	Temperature float64
}

// New validates the parameters and returns a System holding a wrapped copy
// of coords.
func New(coords []geometry.Vec3, boxLength, cutoff, temperature float64) (*System, error) {
	s := &System{
		Coords:      geometry.Clone(coords),
		BoxLength:   boxLength,
		Cutoff:      cutoff,
		Temperature: temperature,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	for i, r := range s.Coords {
		s.Coords[i] = geometry.Wrap(r, boxLength)
	}

	if cutoff >= boxLength/2 {
		logrus.Warnf("cutoff %.4f is not below half the box length %.4f; minimum-image energies may be wrong",
			cutoff, boxLength)
	}

	return s, nil
}

func (s *System) N() int { return len(s.Coords) }

func (s *System) Volume() float64 { return s.BoxLength * s.BoxLength * s.BoxLength }

func (s *System) Beta() float64 { return 1.0 / s.Temperature }

func (s *System) Density() float64 { return float64(s.N()) / s.Volume() }

func (s *System) Validate() error {
	if s.N() <= 0 {
		return fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidParameter, s.N())
	}
	if !(s.BoxLength > 0) {
		return fmt.Errorf("%w: box length must be positive, got %g", ErrInvalidParameter, s.BoxLength)
	}
	if !(s.Cutoff > 0) {
		return fmt.Errorf("%w: cutoff must be positive, got %g", ErrInvalidParameter, s.Cutoff)
	}
	if !(s.Temperature > 0) || math.IsInf(s.Temperature, 0) {
		return fmt.Errorf("%w: temperature must be positive, got %g", ErrInvalidParameter, s.Temperature)
	}
	for i, r := range s.Coords {
		if !r.IsValid() {
			return fmt.Errorf("%w: particle %d has non-finite coordinates", ErrInvalidParameter, i)
		}
	}
	return nil
}
