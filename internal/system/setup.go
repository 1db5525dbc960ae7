package system

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mkumar097/MonteCarloProject/internal/geometry"
)

// Params describes a fluid state point in reduced units.
type Params struct {
	NumParticles int
	Density      float64
	Temperature  float64
	// Cutoff defaults to a third of the box length when zero.
	Cutoff float64
}

// Source supplies uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// BoxLength returns the edge of a cubic box holding n particles at density.
func BoxLength(n int, density float64) float64 {
	return math.Cbrt(float64(n) / density)
}

func (p Params) validate() error {
	if p.NumParticles <= 0 {
		return fmt.Errorf("%w: particle count must be positive, got %d", ErrInvalidParameter, p.NumParticles)
	}
	if !(p.Density > 0) {
		return fmt.Errorf("%w: density must be positive, got %g", ErrInvalidParameter, p.Density)
	}
	if p.Cutoff < 0 {
		return fmt.Errorf("%w: cutoff must not be negative, got %g", ErrInvalidParameter, p.Cutoff)
	}
	return nil
}

func (p Params) build(coords []geometry.Vec3) (*System, error) {
	box := BoxLength(p.NumParticles, p.Density)
	cutoff := p.Cutoff
	if cutoff == 0 {
		cutoff = box / 3
	}
	return New(coords, box, cutoff, p.Temperature)
}

// Random places p.NumParticles particles uniformly in the box, each
// component drawn as (0.5 - u) * L.
func Random(p Params, src Source) (*System, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	box := BoxLength(p.NumParticles, p.Density)
	coords := make([]geometry.Vec3, p.NumParticles)
	for i := range coords {
		for k := 0; k < 3; k++ {
			coords[i][k] = (0.5 - src.Float64()) * box
		}
	}
	return p.build(coords)
}

// FromFile reads coordinates from path. The particle count comes from the
// file; p.NumParticles is ignored.
func FromFile(path string, p Params) (*System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	coords, err := ReadCoordinates(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p.NumParticles = len(coords)
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p.build(coords)
}

// ReadCoordinates parses a plain-text coordinate listing. The first two
// lines are headers. Each following non-blank line holds either "x y z" or
// "label x y z".
func ReadCoordinates(r io.Reader) ([]geometry.Vec3, error) {
	scanner := bufio.NewScanner(r)
	coords := make([]geometry.Vec3, 0)

	line := 0
	for scanner.Scan() {
		line++
		if line <= 2 {
			continue
		}

		fields := strings.Fields(scanner.Text())
		switch len(fields) {
		case 0:
			continue
		case 3:
		case 4:
			fields = fields[1:]
		default:
			return nil, fmt.Errorf("line %d: expected 3 or 4 columns, got %d", line, len(fields))
		}

		var r geometry.Vec3
		for k, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			r[k] = v
		}
		coords = append(coords, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return coords, nil
}
