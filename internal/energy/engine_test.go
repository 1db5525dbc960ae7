package energy

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkumar097/MonteCarloProject/internal/geometry"
)

var rMin = math.Pow(2, 1.0/6.0)

func TestLennardJones(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		want float64
	}{
		{"minimum", rMin, -1.0},
		{"zero crossing", 1.0, 0.0},
		{"repulsive", 0.9, 4 * (math.Pow(0.9, -12) - math.Pow(0.9, -6))},
		{"attractive tail", 2.5, 4 * (math.Pow(2.5, -12) - math.Pow(2.5, -6))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LennardJones(tt.r), 1e-9)
		})
	}
}

func TestTailCorrection(t *testing.T) {
	n := 100
	volume := 1000.0
	cutoff := 3.0

	want := (8 * math.Pi * float64(n*n)) / (3 * volume) * (math.Pow(cutoff, -9)/3 - math.Pow(cutoff, -3))
	got := TailCorrection(n, volume, cutoff)

	assert.InDelta(t, want, got, 1e-12)
	assert.Less(t, got, 0.0, "tail correction is attractive for rc > 1")
}

func TestEngine_TwoParticlesAtMinimum(t *testing.T) {
	e := NewEngine(10, 3)
	coords := []geometry.Vec3{{0, 0, 0}, {rMin, 0, 0}}

	total, err := e.Total(coords)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, total, 1e-9)
}

func TestEngine_PairAcrossBoundary(t *testing.T) {
	e := NewEngine(10, 3)
	coords := []geometry.Vec3{{-4.9, 0, 0}, {4.9 - (rMin - 0.2), 0, 0}}

	total, err := e.Total(coords)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, total, 1e-9)
}

func TestEngine_CutoffExcludesPair(t *testing.T) {
	e := NewEngine(10, 3)
	coords := []geometry.Vec3{{0, 0, 0}, {3, 0, 0}, {0, 3.5, 0}}

	total, err := e.Total(coords)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	single, err := e.Single(0, coords)
	require.NoError(t, err)
	assert.Equal(t, 0.0, single)
}

func TestEngine_TotalMatchesHalfSumOfSingles(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const (
		n   = 40
		box = 4.0
	)
	coords := make([]geometry.Vec3, n)
	for i := range coords {
		coords[i] = geometry.Vec3{
			(0.5 - rng.Float64()) * box,
			(0.5 - rng.Float64()) * box,
			(0.5 - rng.Float64()) * box,
		}
	}
	e := NewEngine(box, box/3)

	total, err := e.Total(coords)
	require.NoError(t, err)

	sum := 0.0
	for i := range coords {
		s, err := e.Single(i, coords)
		require.NoError(t, err)
		sum += s
	}

	assert.InDelta(t, total, 0.5*sum, 1e-8*math.Max(1, math.Abs(total)))
}

func TestEngine_ParticleEnergyAtTrialPosition(t *testing.T) {
	e := NewEngine(10, 3)
	coords := []geometry.Vec3{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}}
	trial := geometry.Vec3{1, 1, 1}

	got, err := e.ParticleEnergy(0, trial, coords)
	require.NoError(t, err)

	moved := geometry.Clone(coords)
	moved[0] = trial
	want, err := e.Single(0, moved)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, geometry.Vec3{0, 0, 0}, coords[0], "configuration must not change")
}

func TestEngine_CoincidentParticles(t *testing.T) {
	e := NewEngine(10, 3)
	coords := []geometry.Vec3{{1, 1, 1}, {2, 2, 2}, {1, 1, 1}}

	_, err := e.Total(coords)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCoincidentParticles))

	var pe *PairError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.I)
	assert.Equal(t, 0, pe.J)

	_, err = e.Single(0, coords)
	assert.ErrorIs(t, err, ErrCoincidentParticles)

	// a periodic image counts as coincident too
	_, err = e.ParticleEnergy(1, geometry.Vec3{11, 1, 1}, coords)
	assert.ErrorIs(t, err, ErrCoincidentParticles)
}

func BenchmarkEngine_Total(b *testing.B) {
	coords, e := benchSystem(256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Total(coords)
	}
}

func BenchmarkEngine_Single(b *testing.B) {
	coords, e := benchSystem(256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Single(i%len(coords), coords)
	}
}

func benchSystem(n int) ([]geometry.Vec3, *Engine) {
	rng := rand.New(rand.NewSource(1))
	box := math.Cbrt(float64(n) / 0.9)
	coords := make([]geometry.Vec3, n)
	for i := range coords {
		coords[i] = geometry.Vec3{
			(0.5 - rng.Float64()) * box,
			(0.5 - rng.Float64()) * box,
			(0.5 - rng.Float64()) * box,
		}
	}
	return coords, NewEngine(box, box/3)
}
