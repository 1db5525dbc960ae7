package experiment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkumar097/MonteCarloProject/internal/config"
	"github.com/mkumar097/MonteCarloProject/internal/system"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func quickConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Run.Steps = 500
	cfg.Run.Equilibration = 100
	return cfg
}

func TestExperiment_RunWithDefaultMetrics(t *testing.T) {
	e := New(quickConfig())
	require.NoError(t, e.Setup(NewRegistry()))

	result, err := e.Run(context.Background())
	require.NoError(t, err)

	assert.Len(t, result.Trajectory, 500)
	for _, name := range NewRegistry().ListMetrics() {
		assert.Contains(t, result.Metrics, name)
	}
	assert.InDelta(t, result.AcceptanceRatio(), result.Metrics["acceptance_ratio"], 1e-12)
	assert.Equal(t, 20, e.System().N())
}

func TestExperiment_SelectedMetrics(t *testing.T) {
	e := New(quickConfig())
	require.NoError(t, e.Setup(NewRegistry(), "mean_energy"))

	result, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Metrics, 1)

	var sum float64
	for _, v := range result.Trajectory[100:] {
		sum += v
	}
	assert.InDelta(t, sum/400, result.Metrics["mean_energy"], 1e-9)
}

func TestExperiment_UnknownMetric(t *testing.T) {
	e := New(quickConfig())
	err := e.Setup(NewRegistry(), "pressure")
	assert.ErrorContains(t, err, "unknown metric")
}

func TestExperiment_NotSetup(t *testing.T) {
	_, err := New(quickConfig()).Run(context.Background())
	assert.Error(t, err)
}

func TestExperiment_SeedDeterminesRun(t *testing.T) {
	run := func(seed int64, steps int) []float64 {
		cfg := quickConfig()
		cfg.Seed = seed
		cfg.Run.Steps = steps
		e := New(cfg)
		require.NoError(t, e.Setup(nil))
		result, err := e.Run(context.Background())
		require.NoError(t, err)
		return result.Trajectory
	}

	a, b := run(11, 300), run(11, 300)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, run(12, 300))

	// the sampler stream does not depend on the run length
	assert.Equal(t, a[:100], run(11, 100))
}

func TestExperiment_PlacementIndependentOfSteps(t *testing.T) {
	build := func(steps int) *system.System {
		cfg := quickConfig()
		cfg.Run.Steps = steps
		e := New(cfg)
		require.NoError(t, e.Setup(nil))
		return e.System()
	}
	assert.Equal(t, build(10).Coords, build(5000).Coords)
}

func TestExperiment_InputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "start.txt")
	data := "box 6.0\nparticles 3\n0.0 0.0 0.0\n1.2 0.0 0.0\nAr 0.0 1.3 0.0\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg := quickConfig()
	cfg.System.InputFile = path
	cfg.System.NumParticles = 50

	e := New(cfg)
	require.NoError(t, e.Setup(nil))
	assert.Equal(t, 3, e.System().N())
}

func TestExperiment_InvalidSystem(t *testing.T) {
	cfg := quickConfig()
	cfg.System.Temperature = 0

	err := New(cfg).Setup(nil)
	assert.ErrorIs(t, err, system.ErrInvalidParameter)
}
