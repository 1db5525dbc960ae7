package experiment

import (
	"fmt"
	"sort"

	"github.com/mkumar097/MonteCarloProject/internal/config"
	"github.com/mkumar097/MonteCarloProject/internal/metrics"
	"github.com/mkumar097/MonteCarloProject/internal/sim"
	"github.com/mkumar097/MonteCarloProject/internal/system"
)

type metricFactory func(cfg *config.Config, sys *system.System) sim.Metric

// Registry maps metric names to constructors that need the run's
// configuration or geometry.
type Registry struct {
	metrics map[string]metricFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]metricFactory),
	}

	r.metrics["mean_energy"] = func(cfg *config.Config, sys *system.System) sim.Metric {
		return metrics.NewMeanEnergy(cfg.Run.Equilibration)
	}
	r.metrics["energy_range"] = func(cfg *config.Config, sys *system.System) sim.Metric {
		return metrics.NewEnergyRange()
	}
	r.metrics["acceptance_ratio"] = func(cfg *config.Config, sys *system.System) sim.Metric {
		return metrics.NewAcceptance()
	}
	r.metrics["mean_step"] = func(cfg *config.Config, sys *system.System) sim.Metric {
		return metrics.NewMeanStep(sys.BoxLength)
	}

	return r
}

func (r *Registry) GetMetric(name string, cfg *config.Config, sys *system.System) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg, sys), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns one instance of every registered metric.
func (r *Registry) DefaultMetrics(cfg *config.Config, sys *system.System) []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](cfg, sys))
	}
	return out
}
