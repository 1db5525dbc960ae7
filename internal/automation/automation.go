// Package automation runs scripted sequences of independent chains: YAML
// scenarios and one-parameter sweeps over the state point. Chains run one
// after another.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mkumar097/MonteCarloProject/internal/analysis"
	"github.com/mkumar097/MonteCarloProject/internal/config"
	"github.com/mkumar097/MonteCarloProject/internal/experiment"
	"github.com/mkumar097/MonteCarloProject/internal/sim"
	"github.com/mkumar097/MonteCarloProject/internal/storage"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and applies Config on
// top. Only the keys present in Config change.
type ScenarioStep struct {
	Name   string    `yaml:"name"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
}

// Outcome is the result of one scenario step.
type Outcome struct {
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the run configuration of the step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if !s.Config.IsZero() {
		if err := s.Config.Decode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order. With a non-nil store every
// finished run is saved under the step name.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("%s_%d", scenario.Name, i+1)
		}
		logrus.Infof("running step %d/%d: %s", i+1, len(scenario.Steps), name)

		cfg, err := step.Resolve()
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(experiment.NewRegistry()); err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := Outcome{Name: name, Result: result}
		if st != nil {
			out.RunID, err = st.Save(name, cfg, exp.System(), result)
			if err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// Sweep varies one state-point parameter over an evenly spaced range.
type Sweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumPoints int
	// Blocks is the block count for the error bar of each point.
	Blocks int
}

// SweepResult holds the equilibrium averages at one parameter value.
type SweepResult struct {
	ParamValue      float64
	MeanEnergy      float64
	StdErr          float64
	AcceptanceRatio float64
	MaxDisplacement float64
}

func applyParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "temperature":
		cfg.System.Temperature = v
	case "density":
		cfg.System.Density = v
	case "max_displacement":
		cfg.Run.MaxDisplacement = v
	default:
		return fmt.Errorf("unknown sweep parameter: %s", name)
	}
	return nil
}

// RunSweep executes one chain per parameter value. Every chain uses the base
// seed, so points differ only through the parameter.
func RunSweep(ctx context.Context, sweep *Sweep) ([]SweepResult, error) {
	if sweep.NumPoints < 1 {
		return nil, fmt.Errorf("sweep needs at least one point, got %d", sweep.NumPoints)
	}
	blocks := sweep.Blocks
	if blocks < 2 {
		blocks = 10
	}

	paramStep := 0.0
	if sweep.NumPoints > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumPoints-1)
	}

	results := make([]SweepResult, 0, sweep.NumPoints)
	for i := 0; i < sweep.NumPoints; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *sweep.Base
		if err := applyParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(&cfg)
		if err := exp.Setup(nil); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		summary, err := analysis.Summarize(result.Trajectory, cfg.Run.Equilibration, blocks)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue:      paramVal,
			MeanEnergy:      summary.Mean,
			StdErr:          summary.StdErr,
			AcceptanceRatio: result.AcceptanceRatio(),
			MaxDisplacement: result.Displacement.Max,
		})

		logrus.Infof("sweep %d/%d: %s=%.4f mean energy %.5f", i+1, sweep.NumPoints, sweep.ParamName, paramVal, summary.Mean)
	}

	return results, nil
}
