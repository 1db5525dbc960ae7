package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkumar097/MonteCarloProject/internal/sim"
	"github.com/mkumar097/MonteCarloProject/internal/system"
)

const (
	DefaultParticles   = 20
	DefaultDensity     = 0.9
	DefaultTemperature = 0.9
	DefaultSeed        = 2019
)

type Config struct {
	System SystemConfig `yaml:"system"`
	Run    RunConfig    `yaml:"run"`
	Seed   int64        `yaml:"seed"`
}

type SystemConfig struct {
	NumParticles int     `yaml:"num_particles"`
	Density      float64 `yaml:"density"`
	Temperature  float64 `yaml:"temperature"`
	// Cutoff of 0 selects a third of the box length.
	Cutoff float64 `yaml:"cutoff,omitempty"`
	// InputFile, when set, replaces random placement; the particle count
	// then comes from the file.
	InputFile string `yaml:"input_file,omitempty"`
}

type RunConfig struct {
	Steps            int     `yaml:"steps"`
	MaxDisplacement  float64 `yaml:"max_displacement"`
	OutputFreq       int     `yaml:"output_freq"`
	TuneDisplacement bool    `yaml:"tune_displacement"`
	TuneFreq         int     `yaml:"tune_freq"`
	// Equilibration is the number of leading steps left out of averages.
	Equilibration int `yaml:"equilibration"`
}

func DefaultConfig() *Config {
	return &Config{
		System: SystemConfig{
			NumParticles: DefaultParticles,
			Density:      DefaultDensity,
			Temperature:  DefaultTemperature,
		},
		Run: RunConfig{
			Steps:           sim.DefaultNumSteps,
			MaxDisplacement: sim.DefaultMaxDisplacement,
			OutputFreq:      sim.DefaultOutputFreq,
			TuneFreq:        sim.DefaultTuneFreq,
		},
		Seed: DefaultSeed,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) SystemParams() system.Params {
	return system.Params{
		NumParticles: c.System.NumParticles,
		Density:      c.System.Density,
		Temperature:  c.System.Temperature,
		Cutoff:       c.System.Cutoff,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		NumSteps:         c.Run.Steps,
		MaxDisplacement:  c.Run.MaxDisplacement,
		OutputFreq:       c.Run.OutputFreq,
		TuneDisplacement: c.Run.TuneDisplacement,
		TuneFreq:         c.Run.TuneFreq,
	}
}
