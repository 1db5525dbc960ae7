package config

import "sort"

// Presets are named fluid state points in reduced LJ units.
var Presets = map[string]*Config{
	"liquid": {
		System: SystemConfig{NumParticles: 100, Density: 0.9, Temperature: 0.9},
		Run:    RunConfig{Steps: 50000, MaxDisplacement: 0.1, OutputFreq: 5000, TuneDisplacement: true, TuneFreq: 500, Equilibration: 10000},
		Seed:   DefaultSeed,
	},
	"gas": {
		System: SystemConfig{NumParticles: 100, Density: 0.05, Temperature: 2.0},
		Run:    RunConfig{Steps: 30000, MaxDisplacement: 1.0, OutputFreq: 5000, TuneDisplacement: true, TuneFreq: 500, Equilibration: 5000},
		Seed:   DefaultSeed,
	},
	"supercritical": {
		System: SystemConfig{NumParticles: 100, Density: 0.5, Temperature: 1.5},
		Run:    RunConfig{Steps: 50000, MaxDisplacement: 0.3, OutputFreq: 5000, TuneDisplacement: true, TuneFreq: 500, Equilibration: 10000},
		Seed:   DefaultSeed,
	},
	"dense": {
		System: SystemConfig{NumParticles: 200, Density: 1.1, Temperature: 1.2},
		Run:    RunConfig{Steps: 100000, MaxDisplacement: 0.05, OutputFreq: 10000, TuneDisplacement: true, TuneFreq: 1000, Equilibration: 20000},
		Seed:   DefaultSeed,
	},
	"quick": {
		System: SystemConfig{NumParticles: 20, Density: 0.9, Temperature: 0.9},
		Run:    RunConfig{Steps: 6000, MaxDisplacement: 0.1, OutputFreq: 1000, TuneFreq: 100},
		Seed:   DefaultSeed,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
