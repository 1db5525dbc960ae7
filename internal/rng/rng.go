// Package rng derives isolated, reproducible random streams from one seed.
package rng

import (
	"hash/fnv"
	"math/rand"
)

const (
	// SubsystemPlacement seeds the initial random particle placement.
	// Uses the master seed directly so a seed alone reproduces a starting
	// configuration.
	SubsystemPlacement = "placement"

	// SubsystemSampler drives particle selection, trial displacements and
	// the Metropolis acceptance draws.
	SubsystemSampler = "sampler"
)

// PartitionedRNG hands out one deterministically seeded *rand.Rand per named
// subsystem, so drawing from one never shifts the sequence of another.
//
// Derivation formula:
//   - SubsystemPlacement: master seed
//   - any other name: master seed XOR fnv1a64(name)
//
// Not thread-safe. Independent chains each need their own PartitionedRNG.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

func New(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the cached generator for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if r, ok := p.subsystems[name]; ok {
		return r
	}

	derived := p.seed
	if name != SubsystemPlacement {
		derived = p.seed ^ fnv1a64(name)
	}

	r := rand.New(rand.NewSource(derived))
	p.subsystems[name] = r
	return r
}

func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
