// Package sim drives a Metropolis Monte Carlo chain for a Lennard-Jones
// fluid.
//
// A [Simulator] pairs a read-only [system.System] with a random source and a
// [Config]. Each run owns its own mutable [Chain]: a private copy of the
// coordinates, the running pair energy, the tail correction and the
// displacement counters.
//
//	sys, _ := system.Random(params, placementRNG)
//	s, _ := sim.New(sys, samplerRNG, sim.DefaultConfig())
//	s.SetReporter(sim.NewLogReporter(logrus.StandardLogger()))
//	result, _ := s.Run(ctx)
//
// The full O(N²) energy is evaluated once when a chain starts; every step
// after that costs two O(N) single-particle evaluations. The running energy
// is cross-checked against a fresh O(N²) sum when the chain finishes and the
// difference is reported as [Result.EnergyDrift].
//
// # Thread Safety
//
// Simulator and Chain instances are NOT thread-safe. Independent chains need
// independent Simulators, systems and sources; this package does not
// schedule them.
package sim
