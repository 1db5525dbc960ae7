// Package energy evaluates the reduced Lennard-Jones energy of a periodic
// particle configuration.
//
//   - [LennardJones]: pair potential 4(r^-12 - r^-6)
//   - [TailCorrection]: analytic long-range correction beyond the cutoff
//   - [Engine.Total]: O(N²) full-system pair energy, each pair counted once
//   - [Engine.Single]: O(N) energy of one particle against all others
//
// # Counting Convention
//
// Total counts every unordered pair once; Single counts every pair that
// involves particle i once from i's perspective. Summing Single over all
// particles therefore counts each pair twice:
//
//	total == 0.5 * Σ_i Single(i)
//
// The Metropolis loop relies on this: the difference of two Single values
// for the moved particle is exactly the change in Total.
package energy
