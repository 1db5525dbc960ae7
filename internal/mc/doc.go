// Package mc implements the Metropolis move and the adaptive step-size
// controller for canonical-ensemble (NVT) Monte Carlo.
//
//   - [Sampler]: propose, evaluate and accept or reject one single-particle move
//   - [Accept]: the Metropolis criterion
//   - [Tuner]: scale the maximum displacement toward a target acceptance rate
//
// The sampler is composed from an [EnergyModel] and a [Source] rather than
// owning either, so tests can script the random stream and energies.
//
// # Thread Safety
//
// A Sampler carries no chain state of its own, but its Source usually is
// not safe for concurrent use. Give every chain its own Sampler and Source.
package mc
