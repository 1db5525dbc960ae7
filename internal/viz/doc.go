// Package viz renders a running Monte Carlo chain in the terminal.
//
// [Live] is a Bubble Tea model that advances a [sim.Chain] a batch of steps
// per frame and shows:
//
//   - an asciigraph of the recent reduced energy
//   - the running step, energy, acceptance ratio and maximum displacement
//   - a Braille [Canvas] projection of the particles onto the x-y plane
//
// # Key Bindings
//
//	Space - Pause/Resume the chain
//	+/-   - More/fewer steps per frame
//	Q     - Quit
package viz
