// Package geometry provides vector arithmetic and periodic-boundary helpers
// for particles in a cubic simulation box.
//
// All positions are [Vec3] values in reduced units. The box is centred on the
// origin, so a wrapped coordinate lies in [-L/2, L/2):
//
//   - [MinimumImage]: fold a separation vector onto its nearest periodic image
//   - [MinimumImageDistance]: length of the folded separation
//   - [Wrap]: fold a position back into the primary cell
//
// # Preconditions
//
// The minimum-image convention only yields the true shortest separation for
// interactions when the cutoff is below half the box length. Callers own
// that check; nothing here enforces it.
package geometry
