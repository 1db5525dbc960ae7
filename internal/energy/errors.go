package energy

import (
	"errors"
	"fmt"
)

// ErrCoincidentParticles indicates two particles at zero separation, where
// the pair potential is undefined.
var ErrCoincidentParticles = errors.New("energy: coincident particles (zero separation)")

// PairError wraps an error with the indices of the offending pair.
type PairError struct {
	I, J    int
	Wrapped error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("particles %d and %d: %v", e.I, e.J, e.Wrapped)
}

func (e *PairError) Unwrap() error {
	return e.Wrapped
}
