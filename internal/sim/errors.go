package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a negative step count, frequency or displacement.
	ErrInvalidConfig = errors.New("sim: invalid run configuration")

	// ErrChainDone indicates a Step call after the configured step count.
	ErrChainDone = errors.New("sim: chain already completed")
)

// SimulationError wraps a failure with the step it happened on.
type SimulationError struct {
	Step    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
