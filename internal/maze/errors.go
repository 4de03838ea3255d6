package maze

import "errors"

var (
	// ErrInvalidConfig reports a generation parameter that can never produce
	// a valid maze. It is returned before any state is built or mutated.
	ErrInvalidConfig = errors.New("invalid maze configuration")

	// ErrInconsistent reports a broken grid invariant, such as a carved grid
	// that does not connect every cell.
	ErrInconsistent = errors.New("inconsistent maze")
)
