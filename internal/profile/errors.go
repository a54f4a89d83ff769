package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySeries means there are fewer stations than the operation requires
	ErrEmptySeries = errors.New("empty series")

	// ErrInvalidBound means x1 <= x0 or a band with low > high
	ErrInvalidBound = errors.New("invalid bound")

	// ErrOutOfRange is returned under the Skip policy when a horizontal limit
	// lies outside the surveyed range
	ErrOutOfRange = errors.New("bound outside surveyed range")

	// ErrNoOverlap means two profiles share no horizontal range
	ErrNoOverlap = fmt.Errorf("%w: profiles do not overlap", ErrEmptySeries)
)
