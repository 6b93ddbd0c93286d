package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandle indicates a handle outside the pool's storage or one whose
	// stored identity does not match.
	ErrInvalidHandle = errors.New("pool: invalid handle")

	// ErrNotActive indicates a handle to a slot that has already been released.
	// It wraps ErrInvalidHandle.
	ErrNotActive = fmt.Errorf("%w: slot not active", ErrInvalidHandle)

	// ErrExhausted indicates the 16-bit segment index space is used up. Acquire
	// panics with this error; it is not recoverable.
	ErrExhausted = errors.New("pool: handle space exhausted")

	// ErrCorrupt is returned by Validate when an internal invariant does not hold.
	ErrCorrupt = errors.New("pool: invariant violated")
)
