// Package bounds provides overflow-safe arithmetic and index checks shared by
// the storage packages.
package bounds

import (
	"fmt"
	"math"
)

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// Used for segments * capacity style totals.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// Clamp returns v limited to the closed interval [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CheckIndex validates that i is a valid index into a sequence of length n.
// The returned error names what was being indexed:
//
//	if err := bounds.CheckIndex("segment", seg, len(segments)); err != nil {
//	    return fmt.Errorf("%w: %w", ErrInvalidHandle, err)
//	}
func CheckIndex(what string, i, n int) error {
	if i < 0 {
		return fmt.Errorf("negative %s index: %d", what, i)
	}
	if i >= n {
		return fmt.Errorf("%s index out of range: %d >= %d", what, i, n)
	}
	return nil
}
