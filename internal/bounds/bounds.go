// Package bounds provides overflow-checked arithmetic on unsigned address
// quantities.
package bounds

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow uint64.
func AddOverflowSafe(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// SubOverflowSafe subtracts b from a, returning ok = false when the result would go below zero.
func SubOverflowSafe(a, b uint64) (uint64, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow uint64.
// Used for page count * page size calculations.
func MulOverflowSafe(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}
