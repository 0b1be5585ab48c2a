// Package precision implements epsilon-tolerant comparisons for the
// matching engine's price/quantity arithmetic. Binary floating point with a
// 1e-9 tolerance is deliberately chosen over fixed-point integer scaling
// (spec's documented alternative) to match the engine's ground-truth
// scenarios byte-for-byte; every comparison funnels through here so the
// tolerance is a single tunable, not a constant scattered across the book.
package precision

import "math"

// Epsilon is the default tolerance for equality and crossing decisions.
// 1e-9 sits ten times finer than Bitcoin's smallest unit (1e-8), so dust
// from satoshi-scale fills never lingers on the book. Adjacent float64
// values are closer together than Epsilon only below 2^23 (about 8.4e6);
// above that the spacing exceeds Epsilon.
const Epsilon = 1e-9

// IsEqual reports whether a and b are within Epsilon of each other.
func IsEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// IsZero reports whether v is within Epsilon of zero.
func IsZero(v float64) bool {
	return math.Abs(v) < Epsilon
}

// IsPositive reports whether v is at least one Epsilon above zero.
func IsPositive(v float64) bool {
	return v >= Epsilon
}

// IsLess reports whether a is strictly less than b by more than Epsilon.
func IsLess(a, b float64) bool {
	return a < b-Epsilon
}

// IsGreater reports whether a is strictly greater than b by more than
// Epsilon.
func IsGreater(a, b float64) bool {
	return a > b+Epsilon
}

// SubtractOrZero computes target-subtrahend and snaps the result to exactly
// 0 if it would otherwise leave a remainder smaller than Epsilon. This is
// what keeps a maker that's been "fully filled" from lingering on the book
// as a dust order with a technically-positive remaining quantity.
func SubtractOrZero(target, subtrahend float64) float64 {
	result := target - subtrahend
	if result < Epsilon {
		return 0
	}
	return result
}
