// Package numeric implements the engine's signed 32-bit arithmetic
// domain (spec.md §3, §9): every Number is an int32, and arithmetic that
// would overflow saturates to the domain boundary instead of wrapping.
// Narrowing conversions go through fortio.org/safecast, the teacher
// compiler's own narrowing-conversion library, the way surge's
// FileSet.Add narrows a slice length to uint32.
package numeric

import (
	"math"

	"fortio.org/safecast"
)

// FromInt64 saturates v to the int32 range.
func FromInt64(v int64) int32 {
	r, err := safecast.Conv[int32](v)
	if err == nil {
		return r
	}
	if v > 0 {
		return math.MaxInt32
	}
	return math.MinInt32
}

// FromFloat truncates f toward zero (spec.md §4.6's "standard
// IEEE→int conversion") and saturates the result to the int32 range.
func FromFloat(f float64) int32 {
	if math.IsNaN(f) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return FromInt64(int64(f))
}

// Add returns a+b, saturated to int32.
func Add(a, b int32) int32 { return FromInt64(int64(a) + int64(b)) }

// Sub returns a-b, saturated to int32.
func Sub(a, b int32) int32 { return FromInt64(int64(a) - int64(b)) }

// Mul returns a*b, saturated to int32.
func Mul(a, b int32) int32 { return FromInt64(int64(a) * int64(b)) }

// Neg returns -a, saturated to int32 (handles a == MinInt32).
func Neg(a int32) int32 { return Sub(0, a) }

// TruncDiv performs truncating division ("/", spec.md §4.1 operator
// table): the quotient rounds toward zero.
func TruncDiv(a, b int32) int32 { return a / b }

// FloorDiv performs floored division ("//"): the quotient rounds toward
// negative infinity.
func FloorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Mod returns a%b using Go's truncated-remainder semantics, matching the
// engine's "%" operator.
func Mod(a, b int32) int32 { return a % b }

// Abs returns the absolute value of v, saturated to int32 (handles
// v == MinInt32).
func Abs(v int32) int32 {
	if v < 0 {
		return Neg(v)
	}
	return v
}

// Clamp returns v clamped to [lo, hi].
func Clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
