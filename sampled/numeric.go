package sampled

import (
	"math"

	"golang.org/x/exp/constraints"
)

// indexLimit bounds the magnitude of computed indices, far outside any
// stored range, so that index arithmetic cannot overflow.
const indexLimit = math.MaxInt / 2

// floorIndex rounds toward negative infinity: floorIndex(-0.5) == -1, not 0.
func floorIndex[X constraints.Float](v X) int {
	return toIndex(math.Floor(float64(v)))
}

// roundIndex rounds to the nearest integer, ties upward, so that the
// rounding is the same on both sides of zero.
func roundIndex[X constraints.Float](v X) int {
	return toIndex(math.Floor(float64(v) + 0.5))
}

// toIndex converts an integral float to an index. NaN maps to -1 and
// out-of-range values saturate at ±indexLimit, since the float to int
// conversion is implementation-defined for them.
func toIndex(v float64) int {
	switch {
	case math.IsNaN(v):
		return -1
	case v >= indexLimit:
		return indexLimit
	case v <= -indexLimit:
		return -indexLimit
	default:
		return int(v)
	}
}

// wrapIndex reduces i into [0, n).
func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// gridPoint is the coordinate of sample i of the phase starting at start.
// Every evaluation and lookup goes through here so that stored values are
// reproducible with the same arithmetic.
func gridPoint[X constraints.Float](start, step X, i int) X {
	return start + X(i)*step
}

func isFinite[X constraints.Float](x X) bool {
	f := float64(x)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
