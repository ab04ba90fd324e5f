package sampled

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Function is a table of precomputed values of a function of X, indexed by
// sample index and subsample (phase) index.
//
// The zero value is an empty table. Use NewFixedRange or NewExtendedRange.
type Function[X constraints.Float, Y any] struct {
	lower   X
	upper   X
	step    X
	substep X

	nSubsamples int
	size        int

	// samples[k][i] = f(lower + k*substep + i*step)
	samples [][]Y
}

// newFunction evaluates fn on every (sample, phase) pair of the grid.
// Evaluation is sequential, phase by phase, in increasing x.
func newFunction[X constraints.Float, Y any](
	fn func(X) Y,
	lower, upper, step X,
	size, nSubsamples int,
) *Function[X, Y] {
	f := &Function[X, Y]{
		lower:       lower,
		upper:       upper,
		step:        step,
		substep:     step / X(nSubsamples),
		nSubsamples: nSubsamples,
		size:        size,
		samples:     make([][]Y, nSubsamples),
	}
	for k := range f.samples {
		start := f.SubsampleStart(k)
		values := make([]Y, size)
		for i := range values {
			values[i] = fn(gridPoint(start, step, i))
		}
		f.samples[k] = values
	}
	return f
}

// Size returns the number of samples in each subsample.
func (f *Function[X, Y]) Size() int { return f.size }

// NSubsamples returns the number of phases.
func (f *Function[X, Y]) NSubsamples() int { return f.nSubsamples }

// Lower returns the first sampled coordinate.
func (f *Function[X, Y]) Lower() X { return f.lower }

// Upper returns the exclusive end of the domain.
func (f *Function[X, Y]) Upper() X { return f.upper }

// RangeSize returns Upper() - Lower().
func (f *Function[X, Y]) RangeSize() X { return f.upper - f.lower }

// StepSize returns the distance between consecutive samples of one phase.
func (f *Function[X, Y]) StepSize() X { return f.step }

// SubstepSize returns the distance between adjacent phases.
func (f *Function[X, Y]) SubstepSize() X { return f.substep }

// SubsampleStart returns the coordinate of sample 0 of phase k.
func (f *Function[X, Y]) SubsampleStart(k int) X {
	return f.lower + X(k)*f.substep
}

// Subsample returns the values of phase k in increasing x order.
// The slice is shared with f and must not be modified.
// k must be in [0, NSubsamples()).
func (f *Function[X, Y]) Subsample(k int) []Y {
	return f.samples[k]
}

// Value returns the value of sample i of phase k.
// No bounds check is performed beyond the runtime one; validate i with
// IsValidStepIndex when it comes from StepIndex.
func (f *Function[X, Y]) Value(i, k int) Y {
	return f.samples[k][i]
}

// StepIndex returns the index of the sample of phase k at or below x,
// floor((x - SubsampleStart(k)) / StepSize()).
// The result is outside [0, Size()) when x is outside the domain.
func (f *Function[X, Y]) StepIndex(x X, k int) int {
	if f.size == 0 {
		return -1
	}
	return floorIndex((x - f.SubsampleStart(k)) / f.step)
}

// IsValidStepIndex reports whether i addresses a stored sample.
func (f *Function[X, Y]) IsValidStepIndex(i int) bool {
	return i >= 0 && i < f.size
}

// ClosestSubsampleIndex returns the phase having a grid point nearest to x.
// It rounds rather than floors as StepIndex does: from half a substep past
// a grid point onwards the next phase wins, and past the last phase the
// result wraps to phase 0 (of the next sample).
func (f *Function[X, Y]) ClosestSubsampleIndex(x X) int {
	_, k := f.ClosestGridPoint(x)
	return k
}

// ClosestGridPoint returns the sample index i and phase k of the grid point
// nearest to x over all phases, so that Value(i, k) is what Lookup(x)
// returns. i is outside [0, Size()) when that grid point is not stored.
//
// i may differ from StepIndex(x, k) when the nearest grid point lies above x.
func (f *Function[X, Y]) ClosestGridPoint(x X) (i, k int) {
	if f.size == 0 {
		return -1, 0
	}
	j := f.latticeIndex(x)
	k = wrapIndex(j, f.nSubsamples)
	return (j - k) / f.nSubsamples, k
}

// latticeIndex is the index of the grid point nearest to x on the merged
// lattice of all phases, which has spacing substep.
func (f *Function[X, Y]) latticeIndex(x X) int {
	return roundIndex((x - f.lower) / f.substep)
}

// Lookup returns the stored value at the grid point nearest to x over all
// phases. It returns false if that grid point is not stored.
func (f *Function[X, Y]) Lookup(x X) (Y, bool) {
	i, k := f.ClosestGridPoint(x)
	if !f.IsValidStepIndex(i) {
		var zero Y
		return zero, false
	}
	return f.samples[k][i], true
}

// Clone returns a deep copy of f.
func (f *Function[X, Y]) Clone() *Function[X, Y] {
	c := *f
	c.samples = make([][]Y, len(f.samples))
	for k, values := range f.samples {
		c.samples[k] = append([]Y(nil), values...)
	}
	return &c
}

func (f *Function[X, Y]) String() string {
	return fmt.Sprintf("sampled[%v, %v) step=%v x%d subsamples (substep=%v), %d samples",
		f.lower, f.upper, f.step, f.nSubsamples, f.substep, f.size)
}
