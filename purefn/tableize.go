package purefn

import (
	"fmt"

	"github.com/on-the-ground/sampled_go/sampled"
	"golang.org/x/exp/constraints"
)

// Memoize returns fn backed by a Memo of at most 2*maxTableSize entries.
func Memoize[I comparable, O any](
	pureFn func(I) O,
	maxTableSize uint32,
) func(I) O {
	memo := NewMemo[I, O](maxTableSize)
	return func(i I) O {
		v, ok := memo.Load(i)
		if !ok {
			v = pureFn(i)
			memo.Store(i, v)
		}
		return v
	}
}

// Tableize returns a function answering from grid where the nearest grid
// point is stored, and from a memoized call of pureFn elsewhere.
// pureFn must be the function grid was sampled from.
func Tableize[X constraints.Float, Y any](
	grid *sampled.Function[X, Y],
	pureFn func(X) Y,
	maxTableSize uint32,
) func(X) Y {
	exact := Memoize(pureFn, maxTableSize)
	return func(x X) Y {
		if y, ok := grid.Lookup(x); ok {
			return y
		}
		return exact(x)
	}
}

// TableizeSampled samples pureFn on [lower, upper) with size samples and
// nSubsamples phases, then tableizes it.
func TableizeSampled[X constraints.Float, Y any](
	pureFn func(X) Y,
	lower, upper X,
	size, nSubsamples int,
	maxTableSize uint32,
	opts ...sampled.Option,
) (func(X) Y, error) {
	grid, err := sampled.NewFixedRange(pureFn, lower, upper, size, nSubsamples, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to sample function: %w", err)
	}
	return Tableize(grid, pureFn, maxTableSize), nil
}
