// Package sampled precomputes a real function of one variable on a uniform
// grid so that it can be read back later without calling it again.
//
// A Function holds nSubsamples interleaved grids ("subsamples" or phases).
// Phase k starts at lower + k*substep and advances by step, where
//
//	substep = step / nSubsamples
//
// so that, taken together, the phases cover the domain with spacing substep
// while each phase alone is a plain grid with spacing step:
//
//	phase 0: x0        x0+step        x0+2*step ...
//	phase 1:   x0+sub    x0+sub+step    ...
//	phase 2:     x0+2sub   ...
//
// Two constructors decide the grid:
//
//   - NewFixedRange samples [lower, upper) with an explicit sample count.
//   - NewExtendedRange starts at lower with a given step and keeps extending
//     the domain until a stop predicate fires, but never before the domain
//     reaches a minimum upper bound (atLeast).
//
// Lookups are nearest-grid-point, not interpolated. The query surface is not
// bounds-checked: StepIndex (or ClosestGridPoint) and IsValidStepIndex are the
// way to validate a coordinate before calling Value. NaN and infinite
// coordinates are always out of range.
//
// A built Function is never mutated, so it can be shared freely between
// goroutines for reading.
//
// WARNING: the source function is evaluated sequentially during construction
// and is assumed to be pure. Do not sample functions whose result depends on
// call order or time.
package sampled
