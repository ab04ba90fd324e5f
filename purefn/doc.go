// Package purefn turns pure functions into tables.
//
// Tableizing is not just a way to add a cache. It *forces the developer to
// ask*:
//
//	→ "Is this function really pure?"
//	→ "Can this computation be read from a table instead?"
//
// Two kinds of table are provided:
//
//   - Memoize remembers exact results by input value in a bounded Memo,
//     a dual-generation map that drops the oldest generation when full.
//   - Tableize and TableizeSampled answer from a sampled.Function grid:
//     inside the sampled domain the result is the value at the nearest grid
//     point, with no call to the sampled function; outside it the call
//     falls back to a memoized exact evaluation.
//
// This package embodies the idea that:
//
//	> If a function is pure, it should be readable like a mathematical table.
//
// See tableize_test.go and tableize_bench_test.go for usage and benchmarks.
//
// WARNING: Do not tableize impure functions (e.g., those depending on time,
// I/O, or mutable state). A grid-backed table also trades accuracy for speed:
// only use it where nearest-grid-point values are good enough.
package purefn
