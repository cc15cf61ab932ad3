// Package testutil provides testing utilities for adindex.
//
// This package is intended for use in tests and benchmarks only.
// It provides a deterministic RNG, synthetic ad rows, random filter bounds
// and brute-force oracles for range queries and filters.
//
// # Synthetic Rows
//
//	rng := testutil.NewRNG(42)
//	rows := rng.Rows(10_000)          // realistic motorcycle ads
//	rows = rng.SparseRows(1_000, 0.2) // 20% of numeric fields missing (zero)
//
// # Ground Truth
//
//	want := testutil.BruteForceRange(rows, model.Price, lo, hi)
//	mask := testutil.BruteForceMask(rows, bounds)
package testutil
