// Package filter evaluates multi-predicate range filters over numeric columns.
//
// # Kernels
//
//   - Scalar: full-column evaluation, one pass per supplied bound, no
//     short-circuit. This is the reference implementation.
//   - Unrolled: per-record short-circuit scan with 8-way loop unrolling.
//
// Both kernels produce bit-identical masks. Select returns the unrolled
// kernel only when the CPU reports wide vector units (AVX2 on amd64, ASIMD on
// arm64) and falls back to Scalar otherwise.
//
// # Environment Override
//
// Set ADINDEX_FILTER_KERNEL to "scalar" or "unrolled" to force a kernel.
package filter
