// Package columnar stores a batch of rows as typed parallel columns and builds
// the derived lookup structures over them.
//
// # Structures
//
//   - Columns: one slice per field, aligned by ordinal
//   - Hash index: url → ordinal, last write wins on duplicate urls
//   - Prefix tree: radix tree over urls for prefix scans
//   - Sorted views: per dimension, a stable permutation of ordinals sorted by
//     value plus the values in that order (binary search touches only values)
//   - Packed words: one bitpack.Word per ordinal
//
// An Index is immutable after Build and safe for concurrent readers.
package columnar
