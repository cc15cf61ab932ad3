// Package model defines the core types shared by adindex packages.
//
// # Identity Types
//
//   - Ordinal: zero-based, stable position of a record within an index (uint32)
//   - Dimension: a numeric column with a sorted range index (price, year, mileage)
//
// # Data Types
//
//   - Row: an ingested classified-ad record
//   - Bounds: up to six optional inclusive bounds used by filters
//   - Mask: one boolean per ordinal, true when the record satisfies the bounds
//
// # Bounds Builder
//
// Bounds are values; every setter returns a modified copy:
//
//	b := model.Bounds{}.
//	    MinPrice(40_000_000).
//	    MaxYear(1395)
package model
