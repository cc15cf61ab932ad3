// Package bench measures index build and query performance over synthetic
// ad batches and writes the results as a report for external plotting.
//
// Run produces one Result per size. RunCompare additionally times a naive
// linear scan over the rows for each range query. Report field names are
// stable:
//
//	size, build_ms, price_query_ms, year_query_ms, mileage_query_ms,
//	mem_current, mem_peak
//
// and, in compare mode,
//
//	size, optimized_build_ms, optimized_{price,year,mileage}_query_ms,
//	naive_{price,year,mileage}_query_ms
//
// The run aborts on the first failing size instead of emitting a partial
// series.
package bench
