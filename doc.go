// Package adindex provides an in-memory columnar index over classified-ad
// records.
//
// An Index is built once from a batch of rows and is immutable afterwards.
// It keeps typed columns, a url hash index, a url prefix tree, one sorted
// permutation per numeric dimension (price, year, mileage) and a bit-packed
// metadata word per record.
//
// # Quick Start
//
//	rows, _ := rowio.DecodeFile(ctx, "ads.json", codec.Default)
//	ix := adindex.New(rows, adindex.WithLogLevel(slog.LevelInfo))
//
//	ord, ok := ix.Lookup("https://divar.ir/v/abc")
//	cheap := ix.PriceRange(10_000_000, 50_000_000)
//
//	b := model.Bounds{}.MinPrice(40_000_000).MaxYear(1399)
//	mask := ix.Filter(b)
//	records, _ := ix.ToRecords(mask.Ordinals())
//
// # Query Plans
//
// Filter evaluates bounds with a vectorized kernel over the numeric columns.
// FilterIndexed answers the same predicate by intersecting range bitmaps
// from the sorted indices. ParallelFilter splits the columns into chunks and
// evaluates them on a call-scoped worker pool:
//
//	mask, err := ix.ParallelFilter(ctx, b, adindex.ParallelOptions{
//	    Mode:        adindex.ModeIsolated,
//	    Workers:     8,
//	    Compression: adindex.CompressionLZ4,
//	})
//
// All three plans return identical masks.
//
// # Kernels
//
// The accelerated kernel is used when the CPU reports wide vector units. Set
// ADINDEX_FILTER_KERNEL=scalar or ADINDEX_FILTER_KERNEL=unrolled to force a
// kernel, or pass WithAcceleration(false).
package adindex
