package adindex

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/adindex/internal/bitpack"
	"github.com/hupe1980/adindex/internal/columnar"
	"github.com/hupe1980/adindex/internal/filter"
	"github.com/hupe1980/adindex/internal/parallel"
	"github.com/hupe1980/adindex/model"
)

// Mode selects how ParallelFilter dispatches chunks.
type Mode = parallel.Mode

const (
	// ModeThread evaluates chunks on goroutines sharing the column memory.
	ModeThread = parallel.ModeThread
	// ModeIsolated hands each chunk to a worker as a self-contained frame.
	ModeIsolated = parallel.ModeIsolated
)

// Compression selects the frame compression of ModeIsolated.
type Compression = parallel.Compression

const (
	CompressionNone = parallel.CompressionNone
	CompressionLZ4  = parallel.CompressionLZ4
	CompressionZstd = parallel.CompressionZstd
)

// DefaultWorkers is the worker count used when ParallelOptions.Workers <= 0.
const DefaultWorkers = parallel.DefaultWorkers

// ParseMode parses "thread", "isolated" or its alias "process".
func ParseMode(s string) (Mode, error) { return parallel.ParseMode(s) }

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) { return parallel.ParseCompression(s) }

// ParallelOptions configures a ParallelFilter call.
type ParallelOptions struct {
	Mode        Mode
	Workers     int
	Compression Compression
}

// Meta is the unpacked metadata word of a record.
type Meta = bitpack.Meta

// Pack encodes (price, year, flag) into a metadata word.
//
// Layout, LSB first: 2 bits flag, 32 bits price, 16 bits year, 14 reserved
// bits that are always zero. Negative price and year are floored at zero;
// wider values wrap.
func Pack(price, year, flag int64) uint64 {
	return uint64(bitpack.Pack(price, year, flag))
}

// Unpack extracts (price, year, flag) from a metadata word.
func Unpack(w uint64) (price, year, flag int64) {
	return bitpack.Unpack(bitpack.Word(w))
}

// Index is an immutable in-memory index over a batch of rows.
// It is safe for concurrent use.
type Index struct {
	ix      *columnar.Index
	logger  *Logger
	metrics MetricsCollector
	opts    options
}

// New builds an Index from rows. Ordinals follow input order; duplicate
// urls resolve to the last occurrence. Construction never fails.
func New(rows []model.Row, optFns ...Option) *Index {
	o := applyOptions(optFns)

	start := time.Now()
	ix := columnar.Build(rows)
	elapsed := time.Since(start)

	o.metricsCollector.RecordBuild(ix.Len(), elapsed)
	o.logger.LogBuild(context.Background(), ix.Len(), elapsed)

	return &Index{
		ix:      ix,
		logger:  o.logger,
		metrics: o.metricsCollector,
		opts:    o,
	}
}

// Len returns the number of records.
func (x *Index) Len() int {
	return x.ix.Len()
}

// Lookup returns the ordinal of the record with the given url.
func (x *Index) Lookup(url string) (model.Ordinal, bool) {
	start := time.Now()
	o, ok := x.ix.Lookup(url)
	x.metrics.RecordLookup(ok, time.Since(start))
	return o, ok
}

// LookupPrefix returns the ordinals of all records whose url starts with
// prefix, in ascending ordinal order.
func (x *Index) LookupPrefix(prefix string) []model.Ordinal {
	return x.ix.LookupPrefix(prefix)
}

// RangeQuery returns the ordinals whose value on d lies in [lo, hi], ordered
// by value and then by ordinal. lo > hi yields an empty result.
func (x *Index) RangeQuery(d model.Dimension, lo, hi int64) ([]model.Ordinal, error) {
	start := time.Now()
	ords, err := x.ix.Range(d, lo, hi)
	elapsed := time.Since(start)

	x.metrics.RecordRangeQuery(d.String(), len(ords), elapsed, err)
	if err != nil {
		x.logger.LogQuery(context.Background(), "range", 0, elapsed, err)
		return nil, err
	}
	return ords, nil
}

// PriceRange returns the ordinals with price in [lo, hi].
func (x *Index) PriceRange(lo, hi int64) []model.Ordinal {
	return x.mustRange(model.Price, lo, hi)
}

// YearRange returns the ordinals with model year in [lo, hi].
func (x *Index) YearRange(lo, hi int64) []model.Ordinal {
	return x.mustRange(model.Year, lo, hi)
}

// MileageRange returns the ordinals with mileage in [lo, hi].
func (x *Index) MileageRange(lo, hi int64) []model.Ordinal {
	return x.mustRange(model.Mileage, lo, hi)
}

func (x *Index) mustRange(d model.Dimension, lo, hi int64) []model.Ordinal {
	ords, err := x.RangeQuery(d, lo, hi)
	if err != nil {
		panic(err) // unreachable for the built-in dimensions
	}
	return ords
}

// RangeCount returns the number of records RangeQuery would return.
func (x *Index) RangeCount(d model.Dimension, lo, hi int64) (int, error) {
	return x.ix.RangeCount(d, lo, hi)
}

// RangeBitmap returns the RangeQuery result as a bitmap of ordinals.
func (x *Index) RangeBitmap(d model.Dimension, lo, hi int64) (*roaring.Bitmap, error) {
	return x.ix.RangeBitmap(d, lo, hi)
}

// Filter evaluates b over every record with a vectorized kernel.
// Empty bounds select every record.
func (x *Index) Filter(b model.Bounds) model.Mask {
	start := time.Now()
	price, year, mileage := x.ix.Numeric()
	mask := filter.Eval(x.kernel(), price, year, mileage, b)
	x.observeFilter("scan", mask, time.Since(start))
	return mask
}

// FilterIndexed evaluates b by intersecting range bitmaps from the sorted
// indices. The result equals Filter(b).
func (x *Index) FilterIndexed(b model.Bounds) model.Mask {
	start := time.Now()
	mask := model.MaskFromBitmap(x.ix.Match(b), x.ix.Len())
	x.observeFilter("indexed", mask, time.Since(start))
	return mask
}

func (x *Index) observeFilter(plan string, mask model.Mask, elapsed time.Duration) {
	matches := mask.Count()
	x.metrics.RecordFilter(plan, matches, elapsed)
	x.logger.LogQuery(context.Background(), "filter/"+plan, matches, elapsed, nil)
}

// ParallelFilter evaluates b over contiguous chunks on a call-scoped worker
// pool. The result equals Filter(b). Any worker failure or cancellation
// fails the call and no mask is returned.
func (x *Index) ParallelFilter(ctx context.Context, b model.Bounds, po ParallelOptions) (model.Mask, error) {
	c := parallel.New(parallel.Options{
		Mode:        po.Mode,
		Workers:     po.Workers,
		Compression: po.Compression,
		Kernel:      x.kernel(),
		Controller:  x.opts.controller,
	})

	price, year, mileage := x.ix.Numeric()
	cols := parallel.Columns{Price: price, Year: year, Mileage: mileage}

	start := time.Now()
	mask, err := c.Filter(ctx, cols, b)
	elapsed := time.Since(start)

	x.metrics.RecordParallelFilter(po.Mode.String(), c.Workers(), elapsed, err)
	x.logger.LogParallel(ctx, po.Mode.String(), c.Workers(), mask.Count(), elapsed, err)
	if err != nil {
		return nil, err
	}
	return mask, nil
}

func (x *Index) kernel() filter.Kernel {
	return filter.Select(x.opts.acceleration)
}

// Kernel returns the name of the filter kernel in use.
func (x *Index) Kernel() string {
	return x.kernel().Name()
}

// ToRecords materializes the records at ords, in the given order.
// It fails with ErrOrdinalOutOfRange if any ordinal is invalid.
func (x *Index) ToRecords(ords []model.Ordinal) ([]model.Row, error) {
	out := make([]model.Row, 0, len(ords))
	for _, o := range ords {
		r, err := x.ix.Record(o)
		if err != nil {
			return nil, &ErrOrdinal{Ordinal: o, Len: x.ix.Len(), cause: err}
		}
		out = append(out, r)
	}
	return out, nil
}

// Meta returns the unpacked metadata word of ordinal o.
func (x *Index) Meta(o model.Ordinal) (Meta, error) {
	w, err := x.ix.Packed(o)
	if err != nil {
		return Meta{}, &ErrOrdinal{Ordinal: o, Len: x.ix.Len(), cause: err}
	}
	return w.Meta(), nil
}

// Value returns the stored value of ordinal o on dimension d.
func (x *Index) Value(d model.Dimension, o model.Ordinal) (int64, error) {
	return x.ix.Value(d, o)
}
