package adindex

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems, or use the
// Prometheus adapter in metrics/prommetrics.
type MetricsCollector interface {
	// RecordBuild is called after an index is built.
	RecordBuild(records int, duration time.Duration)

	// RecordLookup is called after each url lookup.
	RecordLookup(found bool, duration time.Duration)

	// RecordRangeQuery is called after each range query.
	// err is non-nil for an unknown dimension.
	RecordRangeQuery(dim string, matches int, duration time.Duration, err error)

	// RecordFilter is called after each sequential filter.
	// plan is "scan" or "indexed".
	RecordFilter(plan string, matches int, duration time.Duration)

	// RecordParallelFilter is called after each parallel filter call.
	RecordParallelFilter(mode string, workers int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration)                         {}
func (NoopMetricsCollector) RecordLookup(bool, time.Duration)                       {}
func (NoopMetricsCollector) RecordRangeQuery(string, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordFilter(string, int, time.Duration)                {}
func (NoopMetricsCollector) RecordParallelFilter(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount         atomic.Int64
	BuildRecords       atomic.Int64
	LookupCount        atomic.Int64
	LookupMisses       atomic.Int64
	RangeCount         atomic.Int64
	RangeErrors        atomic.Int64
	RangeMatches       atomic.Int64
	RangeTotalNanos    atomic.Int64
	FilterCount        atomic.Int64
	FilterMatches      atomic.Int64
	FilterTotalNanos   atomic.Int64
	ParallelCount      atomic.Int64
	ParallelErrors     atomic.Int64
	ParallelTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(records int, _ time.Duration) {
	b.BuildCount.Add(1)
	b.BuildRecords.Add(int64(records))
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(found bool, _ time.Duration) {
	b.LookupCount.Add(1)
	if !found {
		b.LookupMisses.Add(1)
	}
}

// RecordRangeQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRangeQuery(_ string, matches int, duration time.Duration, err error) {
	b.RangeCount.Add(1)
	b.RangeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RangeErrors.Add(1)
		return
	}
	b.RangeMatches.Add(int64(matches))
}

// RecordFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFilter(_ string, matches int, duration time.Duration) {
	b.FilterCount.Add(1)
	b.FilterMatches.Add(int64(matches))
	b.FilterTotalNanos.Add(duration.Nanoseconds())
}

// RecordParallelFilter implements MetricsCollector.
func (b *BasicMetricsCollector) RecordParallelFilter(_ string, _ int, duration time.Duration, err error) {
	b.ParallelCount.Add(1)
	b.ParallelTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ParallelErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:       b.BuildCount.Load(),
		BuildRecords:     b.BuildRecords.Load(),
		LookupCount:      b.LookupCount.Load(),
		LookupMisses:     b.LookupMisses.Load(),
		RangeCount:       b.RangeCount.Load(),
		RangeErrors:      b.RangeErrors.Load(),
		RangeMatches:     b.RangeMatches.Load(),
		RangeAvgNanos:    avg(b.RangeTotalNanos.Load(), b.RangeCount.Load()),
		FilterCount:      b.FilterCount.Load(),
		FilterMatches:    b.FilterMatches.Load(),
		FilterAvgNanos:   avg(b.FilterTotalNanos.Load(), b.FilterCount.Load()),
		ParallelCount:    b.ParallelCount.Load(),
		ParallelErrors:   b.ParallelErrors.Load(),
		ParallelAvgNanos: avg(b.ParallelTotalNanos.Load(), b.ParallelCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount       int64
	BuildRecords     int64
	LookupCount      int64
	LookupMisses     int64
	RangeCount       int64
	RangeErrors      int64
	RangeMatches     int64
	RangeAvgNanos    int64
	FilterCount      int64
	FilterMatches    int64
	FilterAvgNanos   int64
	ParallelCount    int64
	ParallelErrors   int64
	ParallelAvgNanos int64
}
