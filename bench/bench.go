package bench

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/adindex"
	"github.com/hupe1980/adindex/model"
	"github.com/hupe1980/adindex/testutil"
)

// Result is one row of a benchmark report.
type Result struct {
	Size           int     `json:"size"`
	BuildMS        float64 `json:"build_ms"`
	PriceQueryMS   float64 `json:"price_query_ms"`
	YearQueryMS    float64 `json:"year_query_ms"`
	MileageQueryMS float64 `json:"mileage_query_ms"`
	MemCurrent     int64   `json:"mem_current"`
	MemPeak        int64   `json:"mem_peak"`
}

// CompareResult is one row of a comparative report.
type CompareResult struct {
	Size                    int     `json:"size"`
	OptimizedBuildMS        float64 `json:"optimized_build_ms"`
	OptimizedPriceQueryMS   float64 `json:"optimized_price_query_ms"`
	OptimizedYearQueryMS    float64 `json:"optimized_year_query_ms"`
	OptimizedMileageQueryMS float64 `json:"optimized_mileage_query_ms"`
	NaivePriceQueryMS       float64 `json:"naive_price_query_ms"`
	NaiveYearQueryMS        float64 `json:"naive_year_query_ms"`
	NaiveMileageQueryMS     float64 `json:"naive_mileage_query_ms"`
}

// samples collects repeated timings of one size.
type samples struct {
	build, price, year, mileage         []float64
	naivePrice, naiveYear, naiveMileage []float64
	memCurrent, memPeak                 []float64
}

// Run measures every size in cfg.Sizes.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	cfg = cfg.normalized()

	out := make([]Result, 0, len(cfg.Sizes))
	for _, n := range cfg.Sizes {
		s, err := measure(ctx, cfg, n, false)
		if err != nil {
			return nil, err
		}
		r := Result{
			Size:           n,
			BuildMS:        median(s.build),
			PriceQueryMS:   median(s.price),
			YearQueryMS:    median(s.year),
			MileageQueryMS: median(s.mileage),
			MemCurrent:     int64(median(s.memCurrent)),
			MemPeak:        int64(median(s.memPeak)),
		}
		cfg.Logger.InfoContext(ctx, "bench size completed",
			"size", n,
			"build_ms", r.BuildMS,
			"mem_peak", r.MemPeak,
		)
		out = append(out, r)
	}
	return out, nil
}

// RunCompare measures every size against a naive linear scan.
func RunCompare(ctx context.Context, cfg Config) ([]CompareResult, error) {
	cfg = cfg.normalized()

	out := make([]CompareResult, 0, len(cfg.Sizes))
	for _, n := range cfg.Sizes {
		s, err := measure(ctx, cfg, n, true)
		if err != nil {
			return nil, err
		}
		r := CompareResult{
			Size:                    n,
			OptimizedBuildMS:        median(s.build),
			OptimizedPriceQueryMS:   median(s.price),
			OptimizedYearQueryMS:    median(s.year),
			OptimizedMileageQueryMS: median(s.mileage),
			NaivePriceQueryMS:       median(s.naivePrice),
			NaiveYearQueryMS:        median(s.naiveYear),
			NaiveMileageQueryMS:     median(s.naiveMileage),
		}
		cfg.Logger.InfoContext(ctx, "compare size completed",
			"size", n,
			"optimized_price_query_ms", r.OptimizedPriceQueryMS,
			"naive_price_query_ms", r.NaivePriceQueryMS,
		)
		out = append(out, r)
	}
	return out, nil
}

func measure(ctx context.Context, cfg Config, n int, naive bool) (*samples, error) {
	if n < 0 {
		return nil, &Error{Size: n, Op: "generate", Err: fmt.Errorf("%w: %d", ErrInvalidSize, n)}
	}

	q := cfg.Queries
	rows := testutil.NewRNG(cfg.Seed).Rows(n)
	s := &samples{}

	for range cfg.Repeats {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Size: n, Op: "build", Err: err}
		}

		start := time.Now()
		ix := adindex.New(rows, cfg.IndexOptions...)
		s.build = append(s.build, ms(time.Since(start)))

		s.price = append(s.price, timeRange(ix, model.Price, q.Price))
		s.year = append(s.year, timeRange(ix, model.Year, q.Year))
		s.mileage = append(s.mileage, timeRange(ix, model.Mileage, q.Mileage))

		if naive {
			s.naivePrice = append(s.naivePrice, timeScan(rows, model.Price, q.Price))
			s.naiveYear = append(s.naiveYear, timeScan(rows, model.Year, q.Year))
			s.naiveMileage = append(s.naiveMileage, timeScan(rows, model.Mileage, q.Mileage))
			continue
		}

		cur, peak := sampleHeap(func() { ix.Filter(q.Filter) })
		s.memCurrent = append(s.memCurrent, float64(cur))
		s.memPeak = append(s.memPeak, float64(peak))
		runtime.KeepAlive(ix)
	}
	return s, nil
}

func timeRange(ix *adindex.Index, d model.Dimension, sp Span) float64 {
	start := time.Now()
	_, _ = ix.RangeQuery(d, sp.Lo, sp.Hi)
	return ms(time.Since(start))
}

// timeScan times the unindexed baseline: a full pass over the rows.
func timeScan(rows []model.Row, d model.Dimension, sp Span) float64 {
	start := time.Now()
	hits := make([]model.Ordinal, 0)
	for i := range rows {
		if v := rows[i].Value(d); sp.Lo <= v && v <= sp.Hi {
			hits = append(hits, model.Ordinal(i))
		}
	}
	elapsed := time.Since(start)
	runtime.KeepAlive(hits)
	return ms(elapsed)
}

// sampleHeap runs fn and returns the live heap growth and the bytes
// allocated while it ran.
func sampleHeap(fn func()) (current, peak int64) {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	fn()

	runtime.ReadMemStats(&after)
	current = max(int64(after.HeapAlloc)-int64(before.HeapAlloc), 0)
	peak = int64(after.TotalAlloc - before.TotalAlloc)
	return current, peak
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
