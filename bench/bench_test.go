package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adindex/blobstore"
	"github.com/hupe1980/adindex/codec"
)

func TestRunEmitsOneRecordPerSize(t *testing.T) {
	results, err := Run(context.Background(), Config{Sizes: []int{0, 10, 500}})
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, size := range []int{0, 10, 500} {
		r := results[i]
		assert.Equal(t, size, r.Size)
		assert.GreaterOrEqual(t, r.BuildMS, 0.0)
		assert.GreaterOrEqual(t, r.PriceQueryMS, 0.0)
		assert.GreaterOrEqual(t, r.YearQueryMS, 0.0)
		assert.GreaterOrEqual(t, r.MileageQueryMS, 0.0)
		assert.GreaterOrEqual(t, r.MemCurrent, int64(0))
		assert.GreaterOrEqual(t, r.MemPeak, int64(0))
	}
}

func TestRunAbortsOnInvalidSize(t *testing.T) {
	results, err := Run(context.Background(), Config{Sizes: []int{10, -1, 20}})
	require.ErrorIs(t, err, ErrInvalidSize)
	assert.Nil(t, results)

	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, -1, be.Size)
	assert.Contains(t, err.Error(), "size -1")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunCompare(ctx, Config{Sizes: []int{10}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunCompare(t *testing.T) {
	results, err := RunCompare(context.Background(), Config{Sizes: []int{100, 200}, Repeats: 3})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 100, results[0].Size)
	assert.Equal(t, 200, results[1].Size)
	assert.GreaterOrEqual(t, results[1].NaivePriceQueryMS, 0.0)
}

func TestReportFieldNames(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, WriteReport(ctx, store, "bench.json", codec.JSON{}, []Result{{Size: 10}}))
	require.NoError(t, WriteReport(ctx, store, "compare.json", nil, []CompareResult{{Size: 10}}))

	var bench []map[string]any
	require.NoError(t, ReadReport(ctx, store, "bench.json", nil, &bench))
	require.Len(t, bench, 1)
	for _, k := range []string{"size", "build_ms", "price_query_ms", "year_query_ms", "mileage_query_ms", "mem_current", "mem_peak"} {
		assert.Contains(t, bench[0], k)
	}

	var compare []map[string]any
	require.NoError(t, ReadReport(ctx, store, "compare.json", codec.GoJSON{}, &compare))
	require.Len(t, compare, 1)
	for _, k := range []string{
		"size", "optimized_build_ms",
		"optimized_price_query_ms", "optimized_year_query_ms", "optimized_mileage_query_ms",
		"naive_price_query_ms", "naive_year_query_ms", "naive_mileage_query_ms",
	} {
		assert.Contains(t, compare[0], k)
	}
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))

	xs := []float64{4, 1, 3, 2}
	m := median(xs)
	assert.True(t, m == 2 || m == 3)
	assert.Equal(t, []float64{4, 1, 3, 2}, xs)
}

func TestDefaults(t *testing.T) {
	cfg := Config{}.normalized()
	assert.Equal(t, int64(DefaultSeed), cfg.Seed)
	assert.Equal(t, 1, cfg.Repeats)
	require.NotNil(t, cfg.Queries)
	assert.Equal(t, DefaultQueries(), *cfg.Queries)
}
