package adindex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adindex/model"
	"github.com/hupe1980/adindex/resource"
	"github.com/hupe1980/adindex/testutil"
)

func TestSampleScenario(t *testing.T) {
	ix := New(testutil.SampleRows())

	assert.Equal(t, []model.Ordinal{0}, ix.PriceRange(60_000_000, 150_000_000))
	assert.Equal(t, []model.Ordinal{1}, ix.YearRange(1390, 1393))
	assert.Equal(t, []model.Ordinal{1}, ix.MileageRange(0, 10_000))

	both := model.Bounds{}.MinPrice(40_000_000).MaxYear(1395)
	assert.Equal(t, 2, ix.Filter(both).Count())

	onlyFirst := model.Bounds{}.MinMileage(10_000)
	mask := ix.Filter(onlyFirst)
	assert.Equal(t, model.Mask{true, false}, mask)

	records, err := ix.ToRecords(mask.Ordinals())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://divar.ir/v/1", records[0].URL)
}

func TestLookup(t *testing.T) {
	ix := New(testutil.SampleRows())

	o, ok := ix.Lookup("https://divar.ir/v/2")
	require.True(t, ok)
	assert.Equal(t, model.Ordinal(1), o)

	_, ok = ix.Lookup("https://divar.ir/v/404")
	assert.False(t, ok)

	assert.Equal(t, []model.Ordinal{0, 1}, ix.LookupPrefix("https://divar.ir/v/"))
}

func TestLookupDuplicateURLsLastWins(t *testing.T) {
	rows := testutil.NewRNG(42).DuplicateURLRows(100, 10)
	ix := New(rows)

	last := map[string]model.Ordinal{}
	for i, r := range rows {
		last[r.URL] = model.Ordinal(i)
	}
	for url, want := range last {
		got, ok := ix.Lookup(url)
		require.True(t, ok, url)
		assert.Equal(t, want, got, url)
	}
}

func TestEmptyIndex(t *testing.T) {
	ix := New(nil)
	assert.Equal(t, 0, ix.Len())

	_, ok := ix.Lookup("x")
	assert.False(t, ok)
	assert.Empty(t, ix.LookupPrefix(""))
	assert.Empty(t, ix.PriceRange(0, 1<<40))
	assert.Empty(t, ix.Filter(model.Bounds{}))
	assert.Empty(t, ix.FilterIndexed(model.Bounds{}.MinYear(1)))

	for _, mode := range []Mode{ModeThread, ModeIsolated} {
		mask, err := ix.ParallelFilter(context.Background(), model.Bounds{}, ParallelOptions{Mode: mode})
		require.NoError(t, err)
		assert.Empty(t, mask)
	}

	records, err := ix.ToRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRangeQuery(t *testing.T) {
	rows := testutil.NewRNG(42).Rows(2000)
	ix := New(rows)

	for _, d := range model.Dimensions {
		t.Run(d.String(), func(t *testing.T) {
			lo, hi := rows[10].Value(d), rows[20].Value(d)
			if lo > hi {
				lo, hi = hi, lo
			}

			got, err := ix.RangeQuery(d, lo, hi)
			require.NoError(t, err)
			assert.ElementsMatch(t, testutil.BruteForceRange(rows, d, lo, hi), got)

			count, err := ix.RangeCount(d, lo, hi)
			require.NoError(t, err)
			assert.Equal(t, len(got), count)

			bm, err := ix.RangeBitmap(d, lo, hi)
			require.NoError(t, err)
			assert.Equal(t, uint64(len(got)), bm.GetCardinality())

			for i := 1; i < len(got); i++ {
				prev, _ := ix.Value(d, got[i-1])
				cur, _ := ix.Value(d, got[i])
				require.LessOrEqual(t, prev, cur)
			}

			inverted, err := ix.RangeQuery(d, hi+1, lo)
			require.NoError(t, err)
			assert.Empty(t, inverted)
		})
	}

	_, err := ix.RangeQuery(model.Dimension(9), 0, 1)
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestFilterPlansAgree(t *testing.T) {
	rng := testutil.NewRNG(42)
	rows := rng.Rows(1500)
	ix := New(rows)
	scalar := New(rows, WithAcceleration(false))

	center := [model.NumDimensions]int64{150_000_000, 1397, 50_000}
	spread := [model.NumDimensions]int64{150_000_000, 8, 50_000}

	for i := 0; i < 25; i++ {
		b := rng.Bounds(center, spread)
		want := testutil.BruteForceMask(rows, b)

		require.Equal(t, want, ix.Filter(b), "filter %s", b)
		require.Equal(t, want, scalar.Filter(b), "scalar %s", b)
		require.Equal(t, want, ix.FilterIndexed(b), "indexed %s", b)

		for _, workers := range []int{1, 2, 4, len(rows) + 3} {
			thread, err := ix.ParallelFilter(context.Background(), b, ParallelOptions{Mode: ModeThread, Workers: workers})
			require.NoError(t, err)
			isolated, err := ix.ParallelFilter(context.Background(), b, ParallelOptions{Mode: ModeIsolated, Workers: workers, Compression: CompressionZstd})
			require.NoError(t, err)

			require.Equal(t, want, thread, "thread w=%d %s", workers, b)
			require.Equal(t, want, isolated, "isolated w=%d %s", workers, b)
		}
	}
}

func TestFilterNoBounds(t *testing.T) {
	ix := New(testutil.NewRNG(1).Rows(33))
	assert.Equal(t, 33, ix.Filter(model.Bounds{}).Count())
	assert.Equal(t, 33, ix.FilterIndexed(model.Bounds{}).Count())
}

func TestParallelFilterCancelled(t *testing.T) {
	ix := New(testutil.NewRNG(1).Rows(100))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mask, err := ix.ParallelFilter(ctx, model.Bounds{}.MinPrice(1), ParallelOptions{Mode: ModeIsolated})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, mask)
}

func TestParallelFilterWithController(t *testing.T) {
	ctrl := resource.NewController(resource.Config{FrameMemoryLimitBytes: 32})
	ix := New(testutil.NewRNG(1).Rows(100), WithController(ctrl))

	_, err := ix.ParallelFilter(context.Background(), model.Bounds{}, ParallelOptions{Mode: ModeIsolated})
	assert.ErrorIs(t, err, ErrMemoryLimitExceeded)

	// Thread mode moves no frames.
	mask, err := ix.ParallelFilter(context.Background(), model.Bounds{}, ParallelOptions{Mode: ModeThread})
	require.NoError(t, err)
	assert.Equal(t, 100, mask.Count())
}

func TestToRecords(t *testing.T) {
	rows := testutil.SampleRows()
	ix := New(rows)

	got, err := ix.ToRecords([]model.Ordinal{1, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, []model.Row{rows[1], rows[0], rows[1]}, got)

	_, err = ix.ToRecords([]model.Ordinal{0, 2})
	require.ErrorIs(t, err, ErrOrdinalOutOfRange)

	var oe *ErrOrdinal
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, model.Ordinal(2), oe.Ordinal)
	assert.Equal(t, 2, oe.Len)
}

func TestMeta(t *testing.T) {
	ix := New(testutil.SampleRows())

	m, err := ix.Meta(0)
	require.NoError(t, err)
	assert.Equal(t, Meta{Price: 100_000_000, Year: 1395, Flag: 1}, m)

	_, err = ix.Meta(5)
	assert.ErrorIs(t, err, ErrOrdinalOutOfRange)
}

func TestPackRoundTrip(t *testing.T) {
	cases := [][3]int64{
		{0, 0, 0},
		{100_000_000, 1395, 1},
		{1<<32 - 1, 1<<16 - 1, 3},
	}
	for _, c := range cases {
		p, y, f := Unpack(Pack(c[0], c[1], c[2]))
		assert.Equal(t, c, [3]int64{p, y, f})
	}

	assert.Equal(t, Pack(0, 1395, 1), Pack(-5, 1395, 1))
}

func TestMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	ix := New(testutil.SampleRows(), WithMetricsCollector(mc))

	ix.Lookup("https://divar.ir/v/1")
	ix.Lookup("missing")
	ix.PriceRange(0, 1<<40)
	_, _ = ix.RangeQuery(model.Dimension(7), 0, 1)
	ix.Filter(model.Bounds{})
	ix.FilterIndexed(model.Bounds{})
	_, err := ix.ParallelFilter(context.Background(), model.Bounds{}, ParallelOptions{Workers: 2})
	require.NoError(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(2), stats.BuildRecords)
	assert.Equal(t, int64(2), stats.LookupCount)
	assert.Equal(t, int64(1), stats.LookupMisses)
	assert.Equal(t, int64(2), stats.RangeCount)
	assert.Equal(t, int64(1), stats.RangeErrors)
	assert.Equal(t, int64(2), stats.RangeMatches)
	assert.Equal(t, int64(2), stats.FilterCount)
	assert.Equal(t, int64(4), stats.FilterMatches)
	assert.Equal(t, int64(1), stats.ParallelCount)
	assert.Zero(t, stats.ParallelErrors)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ix := New(testutil.SampleRows(), WithLogger(logger))
	ix.Filter(model.Bounds{}.MinPrice(1))
	_, _ = ix.ParallelFilter(context.Background(), model.Bounds{}, ParallelOptions{Mode: ModeIsolated, Workers: 2})

	out := buf.String()
	assert.Contains(t, out, `"msg":"index built"`)
	assert.Contains(t, out, `"records":2`)
	assert.Contains(t, out, `"op":"filter/scan"`)
	assert.Contains(t, out, `"mode":"isolated"`)
}

func TestNilOptions(t *testing.T) {
	ix := New(testutil.SampleRows(), nil, WithLogger(nil), WithMetricsCollector(nil))
	assert.Equal(t, 2, ix.Filter(model.Bounds{}).Count())
}

func BenchmarkFilterPlans(b *testing.B) {
	ix := New(testutil.NewRNG(42).Rows(100_000))
	bounds := model.Bounds{}.MinPrice(10_000_000).MaxPrice(150_000_000)

	b.Run("scan", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ix.Filter(bounds)
		}
	})
	b.Run("indexed", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ix.FilterIndexed(bounds)
		}
	})
	for _, mode := range []Mode{ModeThread, ModeIsolated} {
		b.Run(fmt.Sprintf("parallel-%s", mode), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := ix.ParallelFilter(context.Background(), bounds, ParallelOptions{Mode: mode}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
