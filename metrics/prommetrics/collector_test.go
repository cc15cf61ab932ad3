package prommetrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adindex"
	"github.com/hupe1980/adindex/model"
	"github.com/hupe1980/adindex/testutil"
)

// gathered returns the summed counter/gauge value and histogram sample count
// per metric family.
func gathered(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	out := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[mf.GetName()] += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				out[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "test")
	require.NoError(t, err)

	ix := adindex.New(testutil.SampleRows(), adindex.WithMetricsCollector(c))
	ix.Lookup("https://divar.ir/v/1")
	ix.PriceRange(0, 1<<40)
	ix.Filter(model.Bounds{}.MinMileage(10_000))
	_, err = ix.ParallelFilter(context.Background(), model.Bounds{}, adindex.ParallelOptions{Workers: 2})
	require.NoError(t, err)

	got := gathered(t, reg)
	assert.Equal(t, float64(2), got["test_records"])
	assert.Equal(t, float64(1), got["test_lookups_total"])
	assert.Equal(t, float64(3), got["test_matches_total"])
	assert.Equal(t, float64(1), got["test_parallel_filters_total"])
	assert.Equal(t, float64(5), got["test_operation_latency_seconds"])
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "dup")
	require.NoError(t, err)

	_, err = New(reg, "dup")
	assert.Error(t, err)
}
