// Package prommetrics exports index metrics to Prometheus.
package prommetrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/adindex"
)

var _ adindex.MetricsCollector = (*Collector)(nil)

// Collector implements adindex.MetricsCollector on Prometheus metrics.
type Collector struct {
	opLatency *prometheus.HistogramVec
	records   prometheus.Gauge
	lookups   *prometheus.CounterVec
	matches   *prometheus.CounterVec
	parallel  *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg. A nil reg
// registers with prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "adindex"
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of index operations",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op", "status"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Number of records in the most recently built index",
		}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Total url lookups",
		}, []string{"found"}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Total records matched by range queries and filters",
		}, []string{"op"}),
		parallel: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parallel_filters_total",
			Help:      "Total parallel filter calls",
		}, []string{"mode", "workers", "status"}),
	}

	for _, m := range []prometheus.Collector{c.opLatency, c.records, c.lookups, c.matches, c.parallel} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordBuild implements adindex.MetricsCollector.
func (c *Collector) RecordBuild(records int, duration time.Duration) {
	c.records.Set(float64(records))
	c.opLatency.WithLabelValues("build", "success").Observe(duration.Seconds())
}

// RecordLookup implements adindex.MetricsCollector.
func (c *Collector) RecordLookup(found bool, duration time.Duration) {
	c.lookups.WithLabelValues(strconv.FormatBool(found)).Inc()
	c.opLatency.WithLabelValues("lookup", "success").Observe(duration.Seconds())
}

// RecordRangeQuery implements adindex.MetricsCollector.
func (c *Collector) RecordRangeQuery(dim string, matches int, duration time.Duration, err error) {
	op := "range_" + dim
	c.opLatency.WithLabelValues(op, status(err)).Observe(duration.Seconds())
	if err == nil {
		c.matches.WithLabelValues(op).Add(float64(matches))
	}
}

// RecordFilter implements adindex.MetricsCollector.
func (c *Collector) RecordFilter(plan string, matches int, duration time.Duration) {
	op := "filter_" + plan
	c.opLatency.WithLabelValues(op, "success").Observe(duration.Seconds())
	c.matches.WithLabelValues(op).Add(float64(matches))
}

// RecordParallelFilter implements adindex.MetricsCollector.
func (c *Collector) RecordParallelFilter(mode string, workers int, duration time.Duration, err error) {
	c.opLatency.WithLabelValues("parallel_"+mode, status(err)).Observe(duration.Seconds())
	c.parallel.WithLabelValues(mode, strconv.Itoa(workers), status(err)).Inc()
}
