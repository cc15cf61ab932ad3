package adindex

import (
	"log/slog"

	"github.com/hupe1980/adindex/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	acceleration     bool
	controller       *resource.Controller
}

// Option configures Index construction.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &adindex.BasicMetricsCollector{}
//	ix := adindex.New(rows, adindex.WithMetricsCollector(metrics))
//	// ... use ix ...
//	stats := metrics.GetStats()
//	fmt.Printf("Filters: %d, Avg latency: %dns\n", stats.FilterCount, stats.FilterAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := adindex.NewJSONLogger(slog.LevelInfo)
//	ix := adindex.New(rows, adindex.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithAcceleration enables or disables the accelerated filter kernel.
// Enabled by default; it only takes effect on CPUs with wide vector units
// unless forced via ADINDEX_FILTER_KERNEL.
func WithAcceleration(enabled bool) Option {
	return func(o *options) {
		o.acceleration = enabled
	}
}

// WithController attaches a resource controller that governs parallel
// filter calls. A nil controller imposes no limits.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		acceleration:     true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
