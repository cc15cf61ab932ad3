package bench

import (
	"github.com/hupe1980/adindex"
	"github.com/hupe1980/adindex/model"
)

// DefaultSeed seeds the row generator when Config.Seed is zero.
const DefaultSeed = 42

// Span is an inclusive [Lo, Hi] query interval.
type Span struct {
	Lo, Hi int64
}

// Queries are the workloads timed per size.
type Queries struct {
	Price   Span
	Year    Span
	Mileage Span

	// Filter is evaluated while heap usage is sampled.
	Filter model.Bounds
}

// DefaultQueries returns the standard workload.
func DefaultQueries() Queries {
	return Queries{
		Price:   Span{20_000_000, 200_000_000},
		Year:    Span{1392, 1399},
		Mileage: Span{10_000, 80_000},
		Filter:  model.Bounds{}.MinPrice(10_000_000).MaxPrice(150_000_000),
	}
}

// Config controls a benchmark run.
type Config struct {
	// Sizes are the row counts to measure, in order.
	Sizes []int

	// Seed seeds the row generator. Zero uses DefaultSeed.
	Seed int64

	// Repeats is the number of measurements per size; the median is
	// reported. Values < 1 mean 1.
	Repeats int

	// Queries overrides the workload. Nil uses DefaultQueries.
	Queries *Queries

	// IndexOptions are passed to adindex.New.
	IndexOptions []adindex.Option

	// Logger receives per-size progress. Nil disables logging.
	Logger *adindex.Logger
}

func (c Config) normalized() Config {
	if c.Seed == 0 {
		c.Seed = DefaultSeed
	}
	if c.Repeats < 1 {
		c.Repeats = 1
	}
	if c.Queries == nil {
		q := DefaultQueries()
		c.Queries = &q
	}
	if c.Logger == nil {
		c.Logger = adindex.NoopLogger()
	}
	return c
}
