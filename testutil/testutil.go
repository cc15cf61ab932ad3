package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/adindex/model"
)

// Value ranges of synthetic rows.
const (
	MinPrice   = 10_000_000
	MaxPrice   = 300_000_000
	MinYear    = 1390
	YearSpan   = 15
	MaxMileage = 100_000
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int64Range returns a pseudo-random number in [lo,hi).
func (r *RNG) Int64Range(lo, hi int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rand.Int63n(hi-lo)
}

// Rows generates n motorcycle ads with realistic value ranges.
// Urls are unique: https://divar.ir/v/<i>.
func (r *RNG) Rows(n int) []model.Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	brand := "Honda"
	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = model.Row{
			URL:         fmt.Sprintf("https://divar.ir/v/%d", i),
			Title:       fmt.Sprintf("Honda Motorcycle %d", i),
			City:        "Tehran",
			District:    "District",
			Brand:       &brand,
			Year:        MinYear + r.rand.Int63n(YearSpan),
			Mileage:     r.rand.Int63n(MaxMileage),
			Price:       MinPrice + r.rand.Int63n(MaxPrice-MinPrice),
			Negotiable:  r.rand.Int63n(2),
			Description: "Synthetic",
			ScrapedAt:   "2024-01-01T00:00:00",
		}
	}
	return rows
}

// SparseRows generates rows where each numeric field is missing (zero) with
// probability missingRate. Values are drawn from a narrow range so that ties
// are frequent.
func (r *RNG) SparseRows(n int, missingRate float64) []model.Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	field := func(lo, span int64) int64 {
		if r.rand.Float64() < missingRate {
			return 0
		}
		return lo + r.rand.Int63n(span)
	}

	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = model.Row{
			URL:     fmt.Sprintf("https://divar.ir/v/s%d", i),
			Year:    field(MinYear, 5),
			Mileage: field(0, 20),
			Price:   field(1, 30),
		}
	}
	return rows
}

// DuplicateURLRows generates n rows whose urls are drawn from distinct
// values, so most urls occur more than once.
func (r *RNG) DuplicateURLRows(n, distinct int) []model.Row {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]model.Row, n)
	for i := range rows {
		rows[i] = model.Row{
			URL:   fmt.Sprintf("https://divar.ir/v/d%d", r.rand.Intn(distinct)),
			Price: int64(i),
		}
	}
	return rows
}

// Bounds returns random bounds near [center-spread, center+spread] for each
// dimension. Every side is present with probability 1/2, and lo > hi occurs
// occasionally.
func (r *RNG) Bounds(center, spread [model.NumDimensions]int64) model.Bounds {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b model.Bounds
	for _, d := range model.Dimensions {
		if r.rand.Intn(2) == 0 {
			b = b.WithMin(d, center[d]-spread[d]+r.rand.Int63n(2*spread[d]+1))
		}
		if r.rand.Intn(2) == 0 {
			b = b.WithMax(d, center[d]-spread[d]+r.rand.Int63n(2*spread[d]+1))
		}
	}
	return b
}

// SampleRows returns two hand-written ads used by scenario tests.
func SampleRows() []model.Row {
	yamaha, honda := "Yamaha", "Honda"
	return []model.Row{
		{
			URL:        "https://divar.ir/v/1",
			Title:      "Yamaha",
			City:       "Tehran",
			District:   "D1",
			Brand:      &yamaha,
			Year:       1395,
			Mileage:    20_000,
			Price:      100_000_000,
			Negotiable: 1,
			ScrapedAt:  "2024-01-01T00:00:00",
		},
		{
			URL:        "https://divar.ir/v/2",
			Title:      "Honda",
			City:       "Tehran",
			District:   "D2",
			Brand:      &honda,
			Year:       1392,
			Mileage:    5_000,
			Price:      50_000_000,
			Negotiable: 0,
			ScrapedAt:  "2024-01-02T00:00:00",
		},
	}
}

// BruteForceRange returns the ordinals i with lo <= rows[i].Value(d) <= hi in
// ascending ordinal order.
func BruteForceRange(rows []model.Row, d model.Dimension, lo, hi int64) []model.Ordinal {
	out := []model.Ordinal{}
	for i := range rows {
		if v := rows[i].Value(d); lo <= v && v <= hi {
			out = append(out, model.Ordinal(i))
		}
	}
	return out
}

// BruteForceMask evaluates b against every row.
func BruteForceMask(rows []model.Row, b model.Bounds) model.Mask {
	m := make(model.Mask, len(rows))
	for i := range rows {
		m[i] = b.Match(rows[i].Price, rows[i].Year, rows[i].Mileage)
	}
	return m
}
