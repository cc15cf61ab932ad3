package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/adindex/model"
)

func TestRows_Deterministic(t *testing.T) {
	a := NewRNG(42).Rows(100)
	b := NewRNG(42).Rows(100)
	require.Equal(t, a, b)

	for _, r := range a {
		assert.GreaterOrEqual(t, r.Price, int64(MinPrice))
		assert.Less(t, r.Price, int64(MaxPrice))
		assert.GreaterOrEqual(t, r.Year, int64(MinYear))
		assert.Less(t, r.Year, int64(MinYear+YearSpan))
		assert.Less(t, r.Mileage, int64(MaxMileage))
	}
}

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(7)
	first := rng.Rows(10)
	rng.Reset()
	assert.Equal(t, first, rng.Rows(10))
	assert.Equal(t, int64(7), rng.Seed())
}

func TestSparseRows(t *testing.T) {
	rows := NewRNG(1).SparseRows(1000, 1.0)
	for _, r := range rows {
		assert.Zero(t, r.Price)
		assert.Zero(t, r.Year)
		assert.Zero(t, r.Mileage)
	}
}

func TestBruteForce(t *testing.T) {
	rows := SampleRows()

	assert.Equal(t, []model.Ordinal{0}, BruteForceRange(rows, model.Price, 60_000_000, 150_000_000))
	assert.Empty(t, BruteForceRange(rows, model.Price, 10, 1))

	m := BruteForceMask(rows, model.Bounds{}.MinMileage(10_000))
	assert.Equal(t, model.Mask{true, false}, m)
}
