package model

import (
	"math"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	for _, d := range Dimensions {
		got, err := ParseDimension(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	got, err := ParseDimension(" Price ")
	require.NoError(t, err)
	assert.Equal(t, Price, got)

	_, err = ParseDimension("horsepower")
	assert.ErrorIs(t, err, ErrUnknownDimension)

	assert.False(t, Dimension(3).Valid())
	assert.Equal(t, "dimension(7)", Dimension(7).String())
}

func TestBounds(t *testing.T) {
	var b Bounds
	assert.True(t, b.Empty())
	assert.Equal(t, "*", b.String())
	assert.True(t, b.Match(math.MinInt64, 0, math.MaxInt64))

	b = b.MinPrice(40_000_000).MaxYear(1395)
	assert.False(t, b.Empty())
	assert.Equal(t, "price>=40000000 year<=1395", b.String())

	assert.True(t, b.Match(100_000_000, 1395, 20_000))
	assert.True(t, b.Match(40_000_000, 1000, 0))
	assert.False(t, b.Match(39_999_999, 1395, 0))
	assert.False(t, b.Match(100_000_000, 1396, 0))

	lo, hi := b.Get(Price).Limits()
	assert.Equal(t, int64(40_000_000), lo)
	assert.Equal(t, int64(math.MaxInt64), hi)
	assert.False(t, b.Get(Mileage).Active())
}

func TestBoundsIsValueType(t *testing.T) {
	base := Bounds{}.MinPrice(1)
	derived := base.MaxPrice(10)

	assert.False(t, base.Get(Price).HasHi)
	assert.True(t, derived.Get(Price).HasHi)
}

func TestBoundsInvertedMatchesNothing(t *testing.T) {
	b := Bounds{}.MinMileage(10).MaxMileage(5)
	for v := int64(0); v < 20; v++ {
		assert.False(t, b.Match(0, 0, v))
	}
}

func TestBoundsPanicsOnUnknownDimension(t *testing.T) {
	assert.Panics(t, func() { Bounds{}.WithMin(Dimension(5), 1) })
	assert.Panics(t, func() { Bounds{}.Get(Dimension(5)) })
}

func TestMask(t *testing.T) {
	m := Mask{true, false, true, true}
	assert.Equal(t, 3, m.Count())
	assert.Equal(t, []Ordinal{0, 2, 3}, m.Ordinals())
	assert.Equal(t, []uint32{0, 2, 3}, m.Bitmap().ToArray())

	assert.True(t, m.Equal(MaskFromBitmap(m.Bitmap(), len(m))))
	assert.False(t, m.Equal(m[:3]))
	assert.False(t, m.Equal(Mask{true, true, true, true}))

	assert.Equal(t, 5, NewMask(5, true).Count())
	assert.Zero(t, NewMask(5, false).Count())
	assert.Empty(t, Mask{}.Ordinals())
}

func TestMaskFromBitmapIgnoresOutOfRange(t *testing.T) {
	bm := roaring.BitmapOf(1, 4, 9)
	assert.Equal(t, Mask{false, true, false, false, true}, MaskFromBitmap(bm, 5))
}

func TestRowValue(t *testing.T) {
	r := Row{Price: 3, Year: 1400, Mileage: 7}
	assert.Equal(t, int64(3), r.Value(Price))
	assert.Equal(t, int64(1400), r.Value(Year))
	assert.Equal(t, int64(7), r.Value(Mileage))
	assert.Panics(t, func() { r.Value(Dimension(9)) })
}
