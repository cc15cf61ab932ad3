package bitpack

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	cases := [][3]int64{
		{0, 0, 0},
		{math.MaxUint32, math.MaxUint16, 3},
		{100_000_000, 1395, 1},
		{50_000_000, 1392, 0},
	}
	for range 1000 {
		cases = append(cases, [3]int64{
			rng.Int63n(1 << 32),
			rng.Int63n(1 << 16),
			rng.Int63n(4),
		})
	}

	for _, c := range cases {
		w := Pack(c[0], c[1], c[2])
		p, y, f := Unpack(w)
		require.Equal(t, c, [3]int64{p, y, f})
		require.Zero(t, w.Reserved())
	}
}

func TestPack_ClampsNegative(t *testing.T) {
	assert.Equal(t, Pack(0, 1395, 1), Pack(-5, 1395, 1))
	assert.Equal(t, Pack(100, 0, 2), Pack(100, -1, 2))
}

func TestPack_Wraps(t *testing.T) {
	// Values past the field width wrap instead of saturating.
	p, y, f := Unpack(Pack(1<<32+7, 1<<16+3, 5))
	assert.Equal(t, int64(7), p)
	assert.Equal(t, int64(3), y)
	assert.Equal(t, int64(1), f)

	w := Pack(math.MaxInt64, math.MaxInt64, -1)
	assert.Zero(t, w.Reserved())
}

func TestWord_Meta(t *testing.T) {
	m := Pack(100_000_000, 1395, 1).Meta()
	assert.Equal(t, Meta{Price: 100_000_000, Year: 1395, Flag: 1}, m)
}

func TestLayout(t *testing.T) {
	assert.Equal(t, Word(1), Pack(0, 0, 1))
	assert.Equal(t, Word(1<<2), Pack(1, 0, 0))
	assert.Equal(t, Word(1<<34), Pack(0, 1, 0))
	assert.Equal(t, 50, ReservedShift)
}

func BenchmarkPack(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Pack(int64(i), 1395, 1)
	}
}
