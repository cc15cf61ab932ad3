package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
		want    []Chunk
	}{
		{
			name:    "even split",
			n:       8,
			workers: 4,
			want:    []Chunk{{0, 0, 2}, {1, 2, 4}, {2, 4, 6}, {3, 6, 8}},
		},
		{
			name:    "ceil size with short tail",
			n:       10,
			workers: 4,
			want:    []Chunk{{0, 0, 3}, {1, 3, 6}, {2, 6, 9}, {3, 9, 10}},
		},
		{
			name:    "more workers than records",
			n:       2,
			workers: 4,
			want:    []Chunk{{0, 0, 1}, {1, 1, 2}, {2, 2, 2}, {3, 2, 2}},
		},
		{
			name:    "empty input",
			n:       0,
			workers: 3,
			want:    []Chunk{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}},
		},
		{
			name:    "single worker",
			n:       5,
			workers: 1,
			want:    []Chunk{{0, 0, 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunks(tt.n, tt.workers))
		})
	}
}

func TestChunksCoverInput(t *testing.T) {
	for n := 0; n < 50; n++ {
		for w := 1; w < 12; w++ {
			chunks := Chunks(n, w)
			require.Len(t, chunks, w)

			next := 0
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
				assert.Equal(t, next, c.Start, "n=%d w=%d", n, w)
				assert.GreaterOrEqual(t, c.Len(), 0)
				next = c.End
			}
			assert.Equal(t, n, next, "n=%d w=%d", n, w)
		}
	}
}

func TestChunksDefaultWorkers(t *testing.T) {
	assert.Len(t, Chunks(10, 0), DefaultWorkers)
	assert.Len(t, Chunks(10, -2), DefaultWorkers)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"thread":   ModeThread,
		"":         ModeThread,
		"isolated": ModeIsolated,
		"process":  ModeIsolated,
		"Process":  ModeIsolated,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMode("fork")
	assert.Error(t, err)

	assert.Equal(t, "thread", ModeThread.String())
	assert.Equal(t, "isolated", ModeIsolated.String())
}
