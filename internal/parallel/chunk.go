package parallel

import (
	"fmt"
	"strings"
)

// DefaultWorkers is used when the requested worker count is not positive.
const DefaultWorkers = 4

// Mode selects how chunks are dispatched.
type Mode uint8

const (
	// ModeThread runs chunks on goroutines sharing the column memory.
	ModeThread Mode = iota
	// ModeIsolated hands every chunk to a worker as an encoded frame.
	ModeIsolated
)

// String returns the stable mode name.
func (m Mode) String() string {
	switch m {
	case ModeThread:
		return "thread"
	case ModeIsolated:
		return "isolated"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode parses a mode name. "process" is accepted as an alias for
// "isolated".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "thread", "":
		return ModeThread, nil
	case "isolated", "process":
		return ModeIsolated, nil
	default:
		return 0, fmt.Errorf("unknown parallel mode %q", s)
	}
}

// Chunk is a contiguous range [Start, End) of ordinals.
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len returns the number of ordinals in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// Chunks partitions [0, n) into exactly workers contiguous chunks of
// ceil(n/workers) ordinals; the last non-empty chunk may be shorter and
// trailing chunks are empty when workers > n.
func Chunks(n, workers int) []Chunk {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	size := (n + workers - 1) / workers

	chunks := make([]Chunk, workers)
	for i := range chunks {
		start := min(i*size, n)
		end := min(start+size, n)
		chunks[i] = Chunk{Index: i, Start: start, End: end}
	}
	return chunks
}
