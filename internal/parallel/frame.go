package parallel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/adindex/model"
)

// ErrCorruptFrame is returned when a frame cannot be decoded.
var ErrCorruptFrame = errors.New("corrupt frame")

// Compression selects the block compression of chunk frames.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 compresses the payload with LZ4 (fast).
	CompressionLZ4 Compression = 1
	// CompressionZstd compresses the payload with Zstd (better ratio).
	CompressionZstd Compression = 2
)

// String returns the stable compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown frame compression %q", s)
	}
}

const frameVersion = 1

// Chunk frame layout (little endian):
//
//	[0]      version
//	[1]      compression
//	[2:6]    chunk index
//	[6:10]   chunk start
//	[10:14]  record count
//	[14:18]  uncompressed payload size
//	[18:]    payload
//
// Payload: per dimension {flags u8, lo i64, hi i64}, then count price i64,
// count year i32 and count mileage i32.
const (
	chunkHeaderSize = 18
	boundSize       = 1 + 8 + 8
	boundsSize      = model.NumDimensions * boundSize
)

// Result frame layout: [0] version, [1:5] chunk index, [5:9] count, then
// ceil(count/8) bytes of mask bits, LSB first.
const resultHeaderSize = 9

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// chunkPayload is the decoded content of a chunk frame. Its slices are owned
// by the decoder, never shared with the coordinator.
type chunkPayload struct {
	index   int
	start   int
	bounds  model.Bounds
	price   []int64
	year    []int32
	mileage []int32
}

// encodeChunk serializes chunk c of the columns together with b.
func encodeChunk(cols Columns, c Chunk, b model.Bounds, comp Compression) ([]byte, error) {
	n := c.Len()
	payload := make([]byte, boundsSize+n*16)

	off := 0
	for _, d := range model.Dimensions {
		bd := b.Get(d)
		var flags byte
		if bd.HasLo {
			flags |= 1
		}
		if bd.HasHi {
			flags |= 2
		}
		payload[off] = flags
		binary.LittleEndian.PutUint64(payload[off+1:], uint64(bd.Lo))
		binary.LittleEndian.PutUint64(payload[off+9:], uint64(bd.Hi))
		off += boundSize
	}
	for _, v := range cols.Price[c.Start:c.End] {
		binary.LittleEndian.PutUint64(payload[off:], uint64(v))
		off += 8
	}
	for _, v := range cols.Year[c.Start:c.End] {
		binary.LittleEndian.PutUint32(payload[off:], uint32(v))
		off += 4
	}
	for _, v := range cols.Mileage[c.Start:c.End] {
		binary.LittleEndian.PutUint32(payload[off:], uint32(v))
		off += 4
	}

	body, used, err := compress(payload, comp)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, chunkHeaderSize+len(body))
	frame[0] = frameVersion
	frame[1] = byte(used)
	binary.LittleEndian.PutUint32(frame[2:], uint32(c.Index))
	binary.LittleEndian.PutUint32(frame[6:], uint32(c.Start))
	binary.LittleEndian.PutUint32(frame[10:], uint32(n))
	binary.LittleEndian.PutUint32(frame[14:], uint32(len(payload)))
	copy(frame[chunkHeaderSize:], body)
	return frame, nil
}

// decodeChunk parses a chunk frame into private memory.
func decodeChunk(frame []byte) (*chunkPayload, error) {
	if len(frame) < chunkHeaderSize || frame[0] != frameVersion {
		return nil, fmt.Errorf("%w: bad chunk header", ErrCorruptFrame)
	}
	comp := Compression(frame[1])
	n := int(binary.LittleEndian.Uint32(frame[10:]))
	rawLen := int(binary.LittleEndian.Uint32(frame[14:]))
	if rawLen != boundsSize+n*16 {
		return nil, fmt.Errorf("%w: payload size %d for %d records", ErrCorruptFrame, rawLen, n)
	}

	payload, err := decompress(frame[chunkHeaderSize:], comp, rawLen)
	if err != nil {
		return nil, err
	}

	p := &chunkPayload{
		index:   int(binary.LittleEndian.Uint32(frame[2:])),
		start:   int(binary.LittleEndian.Uint32(frame[6:])),
		price:   make([]int64, n),
		year:    make([]int32, n),
		mileage: make([]int32, n),
	}

	off := 0
	for _, d := range model.Dimensions {
		flags := payload[off]
		lo := int64(binary.LittleEndian.Uint64(payload[off+1:]))
		hi := int64(binary.LittleEndian.Uint64(payload[off+9:]))
		if flags&1 != 0 {
			p.bounds = p.bounds.WithMin(d, lo)
		}
		if flags&2 != 0 {
			p.bounds = p.bounds.WithMax(d, hi)
		}
		off += boundSize
	}
	for i := range p.price {
		p.price[i] = int64(binary.LittleEndian.Uint64(payload[off:]))
		off += 8
	}
	for i := range p.year {
		p.year[i] = int32(binary.LittleEndian.Uint32(payload[off:]))
		off += 4
	}
	for i := range p.mileage {
		p.mileage[i] = int32(binary.LittleEndian.Uint32(payload[off:]))
		off += 4
	}
	return p, nil
}

// encodeResult serializes the mask of chunk index.
func encodeResult(index int, mask []bool) []byte {
	out := make([]byte, resultHeaderSize+(len(mask)+7)/8)
	out[0] = frameVersion
	binary.LittleEndian.PutUint32(out[1:], uint32(index))
	binary.LittleEndian.PutUint32(out[5:], uint32(len(mask)))
	bits := out[resultHeaderSize:]
	for i, v := range mask {
		if v {
			bits[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// decodeResult parses a result frame.
func decodeResult(frame []byte) (int, []bool, error) {
	if len(frame) < resultHeaderSize || frame[0] != frameVersion {
		return 0, nil, fmt.Errorf("%w: bad result header", ErrCorruptFrame)
	}
	index := int(binary.LittleEndian.Uint32(frame[1:]))
	n := int(binary.LittleEndian.Uint32(frame[5:]))
	bits := frame[resultHeaderSize:]
	if len(bits) != (n+7)/8 {
		return 0, nil, fmt.Errorf("%w: %d mask bytes for %d records", ErrCorruptFrame, len(bits), n)
	}

	mask := make([]bool, n)
	for i := range mask {
		mask[i] = bits[i/8]&(1<<(i%8)) != 0
	}
	return index, mask, nil
}

// compress returns the encoded payload and the compression actually used.
// Incompressible LZ4 blocks are stored uncompressed.
func compress(data []byte, comp Compression) ([]byte, Compression, error) {
	switch comp {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			return data, CompressionNone, nil
		}
		return dst[:n], CompressionLZ4, nil
	case CompressionZstd:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), CompressionZstd, nil
	default:
		return nil, 0, fmt.Errorf("unknown frame compression %d", comp)
	}
}

func decompress(body []byte, comp Compression, rawLen int) ([]byte, error) {
	switch comp {
	case CompressionNone:
		if len(body) != rawLen {
			return nil, fmt.Errorf("%w: truncated payload", ErrCorruptFrame)
		}
		return body, nil
	case CompressionLZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil || n != rawLen {
			return nil, fmt.Errorf("%w: lz4: %v", ErrCorruptFrame, err)
		}
		return out, nil
	case CompressionZstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(body, make([]byte, 0, rawLen))
		if err != nil || len(out) != rawLen {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorruptFrame, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: compression %d", ErrCorruptFrame, comp)
	}
}
