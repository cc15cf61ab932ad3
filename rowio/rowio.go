// Package rowio reads ad rows from JSON documents and writes materialized
// records back in the same format.
//
// Two layouts are accepted: a JSON array of objects, and JSON lines (one
// object per line, blank lines ignored). The layout is detected from the
// first non-space byte.
package rowio

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/adindex/blobstore"
	"github.com/hupe1980/adindex/codec"
	"github.com/hupe1980/adindex/model"
)

// maxLine bounds a single JSON line; ad descriptions can be long.
const maxLine = 4 << 20

// Format is the on-disk layout of a row document.
type Format uint8

const (
	// Array is a single JSON array of rows.
	Array Format = iota
	// Lines is one JSON row per line.
	Lines
)

// Decode reads all rows from r.
func Decode(r io.Reader, c codec.Codec) ([]model.Row, error) {
	if c == nil {
		c = codec.Default
	}

	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return []model.Row{}, nil
	}
	if err != nil {
		return nil, err
	}

	if first == '[' {
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, err
		}
		var rows []model.Row
		if err := c.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("rowio: decode array: %w", err)
		}
		if rows == nil {
			rows = []model.Row{}
		}
		return rows, nil
	}

	return decodeLines(br, c)
}

func decodeLines(r io.Reader, c codec.Codec) ([]model.Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLine)

	rows := []model.Row{}
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var row model.Row
		if err := c.Unmarshal(b, &row); err != nil {
			return nil, fmt.Errorf("rowio: line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rowio: line %d: %w", line+1, err)
	}
	return rows, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// DecodeBytes decodes rows from an in-memory document.
func DecodeBytes(data []byte, c codec.Codec) ([]model.Row, error) {
	return Decode(bytes.NewReader(data), c)
}

// Load reads the rows stored under name in store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec) ([]model.Row, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("rowio: load %s: %w", name, err)
	}
	return DecodeBytes(data, c)
}

// Encode writes rows to w in the given format.
func Encode(w io.Writer, rows []model.Row, f Format, c codec.Codec) error {
	if c == nil {
		c = codec.Default
	}

	if f == Array {
		if rows == nil {
			rows = []model.Row{}
		}
		data, err := c.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	bw := bufio.NewWriter(w)
	for i := range rows {
		data, err := c.Marshal(&rows[i])
		if err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
