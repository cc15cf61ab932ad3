package bench

import (
	"context"
	"fmt"

	"github.com/hupe1980/adindex/blobstore"
	"github.com/hupe1980/adindex/codec"
)

// WriteReport encodes v with c and stores it under name.
func WriteReport(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec, v any) error {
	if c == nil {
		c = codec.Default
	}

	data, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("write report %s: %w", name, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport into v.
func ReadReport(ctx context.Context, store blobstore.BlobStore, name string, c codec.Codec, v any) error {
	if c == nil {
		c = codec.Default
	}

	data, err := store.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("read report %s: %w", name, err)
	}
	return c.Unmarshal(data, v)
}
