package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/adindex"
	"github.com/hupe1980/adindex/blobstore"
	"github.com/hupe1980/adindex/codec"
	"github.com/hupe1980/adindex/model"
	"github.com/hupe1980/adindex/resource"
	"github.com/hupe1980/adindex/rowio"
)

func runQuery(ctx context.Context, cfg *Config, opts []adindex.Option, logger *adindex.Logger, c codec.Codec, stdout io.Writer) error {
	rows, err := loadRows(ctx, cfg.Input, c)
	if err != nil {
		return err
	}

	if cfg.MaxParallelCalls > 0 || cfg.FrameMemoryLimitBytes > 0 || cfg.DispatchBytesPerSec > 0 {
		opts = append(opts, adindex.WithController(resource.NewController(resource.Config{
			MaxParallelCalls:      cfg.MaxParallelCalls,
			FrameMemoryLimitBytes: cfg.FrameMemoryLimitBytes,
			DispatchBytesPerSec:   cfg.DispatchBytesPerSec,
		})))
	}

	ix := adindex.New(rows, opts...)

	var ords []model.Ordinal
	switch {
	case cfg.URL != "":
		o, ok := ix.Lookup(cfg.URL)
		if !ok {
			return fmt.Errorf("lookup %q: not found", cfg.URL)
		}
		ords = []model.Ordinal{o}
	case cfg.Prefix != "":
		ords = ix.LookupPrefix(cfg.Prefix)
	default:
		mask, err := filterPlan(ctx, ix, cfg)
		if err != nil {
			return err
		}
		ords = mask.Ordinals()
	}

	logger.InfoContext(ctx, "query completed",
		"records", ix.Len(),
		"matches", len(ords),
		"bounds", cfg.Bounds.String(),
		"kernel", ix.Kernel(),
	)

	if cfg.Limit > 0 && len(ords) > cfg.Limit {
		ords = ords[:cfg.Limit]
	}
	records, err := ix.ToRecords(ords)
	if err != nil {
		return err
	}
	return rowio.Encode(stdout, records, rowio.Lines, c)
}

func filterPlan(ctx context.Context, ix *adindex.Index, cfg *Config) (model.Mask, error) {
	switch strings.ToLower(cfg.Plan) {
	case "scan", "":
		return ix.Filter(cfg.Bounds), nil
	case "indexed":
		return ix.FilterIndexed(cfg.Bounds), nil
	case "parallel":
		mode, err := adindex.ParseMode(cfg.Mode)
		if err != nil {
			return nil, err
		}
		comp, err := adindex.ParseCompression(cfg.Compression)
		if err != nil {
			return nil, err
		}
		mask, err := ix.ParallelFilter(ctx, cfg.Bounds, adindex.ParallelOptions{
			Mode:        mode,
			Workers:     cfg.Workers,
			Compression: comp,
		})
		if err != nil {
			return nil, fmt.Errorf("parallel filter (%s, %d workers): %w", mode, cfg.Workers, err)
		}
		return mask, nil
	default:
		return nil, fmt.Errorf("unknown plan %q", cfg.Plan)
	}
}

// loadRows reads rows from stdin ("-"), a local file, or a blob URL such as
// s3://bucket/path/rows.json.
func loadRows(ctx context.Context, input string, c codec.Codec) ([]model.Row, error) {
	switch {
	case input == "":
		return nil, errors.New("--input is required")
	case input == "-":
		return rowio.Decode(os.Stdin, c)
	case strings.Contains(input, "://"):
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		dir, name := path.Split(u.Path)
		u.Path = dir
		store, err := blobstore.Open(ctx, u.String())
		if err != nil {
			return nil, err
		}
		return rowio.Load(ctx, store, name, c)
	default:
		store := blobstore.NewLocalStore(filepath.Dir(input))
		return rowio.Load(ctx, store, filepath.Base(input), c)
	}
}
