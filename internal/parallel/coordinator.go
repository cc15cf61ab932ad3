package parallel

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/adindex/internal/filter"
	"github.com/hupe1980/adindex/model"
	"github.com/hupe1980/adindex/resource"
)

// ErrWorkerPanic is returned when a worker panics while evaluating a chunk.
var ErrWorkerPanic = errors.New("filter worker panicked")

// Columns are the aligned numeric columns a coordinator filters.
type Columns struct {
	Price   []int64
	Year    []int32
	Mileage []int32
}

// Len returns the number of records.
func (c Columns) Len() int {
	return len(c.Price)
}

// Options configures a Coordinator.
type Options struct {
	// Mode selects thread or isolated dispatch.
	Mode Mode

	// Workers is the worker (and chunk) count. Values <= 0 use DefaultWorkers.
	Workers int

	// Compression applies to isolated-mode frames.
	Compression Compression

	// Kernel evaluates each chunk. Nil uses filter.Scalar.
	Kernel filter.Kernel

	// Controller optionally governs call concurrency, frame memory and
	// dispatch rate.
	Controller *resource.Controller
}

// Coordinator scatters chunk evaluation across a worker pool and gathers
// the per-chunk masks in chunk order. A Coordinator holds no pool between
// calls and is safe for concurrent use.
type Coordinator struct {
	opts Options

	// beforeChunk runs inside the worker before a chunk is evaluated.
	beforeChunk func(Chunk) error
}

// New creates a coordinator.
func New(opts Options) *Coordinator {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Kernel == nil {
		opts.Kernel = filter.Scalar{}
	}
	return &Coordinator{opts: opts}
}

// Workers returns the effective worker count.
func (c *Coordinator) Workers() int {
	return c.opts.Workers
}

// Filter evaluates b over cols. The result equals a single-pass evaluation
// element for element. On error, including cancellation, no mask is returned.
func (c *Coordinator) Filter(ctx context.Context, cols Columns, b model.Bounds) (model.Mask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.opts.Controller.AcquireCall(ctx); err != nil {
		return nil, err
	}
	defer c.opts.Controller.ReleaseCall()

	chunks := Chunks(cols.Len(), c.opts.Workers)
	parts := make([][]bool, len(chunks))

	var err error
	switch c.opts.Mode {
	case ModeThread:
		err = c.runThread(ctx, cols, b, chunks, parts)
	case ModeIsolated:
		err = c.runIsolated(ctx, cols, b, chunks, parts)
	default:
		err = fmt.Errorf("unknown parallel mode %s", c.opts.Mode)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask := make(model.Mask, cols.Len())
	for i, ch := range chunks {
		if len(parts[i]) != ch.Len() {
			return nil, fmt.Errorf("%w: chunk %d has %d entries, want %d", ErrCorruptFrame, i, len(parts[i]), ch.Len())
		}
		copy(mask[ch.Start:ch.End], parts[i])
	}
	return mask, nil
}

func (c *Coordinator) runThread(ctx context.Context, cols Columns, b model.Bounds, chunks []Chunk, parts [][]bool) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)

	for _, ch := range chunks {
		g.Go(func() (err error) {
			defer recoverChunk(ch, &err)

			if err := gctx.Err(); err != nil {
				return err
			}
			if err := c.hook(ch); err != nil {
				return err
			}

			dst := make([]bool, ch.Len())
			c.opts.Kernel.Eval(cols.Price[ch.Start:ch.End], cols.Year[ch.Start:ch.End], cols.Mileage[ch.Start:ch.End], b, dst)
			parts[ch.Index] = dst
			return nil
		})
	}

	return g.Wait()
}

func (c *Coordinator) runIsolated(ctx context.Context, cols Columns, b model.Bounds, chunks []Chunk, parts [][]bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := c.opts.Controller
	results := make([][]byte, len(chunks))

	p := pool.New().
		WithMaxGoroutines(c.opts.Workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	dispatch := func() error {
		for _, ch := range chunks {
			frame, err := encodeChunk(cols, ch, b, c.opts.Compression)
			if err != nil {
				return err
			}

			size := int64(len(frame))
			if err := ctrl.AcquireFrame(ctx, size); err != nil {
				return err
			}
			if err := ctrl.PaceDispatch(ctx, len(frame)); err != nil {
				ctrl.ReleaseFrame(size)
				return err
			}

			p.Go(func(ctx context.Context) (err error) {
				defer ctrl.ReleaseFrame(size)
				defer recoverChunk(ch, &err)

				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := c.serveFrame(frame)
				if err != nil {
					return err
				}
				results[ch.Index] = res
				return nil
			})
		}
		return nil
	}

	dispatchErr := dispatch()
	if dispatchErr != nil {
		cancel()
	}
	// The pool is always drained so no worker outlives the call.
	if err := p.Wait(); err != nil && dispatchErr == nil {
		return err
	}
	if dispatchErr != nil {
		return dispatchErr
	}

	for _, frame := range results {
		index, mask, err := decodeResult(frame)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(parts) {
			return fmt.Errorf("%w: chunk index %d", ErrCorruptFrame, index)
		}
		parts[index] = mask
	}
	return nil
}

// serveFrame is the isolated worker body: frame in, result frame out.
func (c *Coordinator) serveFrame(frame []byte) ([]byte, error) {
	p, err := decodeChunk(frame)
	if err != nil {
		return nil, err
	}
	if err := c.hook(Chunk{Index: p.index, Start: p.start, End: p.start + len(p.price)}); err != nil {
		return nil, err
	}

	dst := make([]bool, len(p.price))
	c.opts.Kernel.Eval(p.price, p.year, p.mileage, p.bounds, dst)
	return encodeResult(p.index, dst), nil
}

func (c *Coordinator) hook(ch Chunk) error {
	if c.beforeChunk == nil {
		return nil
	}
	return c.beforeChunk(ch)
}

func recoverChunk(ch Chunk, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: chunk %d [%d,%d): %v", ErrWorkerPanic, ch.Index, ch.Start, ch.End, r)
	}
}
