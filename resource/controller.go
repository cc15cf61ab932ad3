package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimitExceeded is returned when a single reservation is larger
// than the whole frame memory budget.
var ErrMemoryLimitExceeded = errors.New("frame memory limit exceeded")

// Config holds resource limits. Zero values disable the respective limit.
type Config struct {
	// MaxParallelCalls is the maximum number of parallel filter calls that
	// may run at the same time. Further calls block until a slot is free.
	MaxParallelCalls int64

	// FrameMemoryLimitBytes bounds the bytes of encoded frames that may be
	// in flight across all isolated workers.
	FrameMemoryLimitBytes int64

	// DispatchBytesPerSec bounds the frame bytes handed to isolated workers
	// per second.
	DispatchBytesPerSec int64
}

// Controller enforces a Config. It is safe for concurrent use.
type Controller struct {
	cfg Config

	// Calls
	callSem *semaphore.Weighted // nil if unlimited

	// Frame memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Dispatch throughput
	limiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxParallelCalls > 0 {
		c.callSem = semaphore.NewWeighted(cfg.MaxParallelCalls)
	}

	if cfg.FrameMemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.FrameMemoryLimitBytes)
	}

	if cfg.DispatchBytesPerSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.DispatchBytesPerSec), int(cfg.DispatchBytesPerSec))
	}

	return c
}

// Config returns the configured limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireCall reserves a parallel call slot, blocking until one is free or
// ctx is done.
func (c *Controller) AcquireCall(ctx context.Context) error {
	if c == nil || c.callSem == nil {
		return nil
	}
	return c.callSem.Acquire(ctx, 1)
}

// TryAcquireCall reserves a call slot without blocking.
func (c *Controller) TryAcquireCall() bool {
	if c == nil || c.callSem == nil {
		return true
	}
	return c.callSem.TryAcquire(1)
}

// ReleaseCall releases a call slot.
func (c *Controller) ReleaseCall() {
	if c == nil || c.callSem == nil {
		return
	}
	c.callSem.Release(1)
}

// AcquireFrame reserves bytes of frame memory, blocking until enough is
// released or ctx is done. A reservation larger than the whole budget fails
// immediately with ErrMemoryLimitExceeded.
func (c *Controller) AcquireFrame(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.FrameMemoryLimitBytes {
			return fmt.Errorf("%w: frame of %d bytes, limit %d", ErrMemoryLimitExceeded, bytes, c.cfg.FrameMemoryLimitBytes)
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseFrame releases reserved frame memory.
func (c *Controller) ReleaseFrame(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// FrameMemoryUsage returns the bytes of frames currently in flight.
func (c *Controller) FrameMemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// PaceDispatch waits until the dispatch rate allows bytes more frame bytes.
// Frames larger than one second of budget are paced in burst-sized steps.
func (c *Controller) PaceDispatch(ctx context.Context, bytes int) error {
	if c == nil || c.limiter == nil {
		return nil
	}

	burst := c.limiter.Burst()
	for bytes > 0 {
		step := min(bytes, burst)
		if err := c.limiter.WaitN(ctx, step); err != nil {
			return err
		}
		bytes -= step
	}
	return nil
}
