package adindex

import (
	"fmt"

	"github.com/hupe1980/adindex/internal/parallel"
	"github.com/hupe1980/adindex/model"
	"github.com/hupe1980/adindex/resource"
)

var (
	// ErrUnknownDimension is returned when a range query names a dimension
	// without an index.
	ErrUnknownDimension = model.ErrUnknownDimension

	// ErrOrdinalOutOfRange is returned when an ordinal does not address a record.
	ErrOrdinalOutOfRange = model.ErrOrdinalOutOfRange

	// ErrWorkerPanic is returned when a parallel filter worker panics.
	ErrWorkerPanic = parallel.ErrWorkerPanic

	// ErrCorruptFrame is returned when an isolated worker frame cannot be decoded.
	ErrCorruptFrame = parallel.ErrCorruptFrame

	// ErrMemoryLimitExceeded is returned when a frame does not fit the
	// controller's frame memory budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ErrOrdinal indicates an ordinal that does not address a record.
//
// It matches ErrOrdinalOutOfRange via errors.Is.
type ErrOrdinal struct {
	Ordinal model.Ordinal
	Len     int
	cause   error
}

func (e *ErrOrdinal) Error() string {
	return fmt.Sprintf("ordinal %d out of range [0,%d)", e.Ordinal, e.Len)
}

func (e *ErrOrdinal) Unwrap() error { return e.cause }
