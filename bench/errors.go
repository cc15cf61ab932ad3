package bench

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for a negative benchmark size.
var ErrInvalidSize = errors.New("invalid benchmark size")

// Error reports the size and operation at which a run aborted.
type Error struct {
	Size int
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("bench size %d: %s: %v", e.Size, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
