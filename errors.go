package valuemap

import (
	"errors"
	"fmt"
)

var (
	// ErrNilBitmap is returned when a nil worker bitmap is handed to the Aggregator.
	ErrNilBitmap = errors.New("nil bitmap")

	// ErrSelfMerge is returned when the aggregate bitmap is drained into itself.
	ErrSelfMerge = errors.New("cannot drain the aggregate into itself")

	// ErrClosed is returned when draining into a closed Aggregator.
	ErrClosed = errors.New("aggregator closed")
)

// ErrWorkerConflict indicates that a worker batch is unusable, either because
// a slot is nil or because the same bitmap appears more than once.
//
// The underlying sentinel (ErrNilBitmap or ErrSelfMerge) can be accessed via errors.Unwrap.
type ErrWorkerConflict struct {
	// Index is the position of the offending worker in the batch.
	Index int
	// Other is the position of the earlier duplicate, or -1.
	Other int
	cause error
}

func (e *ErrWorkerConflict) Error() string {
	if e.Other >= 0 {
		return fmt.Sprintf("worker %d is the same bitmap as worker %d", e.Index, e.Other)
	}
	return fmt.Sprintf("worker %d: %v", e.Index, e.cause)
}

func (e *ErrWorkerConflict) Unwrap() error { return e.cause }
