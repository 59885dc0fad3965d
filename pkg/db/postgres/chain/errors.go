package chain

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation marks a defect in the input or in the store's ordering guarantees,
// such as a log whose correlation key has no returned transaction id. It is never retried.
var ErrInvariantViolation = errors.New("ingestion invariant violated")

// StoreError reports a failed statement. The caller must roll back the unit of work.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
