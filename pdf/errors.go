package pdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for document-level failures.
var (
	// ErrMissingObject is returned when a reference does not resolve.
	ErrMissingObject = errors.New("pdf: missing object")

	// ErrMalformed is returned when an object has the wrong shape,
	// such as a reference cycle or a dictionary without a required key.
	ErrMalformed = errors.New("pdf: malformed object")

	// ErrDecode is returned when stream data cannot be decoded.
	ErrDecode = errors.New("pdf: decode failed")
)

// Error records the operation and reference that failed.
type Error struct {
	Op  string
	Ref Ref
	Err error
}

func (e *Error) Error() string {
	if e.Ref.IsZero() {
		return fmt.Sprintf("pdf: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdf: %s %s: %v", e.Op, e.Ref, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
