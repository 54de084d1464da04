package pdfrender

import "errors"

var (
	// ErrUnknownBackend is returned by NewBackend for a name that was
	// never registered.
	ErrUnknownBackend = errors.New("pdfrender: unknown backend")

	// ErrInvalidDrawMode is returned when a DrawMode fails validation.
	ErrInvalidDrawMode = errors.New("pdfrender: invalid draw mode")

	// ErrInvalidTransform is returned for a singular or non-finite page
	// transform.
	ErrInvalidTransform = errors.New("pdfrender: invalid transform")
)
