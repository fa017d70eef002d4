// Package rexfat holds the types and sentinel errors shared by the
// regex-to-FAT32 compiler: the alphabet type and the error kinds raised by
// the compiler and the layout pipeline. The DFA provider interface lives in
// package dfa.
package rexfat

import "fmt"

// RexError is a chainable sentinel error, the same shape as a POSIX errno:
// a short fixed message that can be specialized with WithMessage or wrapped
// with WrapError without losing its identity for errors.Is.
type RexError string

// Error kinds raised by the compiler and the layout pipeline (SPEC_FULL.md
// §7 lists which failure each one stands for).
const (
	ErrCompileFailure        = RexError("regex compile failure")
	ErrCapacityExceeded      = RexError("state machine exceeds FAT32 capacity")
	ErrZeroSizeState         = RexError("zero-size state")
	ErrInvalidStateReference = RexError("invalid state reference")
	ErrIOFailed              = RexError("input/output error")
	ErrOutputOpenFailed      = RexError("could not open output")
	ErrInvalidAlphabet       = RexError("invalid alphabet")
)

func (e RexError) Error() string { return string(e) }

// WithMessage returns a new error carrying e's identity plus a more specific
// message. errors.Is(result, e) still reports true.
func (e RexError) WithMessage(message string) error {
	return &wrappedError{message: fmt.Sprintf("%s: %s", string(e), message), kind: e}
}

// WrapError returns a new error carrying e's identity plus an underlying
// cause. errors.Is(result, e) and errors.Is(result, err) both report true.
func (e RexError) WrapError(err error) error {
	return &wrappedError{
		message: fmt.Sprintf("%s: %s", string(e), err.Error()),
		kind:    e,
		cause:   err,
	}
}

type wrappedError struct {
	message string
	kind    RexError
	cause   error
}

func (e *wrappedError) Error() string { return e.message }

func (e *wrappedError) Is(target error) bool {
	kind, ok := target.(RexError)
	return ok && kind == e.kind
}

func (e *wrappedError) Unwrap() error { return e.cause }
