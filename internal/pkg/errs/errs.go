// Package errs is the error surface for the rest of the codebase: wrapping
// with context, and marking with sentinel errors so handlers can map usecase
// failures to HTTP statuses with errors.Is.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg, keeping the original chain. Returns nil for a
// nil err so call sites can wrap unconditionally.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark attaches markErr as a sentinel. Both err's own chain and the mark are
// in the unwrap chain, so stdlib errors.Is matches either; the message stays
// the cause's.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &markedError{cause: err, mark: markErr}
}

type markedError struct {
	cause error
	mark  error
}

func (e *markedError) Error() string {
	return e.cause.Error()
}

func (e *markedError) Unwrap() []error {
	return []error{e.cause, e.mark}
}
