// Package errors collects the error helpers used throughout frism. The
// constructors come from github.com/pkg/errors so that wrapped errors carry a
// stack trace, which main prints for unexpected (non-fatal) errors.
package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// New returns an error with the supplied message and a stack trace.
var New = errors.New

// Errorf formats according to a format specifier and returns the resulting
// error with a stack trace.
var Errorf = errors.Errorf

// Wrap annotates err with msg and a stack trace. If err is nil, Wrap returns
// nil.
var Wrap = errors.Wrap

// Wrapf is like Wrap with a format specifier.
var Wrapf = errors.Wrapf

// WithStack annotates err with a stack trace at the point WithStack was called.
// If err is nil, WithStack returns nil.
var WithStack = errors.WithStack

// As finds the first error in err's tree that matches target.
func As(err error, tgt interface{}) bool { return stderrors.As(err, tgt) }

// Is reports whether any error in err's tree matches target.
func Is(x, y error) bool { return stderrors.Is(x, y) }

// Join returns an error that wraps the given errors, nil errors are
// discarded. It returns nil if every value in errs is nil.
func Join(errs ...error) error { return stderrors.Join(errs...) }

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error { return stderrors.Unwrap(err) }
