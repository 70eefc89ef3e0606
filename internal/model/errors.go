package model

import (
	"errors"
	"fmt"
)

// ErrChrono is the root of every error raised by the report model.
var ErrChrono = errors.New("chrono")

// Error kinds. Test them with errors.Is.
var (
	ErrBadDate = fmt.Errorf("%w: bad date", ErrChrono)
	ErrBadTime = fmt.Errorf("%w: bad time", ErrChrono)
	ErrReport  = fmt.Errorf("%w: report", ErrChrono)
	ErrYear    = fmt.Errorf("%w: year", ErrChrono)
	ErrParse   = fmt.Errorf("%w: parse", ErrChrono)
)

// Error is a classified error carrying a user-facing message and an
// optional underlying cause.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// BadDate creates an ErrBadDate error.
func BadDate(format string, args ...any) error { return newError(ErrBadDate, format, args...) }

// BadTime creates an ErrBadTime error.
func BadTime(format string, args ...any) error { return newError(ErrBadTime, format, args...) }

// ReportError creates an ErrReport error.
func ReportError(format string, args ...any) error { return newError(ErrReport, format, args...) }

// YearError creates an ErrYear error.
func YearError(format string, args ...any) error { return newError(ErrYear, format, args...) }

// ParseError creates an ErrParse error wrapping cause, which may be nil.
func ParseError(cause error, format string, args ...any) error {
	e := newError(ErrParse, format, args...)
	e.Err = cause
	return e
}
