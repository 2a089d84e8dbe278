package vtab

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes failures surfaced to the host.
type ErrorKind int

const (
	// ArgumentError: bad or missing scan parameter; raised by Bind.
	ArgumentError ErrorKind = iota + 1
	// IOError: the file cannot be opened; raised by Init.
	IOError
	// FormatError: a record failed to decode; raised by Produce, fatal for the scan.
	FormatError
	// InternalError: the handle cannot be locked (poisoned or closed); fatal for the scan.
	InternalError
)

func (k ErrorKind) String() string {
	switch k {
	case ArgumentError:
		return "argument error"
	case IOError:
		return "io error"
	case FormatError:
		return "format error"
	case InternalError:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by Bind, Init and Produce.
type Error struct {
	Kind ErrorKind
	Op   string // "bind", "init" or "produce"
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newArgumentError(format string, a ...any) *Error {
	return &Error{Kind: ArgumentError, Op: "bind", Err: fmt.Errorf(format, a...)}
}

func newIOError(path string, cause error) *Error {
	return &Error{Kind: IOError, Op: "init", Path: path, Err: cause}
}

func newFormatError(path string, cause error) *Error {
	return &Error{Kind: FormatError, Op: "produce", Path: path, Err: cause}
}

func newInternalError(path, msg string) *Error {
	return &Error{Kind: InternalError, Op: "produce", Path: path, Err: errors.New(msg)}
}
