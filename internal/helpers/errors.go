package helpers

import (
	"github.com/ztrue/tracerr"
)

// Error is a value type wrapping a stack-traced error. The zero-ish NilError
// stands in for "no error" so callers can return it without nil-interface
// gotchas.
type Error struct {
	inner tracerr.Error
}

var NilError = Error{nil}

func IsNil(err error) bool {
	if traceable, ok := err.(Error); ok {
		return traceable.inner == nil
	}
	if traceable, ok := err.(*Error); ok {
		return traceable.inner == nil
	}
	return err == nil
}

func (e Error) Error() string {
	if e.inner == nil {
		return "<nil>"
	}
	return tracerr.Sprint(e.inner)
}

func (e Error) String() string {
	if e.inner == nil {
		return "<nil>"
	}
	return tracerr.SprintSource(e.inner, 3)
}

func (e Error) Unwrap() error {
	return e.inner
}

func Wrap(err error) Error {
	if IsNil(err) {
		return NilError
	}
	return Error{tracerr.Wrap(err)}
}

func Errorf(format string, args ...interface{}) Error {
	return Error{tracerr.Errorf(format, args...)}
}
