package core

import (
	"errors"
	"fmt"
	"strings"
)

// Kind sentinels. Every error produced by this module that belongs to the
// taxonomy matches exactly one of them with errors.Is.
var (
	ErrConfiguration      = errors.New("configuration error")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrNumericInstability = errors.New("numeric instability")
)

// NoWindow marks an Error that is not tied to a specific analysis window.
const NoWindow = -1

// Error carries the context needed to report a failure: the operation that
// raised it and, where relevant, the window, feature and parameter involved.
type Error struct {
	Kind    error
	Op      string
	Window  int
	Feature string
	Param   string
	Value   any
	Err     error
	msg     string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Feature != "" {
		fmt.Fprintf(&b, "feature %q: ", e.Feature)
	}
	if e.Window >= 0 {
		fmt.Fprintf(&b, "window %d: ", e.Window)
	}
	if e.Param != "" {
		fmt.Fprintf(&b, "param %s=%v: ", e.Param, e.Value)
	}
	switch {
	case e.msg != "":
		b.WriteString(e.msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	}
	return b.String()
}

// Is matches the kind sentinel.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// WithWindow returns a copy of e tied to window index i.
func (e *Error) WithWindow(i int) *Error {
	c := *e
	c.Window = i
	return &c
}

// WithFeature returns a copy of e tied to the named feature.
func (e *Error) WithFeature(name string) *Error {
	c := *e
	c.Feature = name
	return &c
}

func newError(kind error, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Window: NoWindow, msg: fmt.Sprintf(format, args...)}
}

// Configf returns an ErrConfiguration error.
func Configf(op, format string, args ...any) *Error {
	return newError(ErrConfiguration, op, format, args...)
}

// ParamError returns an ErrConfiguration error naming the offending parameter.
func ParamError(op, param string, value any, format string, args ...any) *Error {
	e := newError(ErrConfiguration, op, format, args...)
	e.Param = param
	e.Value = value
	return e
}

// Insufficientf returns an ErrInsufficientData error.
func Insufficientf(op, format string, args ...any) *Error {
	return newError(ErrInsufficientData, op, format, args...)
}

// Instabilityf returns an ErrNumericInstability error.
func Instabilityf(op, format string, args ...any) *Error {
	return newError(ErrNumericInstability, op, format, args...)
}

// Schemaf returns an ErrSchemaMismatch error.
func Schemaf(op, format string, args ...any) *Error {
	return newError(ErrSchemaMismatch, op, format, args...)
}

// KindOf returns the taxonomy sentinel err belongs to, or nil.
func KindOf(err error) error {
	for _, k := range []error{ErrConfiguration, ErrInsufficientData, ErrSchemaMismatch, ErrNumericInstability} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// AsError extracts the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
