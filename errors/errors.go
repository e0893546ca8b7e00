package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseQuery     Phase = "query"     // counter reads
	PhaseLifecycle Phase = "lifecycle" // context retain/release
	PhaseNative    Phase = "native"    // calls into the native library
)

// Kind categorizes the error
type Kind string

const (
	KindReleased       Kind = "released"
	KindForeign        Kind = "foreign"
	KindInvalidCounter Kind = "invalid_counter"
	KindOverreleased   Kind = "overreleased"
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for the module's error conditions

// Released reports a query against a context whose native resource has
// already been freed. The foreign layer was not reached.
func Released() *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindReleased,
		Detail: "session context released",
	}
}

// ForeignQuery wraps a failure reported by the native library for a
// counter read.
func ForeignQuery(counter string, cause error) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindForeign,
		Detail: fmt.Sprintf("read counter %q", counter),
		Cause:  cause,
	}
}

// InvalidCounter reports a query for a counter kind outside the
// enumerated set.
func InvalidCounter(value uint8) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindInvalidCounter,
		Detail: fmt.Sprintf("unknown counter %d", value),
	}
}

// Overreleased reports a release of a context whose reference count
// already reached zero.
func Overreleased() *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindOverreleased,
		Detail: "context already released",
	}
}

// RetainReleased reports a retain attempt on a released context.
func RetainReleased() *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindReleased,
		Detail: "cannot retain released context",
	}
}

// Native wraps a failure from the native library outside the query path
// (context allocation or free).
func Native(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseNative,
		Kind:   KindForeign,
		Detail: detail,
		Cause:  cause,
	}
}

// IsReleased reports whether err is the post-release query failure.
func IsReleased(err error) bool {
	return stderrors.Is(err, Released())
}
