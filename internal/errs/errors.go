// Package errs provides the unified error type used across the metadata core.
//
// Adapters wrap every engine-level error into *errs.Error before returning it,
// preserving the original error for diagnosis. Callers use the Is* predicates
// to branch on failure class without importing driver packages. An empty
// result set is never represented as an error, and an unimplemented operation
// is never represented as an empty result.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the metadata layer.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConnection: the pooled connection is unusable or unreachable.
	KindConnection
	// KindUnsupportedDriver: the URL scheme matches none of the known dialects.
	KindUnsupportedDriver
	// KindUnsupportedOperation: the adapter intentionally has no
	// implementation of the operation for its dialect.
	KindUnsupportedOperation
	// KindTypeMapping: a native column type has no canonical mapping.
	KindTypeMapping
	// KindQuery: the engine rejected or failed to execute the issued query.
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindUnsupportedDriver:
		return "unsupported_driver"
	case KindUnsupportedOperation:
		return "unsupported_operation"
	case KindTypeMapping:
		return "type_mapping"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the metadata core.
type Error struct {
	Kind    Kind
	Message string
	Cause   error // underlying engine/driver error, kept verbatim
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is / errors.As traverse into the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with no underlying cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no underlying cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error carrying the underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsConnection reports whether err is a connectivity failure.
func IsConnection(err error) bool { return kindOf(err) == KindConnection }

// IsUnsupportedDriver reports whether err came from an unrecognized URL scheme.
func IsUnsupportedDriver(err error) bool { return kindOf(err) == KindUnsupportedDriver }

// IsUnsupportedOperation reports whether the adapter declines the operation
// for its dialect.
func IsUnsupportedOperation(err error) bool { return kindOf(err) == KindUnsupportedOperation }

// IsTypeMapping reports whether a native type spelling failed canonical lookup.
func IsTypeMapping(err error) bool { return kindOf(err) == KindTypeMapping }

// IsQuery reports whether the engine rejected or failed an issued query.
func IsQuery(err error) bool { return kindOf(err) == KindQuery }

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
