// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import "fmt"

// ErrorKind categorizes schema construction and I/O errors.
//
// ErrorKind implements error so callers can match with errors.Is:
//
//	if errors.Is(err, data.ErrInvalidAlignment) { ... }
type ErrorKind uint8

const (
	// ErrInvalidAlignment indicates an @align override that is not a
	// positive power of two.
	ErrInvalidAlignment ErrorKind = iota

	// ErrInvalidSize indicates a @size override that is not positive or
	// is smaller than the wrapped type's natural size.
	ErrInvalidSize

	// ErrInvalidLength indicates a non-positive array length.
	ErrInvalidLength

	// ErrInvalidField indicates a struct field with a missing type, an
	// invalid name or a name used twice.
	ErrInvalidField

	// ErrEmptyStruct indicates a struct without fields.
	ErrEmptyStruct

	// ErrInvalidAtomic indicates an atomic wrapping something other than
	// i32 or u32.
	ErrInvalidAtomic

	// ErrValueMismatch indicates a host value that does not fit the schema.
	ErrValueMismatch

	// ErrOutOfBounds indicates a read or write past the end of a buffer.
	ErrOutOfBounds

	// ErrUnsizedTail indicates a runtime-sized member anywhere other than
	// the last field of a struct, or used as an array element.
	ErrUnsizedTail
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidAlignment:
		return "InvalidAlignment"
	case ErrInvalidSize:
		return "InvalidSize"
	case ErrInvalidLength:
		return "InvalidLength"
	case ErrInvalidField:
		return "InvalidField"
	case ErrEmptyStruct:
		return "EmptyStruct"
	case ErrInvalidAtomic:
		return "InvalidAtomic"
	case ErrValueMismatch:
		return "ValueMismatch"
	case ErrOutOfBounds:
		return "OutOfBounds"
	case ErrUnsizedTail:
		return "UnsizedTail"
	default:
		return "Unknown"
	}
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return "data " + k.String()
}

// Error represents a schema error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("data %s: %s", e.Kind.String(), e.Message)
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// NewError creates a new schema error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// NewErrorf creates a new schema error with a formatted message.
func NewErrorf(kind ErrorKind, format string, args ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// must panics with err if it is non-nil. It backs the package-level
// constructors used in variable declarations and generated code.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
