// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import "fmt"

// ErrorKind categorizes resolution errors.
//
// ErrorKind implements error so callers can match with errors.Is:
//
//	if errors.Is(err, resolve.ErrNameCollision) { ... }
type ErrorKind uint8

const (
	// ErrRecursiveDataType indicates an attempt to resolve the inner
	// references of a composite data type. Composite schemas are always
	// terminal; self-referential data types are not supported.
	ErrRecursiveDataType ErrorKind = iota

	// ErrNameCollision indicates two distinct items requested the same
	// label from a strict name registry.
	ErrNameCollision

	// ErrUnnamed indicates a strict name registry was asked to name an
	// item that carries no label.
	ErrUnnamed

	// ErrReservedName indicates a label that is a WGSL keyword or reserved word.
	ErrReservedName

	// ErrInvalidName indicates a label that is not a valid WGSL identifier.
	ErrInvalidName

	// ErrCyclicDependency indicates an item was reached again while it
	// was still being resolved.
	ErrCyclicDependency

	// ErrUnresolvable indicates a value that cannot be turned into shader text.
	ErrUnresolvable
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrRecursiveDataType:
		return "RecursiveDataType"
	case ErrNameCollision:
		return "NameCollision"
	case ErrUnnamed:
		return "Unnamed"
	case ErrReservedName:
		return "ReservedName"
	case ErrInvalidName:
		return "InvalidName"
	case ErrCyclicDependency:
		return "CyclicDependency"
	case ErrUnresolvable:
		return "Unresolvable"
	default:
		return "Unknown"
	}
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return "resolve " + k.String()
}

// Error represents a resolution error.
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
	return fmt.Sprintf("resolve %s: %s", e.Kind.String(), e.Message)
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// NewError creates a new resolution error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// NewErrorf creates a new resolution error with a formatted message.
func NewErrorf(kind ErrorKind, format string, args ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// IsRecursiveDataType returns true if the error is ErrRecursiveDataType.
func (e *Error) IsRecursiveDataType() bool {
	return e.Kind == ErrRecursiveDataType
}

// IsNameCollision returns true if the error is ErrNameCollision.
func (e *Error) IsNameCollision() bool {
	return e.Kind == ErrNameCollision
}
