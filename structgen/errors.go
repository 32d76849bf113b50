// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import "fmt"

// ErrorKind categorizes generation errors and matches with errors.Is.
type ErrorKind uint8

const (
	// ErrUnrecognizedType indicates a member type with no schema
	// equivalent, such as an unknown identifier or a texture.
	ErrUnrecognizedType ErrorKind = iota

	// ErrInvalidArrayLength indicates an array length that is not a
	// positive integer, or a runtime-sized member that is not last.
	ErrInvalidArrayLength

	// ErrRecursiveDataType indicates structs that contain each other.
	ErrRecursiveDataType

	// ErrInvalidAttribute indicates a malformed @align, @size, @location
	// or @builtin attribute.
	ErrInvalidAttribute

	// ErrParse indicates the WGSL source could not be parsed.
	ErrParse
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnrecognizedType:
		return "UnrecognizedType"
	case ErrInvalidArrayLength:
		return "InvalidArrayLength"
	case ErrRecursiveDataType:
		return "RecursiveDataType"
	case ErrInvalidAttribute:
		return "InvalidAttribute"
	case ErrParse:
		return "Parse"
	default:
		return "Unknown"
	}
}

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return "structgen " + k.String()
}

// Error is a generation error for one struct or member.
type Error struct {
	Kind    ErrorKind
	Struct  string
	Member  string
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Struct != "" && e.Member != "":
		return fmt.Sprintf("structgen %s: %s.%s: %s", e.Kind.String(), e.Struct, e.Member, e.Message)
	case e.Struct != "":
		return fmt.Sprintf("structgen %s: %s: %s", e.Kind.String(), e.Struct, e.Message)
	default:
		return fmt.Sprintf("structgen %s: %s", e.Kind.String(), e.Message)
	}
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
