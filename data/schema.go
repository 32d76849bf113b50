// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import (
	"fmt"

	"github.com/gogpu/tgpu/resolve"
)

// Kind is the shape category of a schema.
type Kind uint8

const (
	KindScalar Kind = iota
	KindVector
	KindMatrix
	KindStruct
	KindArray
	KindRuntimeArray
	KindAtomic
	KindOverride
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindRuntimeArray:
		return "runtime-array"
	case KindAtomic:
		return "atomic"
	case KindOverride:
		return "override"
	default:
		return "unknown"
	}
}

// Serializable is the byte layout side of a schema.
//
// Write, Read and Measure walk the same fields in the same order and
// insert the same padding, so all three agree on every offset.
type Serializable interface {
	// Size returns the number of bytes the schema occupies.
	Size() int

	// Alignment returns the required byte alignment, a power of two.
	Alignment() int

	// Write serializes v at the writer position.
	Write(w *Writer, v any) error

	// Read deserializes a value at the reader position.
	Read(r *Reader) (any, error)

	// Measure advances m by the bytes v would occupy and returns m.
	Measure(v any, m *Measurer) *Measurer
}

// Schema is a WGSL data type: it has a byte layout and resolves to
// shader text.
type Schema interface {
	Serializable
	resolve.Resolvable

	Kind() Kind
}

// Record is the host value of a struct, keyed by field name.
type Record map[string]any

// Serialize encodes v into a new buffer of s.Size() bytes.
func Serialize(s Schema, v any) ([]byte, error) {
	w := NewWriter(make([]byte, s.Size()))
	if err := s.Write(w, v); err != nil {
		return nil, err
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Deserialize decodes a value of schema s from b.
func Deserialize(s Schema, b []byte) (any, error) {
	r := NewReader(b)
	v, err := s.Read(r)
	if err != nil {
		return nil, err
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

// MeasureOf returns the number of bytes v occupies under s.
func MeasureOf(s Schema, v any) int {
	return s.Measure(v, &Measurer{}).Size()
}

// wrapper is implemented by schemas that decorate another schema.
type wrapper interface {
	Inner() Schema
}

// IsRuntimeSized reports whether s ends in a runtime-sized array.
func IsRuntimeSized(s Schema) bool {
	for {
		switch t := s.(type) {
		case *ArraySchema:
			return t.runtime
		case *StructSchema:
			return t.runtimeTail
		case wrapper:
			s = t.Inner()
		default:
			return false
		}
	}
}

// recursiveDataType is returned by every composite from ResolveReferences.
func recursiveDataType(s Schema) error {
	return resolve.NewErrorf(resolve.ErrRecursiveDataType,
		"%s schemas cannot be resolved as references; recursive data types are not supported",
		s.Kind())
}

func mismatch(s Schema, v any) error {
	return NewErrorf(ErrValueMismatch, "cannot use %T as %s value", v, describe(s))
}

func describe(s Schema) string {
	if st, ok := s.(fmt.Stringer); ok {
		return st.String()
	}
	return s.Kind().String()
}
