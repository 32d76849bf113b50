// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import (
	"fmt"
	"reflect"

	"github.com/gogpu/tgpu/resolve"
)

// ArraySchema is a fixed-length array, or a runtime-sized array bound to
// a length. Host values are slices or arrays of the element host type;
// reading yields []any.
type ArraySchema struct {
	elem    Schema
	length  int
	runtime bool
	size    int
}

// NewArray creates an array<elem, n>.
func NewArray(elem Schema, n int) (*ArraySchema, error) {
	return newArray(elem, n, false)
}

// ArrayOf is like NewArray but panics on error.
func ArrayOf(elem Schema, n int) *ArraySchema {
	return must(NewArray(elem, n))
}

// NewRuntimeArray creates a runtime-sized array<elem> laid out with n
// elements.
func NewRuntimeArray(elem Schema, n int) (*ArraySchema, error) {
	return newArray(elem, n, true)
}

// RuntimeArray is like NewRuntimeArray but panics on error.
func RuntimeArray(elem Schema, n int) *ArraySchema {
	return must(NewRuntimeArray(elem, n))
}

func newArray(elem Schema, n int, runtime bool) (*ArraySchema, error) {
	if elem == nil {
		return nil, NewError(ErrInvalidField, "array element type is nil")
	}
	if n <= 0 {
		return nil, NewErrorf(ErrInvalidLength, "array of %s must have a positive length, got %d", describe(elem), n)
	}
	if IsRuntimeSized(elem) {
		return nil, NewErrorf(ErrUnsizedTail, "runtime-sized %s cannot be an array element", describe(elem))
	}

	s := &ArraySchema{elem: elem, length: n, runtime: runtime}
	s.size = s.Measure(MaxValue, &Measurer{}).Size()
	return s, nil
}

// Unsized is a runtime-sized schema: it becomes concrete once bound to an
// element count.
type Unsized func(length int) (Schema, error)

// RuntimeArrayOf returns the runtime-sized array<elem>.
func RuntimeArrayOf(elem Schema) Unsized {
	return func(length int) (Schema, error) {
		return NewRuntimeArray(elem, length)
	}
}

// UnsizedStruct returns a struct whose last field, tailName, is the
// runtime-sized tail. Binding the struct binds the tail with the same
// length, so nesting one UnsizedStruct as the tail of another propagates
// the length down the chain.
func UnsizedStruct(tailName string, tail Unsized, fields ...StructField) Unsized {
	return func(length int) (Schema, error) {
		t, err := tail(length)
		if err != nil {
			return nil, err
		}
		all := make([]StructField, 0, len(fields)+1)
		all = append(all, fields...)
		all = append(all, Field(tailName, t))
		return NewStruct(all...)
	}
}

// Bind binds u to length.
func (u Unsized) Bind(length int) (Schema, error) {
	return u(length)
}

// Named returns an Unsized whose bound schemas carry label.
func (u Unsized) Named(label string) Unsized {
	return func(length int) (Schema, error) {
		s, err := u(length)
		if err != nil {
			return nil, err
		}
		if l, ok := s.(resolve.Labeler); ok {
			l.SetLabel(label)
		}
		return s, nil
	}
}

func (s *ArraySchema) Size() int      { return s.size }
func (s *ArraySchema) Alignment() int { return s.elem.Alignment() }

// Kind returns KindRuntimeArray for runtime-sized arrays.
func (s *ArraySchema) Kind() Kind {
	if s.runtime {
		return KindRuntimeArray
	}
	return KindArray
}

// Elem returns the element schema.
func (s *ArraySchema) Elem() Schema { return s.elem }

// Len returns the number of elements.
func (s *ArraySchema) Len() int { return s.length }

// Stride returns the distance between consecutive elements.
func (s *ArraySchema) Stride() int {
	return alignTo(s.elem.Size(), s.elem.Alignment())
}

// IsRuntimeSized reports whether the array is declared as array<T>.
func (s *ArraySchema) IsRuntimeSized() bool { return s.runtime }

func (s *ArraySchema) String() string {
	if s.runtime {
		return fmt.Sprintf("array<%s>", describe(s.elem))
	}
	return fmt.Sprintf("array<%s, %d>", describe(s.elem), s.length)
}

// Resolve implements resolve.Resolvable.
func (s *ArraySchema) Resolve(ctx resolve.Ctx) (string, error) {
	elem, err := ctx.Resolve(s.elem)
	if err != nil {
		return "", err
	}
	if s.runtime {
		return "array<" + elem + ">", nil
	}
	return fmt.Sprintf("array<%s, %d>", elem, s.length), nil
}

// ResolveReferences always fails: arrays are resolved as a unit.
func (s *ArraySchema) ResolveReferences(resolve.Ctx) error {
	return recursiveDataType(s)
}

func (s *ArraySchema) elements(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return reflect.Value{}, false
	}
	return rv, rv.Len() == s.length
}

// Write implements Serializable.
func (s *ArraySchema) Write(w *Writer, v any) error {
	rv, ok := s.elements(v)
	if !ok {
		return mismatch(s, v)
	}

	align := s.Alignment()
	alignCursor(w, align)
	for i := 0; i < s.length; i++ {
		alignCursor(w, s.elem.Alignment())
		if err := s.elem.Write(w, rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	alignCursor(w, align)
	return nil
}

// Read implements Serializable.
func (s *ArraySchema) Read(r *Reader) (any, error) {
	align := s.Alignment()
	alignCursor(r, align)

	out := make([]any, s.length)
	for i := range out {
		alignCursor(r, s.elem.Alignment())
		v, err := s.elem.Read(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	alignCursor(r, align)
	return out, nil
}

// Measure implements Serializable.
func (s *ArraySchema) Measure(v any, m *Measurer) *Measurer {
	align := s.Alignment()
	alignCursor(m, align)

	rv, ok := s.elements(v)
	if !ok {
		// Element layout does not depend on the value: every element
		// occupies one stride.
		m.Add(s.length * s.Stride())
		alignCursor(m, align)
		return m
	}

	for i := 0; i < s.length; i++ {
		alignCursor(m, s.elem.Alignment())
		s.elem.Measure(rv.Index(i).Interface(), m)
	}
	alignCursor(m, align)
	return m
}
