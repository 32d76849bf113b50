// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import (
	"fmt"

	"github.com/gogpu/tgpu/resolve"
)

// AlignedSchema overrides the alignment of a schema, as @align(n) does on
// a struct member.
type AlignedSchema struct {
	inner Schema
	align int
}

// NewAligned wraps s so that its alignment is max(natural, n).
// n must be a positive power of two.
func NewAligned(n int, s Schema) (*AlignedSchema, error) {
	if s == nil {
		return nil, NewError(ErrInvalidField, "@align target is nil")
	}
	if n <= 0 || n&(n-1) != 0 {
		return nil, NewErrorf(ErrInvalidAlignment, "@align(%d) on %s: alignment must be a positive power of two", n, describe(s))
	}
	return &AlignedSchema{inner: s, align: max(n, s.Alignment())}, nil
}

// Align is like NewAligned but panics on error.
func Align(n int, s Schema) *AlignedSchema {
	return must(NewAligned(n, s))
}

// Inner returns the wrapped schema.
func (s *AlignedSchema) Inner() Schema { return s.inner }

func (s *AlignedSchema) Size() int      { return s.inner.Size() }
func (s *AlignedSchema) Alignment() int { return s.align }
func (s *AlignedSchema) Kind() Kind     { return KindOverride }

func (s *AlignedSchema) String() string {
	return fmt.Sprintf("align(%d, %s)", s.align, describe(s.inner))
}

// Resolve resolves to the inner type. The attribute itself is emitted
// by the enclosing struct.
func (s *AlignedSchema) Resolve(ctx resolve.Ctx) (string, error) {
	return ctx.Resolve(s.inner)
}

// ResolveReferences always fails: overrides are resolved as a unit.
func (s *AlignedSchema) ResolveReferences(resolve.Ctx) error {
	return recursiveDataType(s)
}

// Write implements Serializable.
func (s *AlignedSchema) Write(w *Writer, v any) error {
	alignCursor(w, s.align)
	return s.inner.Write(w, v)
}

// Read implements Serializable.
func (s *AlignedSchema) Read(r *Reader) (any, error) {
	alignCursor(r, s.align)
	return s.inner.Read(r)
}

// Measure implements Serializable.
func (s *AlignedSchema) Measure(v any, m *Measurer) *Measurer {
	alignCursor(m, s.align)
	return s.inner.Measure(v, m)
}

// SizedSchema overrides the size of a schema, as @size(n) does on a
// struct member. The bytes past the inner value are padding.
type SizedSchema struct {
	inner Schema
	size  int
}

// NewSized wraps s so that it occupies n bytes. n must be at least the
// natural size of s.
func NewSized(n int, s Schema) (*SizedSchema, error) {
	if s == nil {
		return nil, NewError(ErrInvalidField, "@size target is nil")
	}
	if n <= 0 || n < s.Size() {
		return nil, NewErrorf(ErrInvalidSize, "@size(%d) on %s: size must be at least %d", n, describe(s), s.Size())
	}
	return &SizedSchema{inner: s, size: n}, nil
}

// Size is like NewSized but panics on error.
func Size(n int, s Schema) *SizedSchema {
	return must(NewSized(n, s))
}

// Inner returns the wrapped schema.
func (s *SizedSchema) Inner() Schema { return s.inner }

func (s *SizedSchema) Size() int      { return s.size }
func (s *SizedSchema) Alignment() int { return s.inner.Alignment() }
func (s *SizedSchema) Kind() Kind     { return KindOverride }

func (s *SizedSchema) String() string {
	return fmt.Sprintf("size(%d, %s)", s.size, describe(s.inner))
}

// Resolve resolves to the inner type.
func (s *SizedSchema) Resolve(ctx resolve.Ctx) (string, error) {
	return ctx.Resolve(s.inner)
}

// ResolveReferences always fails: overrides are resolved as a unit.
func (s *SizedSchema) ResolveReferences(resolve.Ctx) error {
	return recursiveDataType(s)
}

// Write implements Serializable.
func (s *SizedSchema) Write(w *Writer, v any) error {
	alignCursor(w, s.Alignment())
	start := w.Offset()
	if err := s.inner.Write(w, v); err != nil {
		return err
	}
	if pad := start + s.size - w.Offset(); pad > 0 {
		w.Skip(pad)
	}
	return nil
}

// Read implements Serializable.
func (s *SizedSchema) Read(r *Reader) (any, error) {
	alignCursor(r, s.Alignment())
	start := r.Offset()
	v, err := s.inner.Read(r)
	if err != nil {
		return nil, err
	}
	if pad := start + s.size - r.Offset(); pad > 0 {
		r.Skip(pad)
	}
	return v, nil
}

// Measure implements Serializable.
func (s *SizedSchema) Measure(v any, m *Measurer) *Measurer {
	alignCursor(m, s.Alignment())
	start := m.Offset()
	s.inner.Measure(v, m)
	if pad := start + s.size - m.Offset(); pad > 0 {
		m.Add(pad)
	}
	return m
}

// LocationSchema tags a stage input or output member with @location(n).
// It does not change the layout.
type LocationSchema struct {
	inner    Schema
	location int
}

// NewLocation wraps s with @location(n).
func NewLocation(n int, s Schema) (*LocationSchema, error) {
	if s == nil {
		return nil, NewError(ErrInvalidField, "@location target is nil")
	}
	if n < 0 {
		return nil, NewErrorf(ErrInvalidField, "@location(%d) must not be negative", n)
	}
	return &LocationSchema{inner: s, location: n}, nil
}

// Location is like NewLocation but panics on error.
func Location(n int, s Schema) *LocationSchema {
	return must(NewLocation(n, s))
}

// Inner returns the wrapped schema.
func (s *LocationSchema) Inner() Schema { return s.inner }

// Index returns the location index.
func (s *LocationSchema) Index() int { return s.location }

func (s *LocationSchema) Size() int      { return s.inner.Size() }
func (s *LocationSchema) Alignment() int { return s.inner.Alignment() }
func (s *LocationSchema) Kind() Kind     { return KindOverride }

func (s *LocationSchema) Resolve(ctx resolve.Ctx) (string, error) {
	return ctx.Resolve(s.inner)
}

func (s *LocationSchema) ResolveReferences(resolve.Ctx) error {
	return recursiveDataType(s)
}

func (s *LocationSchema) Write(w *Writer, v any) error { return s.inner.Write(w, v) }
func (s *LocationSchema) Read(r *Reader) (any, error)  { return s.inner.Read(r) }

func (s *LocationSchema) Measure(v any, m *Measurer) *Measurer {
	return s.inner.Measure(v, m)
}

// attributes is the attribute list of a struct member.
type attributes struct {
	text     []string
	builtin  bool
	located  bool
	location int
}

// fieldAttributes collects the attributes of a member type, outermost
// first: Size(32, Align(32, Vec4f)) yields "@size(32) @align(32)".
func fieldAttributes(s Schema) attributes {
	var attrs attributes
	for {
		switch t := s.(type) {
		case *SizedSchema:
			attrs.text = append(attrs.text, fmt.Sprintf("@size(%d)", t.size))
		case *AlignedSchema:
			attrs.text = append(attrs.text, fmt.Sprintf("@align(%d)", t.align))
		case *LocationSchema:
			attrs.text = append(attrs.text, fmt.Sprintf("@location(%d)", t.location))
			if !attrs.located {
				attrs.location = t.location
				attrs.located = true
			}
		case *BuiltinSchema:
			attrs.text = append(attrs.text, "@builtin("+t.value.name+")")
			attrs.builtin = true
		default:
			return attrs
		}
		s = s.(wrapper).Inner()
	}
}
