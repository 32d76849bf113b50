// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import (
	"fmt"
	"strings"

	"github.com/gogpu/tgpu/resolve"
)

// StructField is one named member of a struct.
type StructField struct {
	Name string
	Type Schema
}

// Field creates a struct field.
func Field(name string, typ Schema) StructField {
	return StructField{Name: name, Type: typ}
}

// StructSchema is a WGSL struct. Host values are Records.
//
// Offsets, alignment and size are fixed at construction. The label is
// the only mutable part and must be set before the schema is shared.
type StructSchema struct {
	label       string
	fields      []StructField
	offsets     []int
	align       int
	size        int
	io          bool
	runtimeTail bool
}

// NewStruct creates a struct with fields in declared order.
func NewStruct(fields ...StructField) (*StructSchema, error) {
	return newStruct(false, fields)
}

// Struct is like NewStruct but panics on error.
func Struct(fields ...StructField) *StructSchema {
	return must(NewStruct(fields...))
}

// NewIOStruct creates a struct used for stage inputs or outputs. When
// resolved, every field that is neither a builtin nor carries an
// explicit location receives @location(0), @location(1), ... in
// declared order.
func NewIOStruct(fields ...StructField) (*StructSchema, error) {
	return newStruct(true, fields)
}

// IOStruct is like NewIOStruct but panics on error.
func IOStruct(fields ...StructField) *StructSchema {
	return must(NewIOStruct(fields...))
}

func newStruct(io bool, fields []StructField) (*StructSchema, error) {
	if len(fields) == 0 {
		return nil, NewError(ErrEmptyStruct, "struct must have at least one field")
	}

	seen := make(map[string]struct{}, len(fields))
	locations := make(map[int]string)
	align := 1
	for i, f := range fields {
		if f.Type == nil {
			return nil, NewErrorf(ErrInvalidField, "field %q has no type", f.Name)
		}
		if !resolve.IsValidIdentifier(f.Name) {
			return nil, NewErrorf(ErrInvalidField, "field name %q is not a valid identifier", f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, NewErrorf(ErrInvalidField, "duplicate field %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		if attrs := fieldAttributes(f.Type); attrs.located {
			if other, dup := locations[attrs.location]; dup {
				return nil, NewErrorf(ErrInvalidField, "fields %q and %q share @location(%d)", other, f.Name, attrs.location)
			}
			locations[attrs.location] = f.Name
		}

		if i < len(fields)-1 && IsRuntimeSized(f.Type) {
			return nil, NewErrorf(ErrUnsizedTail, "runtime-sized field %q must be the last field", f.Name)
		}
		align = max(align, f.Type.Alignment())
	}

	s := &StructSchema{
		fields:      append([]StructField(nil), fields...),
		align:       align,
		io:          io,
		runtimeTail: IsRuntimeSized(fields[len(fields)-1].Type),
	}

	m := &Measurer{}
	s.offsets = make([]int, len(fields))
	alignCursor(m, align)
	for i, f := range s.fields {
		alignCursor(m, f.Type.Alignment())
		s.offsets[i] = m.Offset()
		f.Type.Measure(MaxValue, m)
	}
	alignCursor(m, align)
	s.size = m.Size()

	return s, nil
}

// Named sets the label and returns the struct.
func (s *StructSchema) Named(label string) *StructSchema {
	s.label = label
	return s
}

// Label implements resolve.Namable.
func (s *StructSchema) Label() string { return s.label }

// SetLabel implements resolve.Labeler.
func (s *StructSchema) SetLabel(label string) { s.label = label }

func (s *StructSchema) Size() int      { return s.size }
func (s *StructSchema) Alignment() int { return s.align }
func (s *StructSchema) Kind() Kind     { return KindStruct }

// IsIO reports whether the struct was created with NewIOStruct.
func (s *StructSchema) IsIO() bool { return s.io }

// Fields returns the fields in declared order.
func (s *StructSchema) Fields() []StructField {
	return append([]StructField(nil), s.fields...)
}

// Offsets returns the byte offset of each field.
func (s *StructSchema) Offsets() []int {
	return append([]int(nil), s.offsets...)
}

// Offset returns the byte offset of the named field.
func (s *StructSchema) Offset(name string) (int, bool) {
	for i, f := range s.fields {
		if f.Name == name {
			return s.offsets[i], true
		}
	}
	return 0, false
}

func (s *StructSchema) String() string {
	if s.label != "" {
		return s.label
	}
	return "struct"
}

// Resolve declares the struct and returns its name.
func (s *StructSchema) Resolve(ctx resolve.Ctx) (string, error) {
	name, err := ctx.NameFor(s)
	if err != nil {
		return "", err
	}

	parts := []any{"struct ", name, " {\n"}
	next := autoLocations(s.fields)
	for _, f := range s.fields {
		attrs := fieldAttributes(f.Type)
		if s.io && !attrs.builtin && !attrs.located {
			attrs.text = append([]string{fmt.Sprintf("@location(%d)", next())}, attrs.text...)
		}

		parts = append(parts, "  ")
		if len(attrs.text) > 0 {
			parts = append(parts, strings.Join(attrs.text, " "), " ")
		}
		parts = append(parts, f.Name, ": ", f.Type, ",\n")
	}
	parts = append(parts, "}\n")

	if err := ctx.AddDeclaration(resolve.Code(parts...)); err != nil {
		return "", fmt.Errorf("struct %s: %w", name, err)
	}
	return name, nil
}

// autoLocations returns a generator of the location indices not taken
// by an explicit @location, in increasing order.
func autoLocations(fields []StructField) func() int {
	taken := make(map[int]bool)
	for _, f := range fields {
		if attrs := fieldAttributes(f.Type); attrs.located {
			taken[attrs.location] = true
		}
	}
	n := 0
	return func() int {
		for taken[n] {
			n++
		}
		n++
		return n - 1
	}
}

// ResolveReferences always fails: structs are resolved as a unit.
func (s *StructSchema) ResolveReferences(resolve.Ctx) error {
	return recursiveDataType(s)
}

func (s *StructSchema) record(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case Record:
		return x, true
	case map[string]any:
		return x, true
	}
	return nil, false
}

// Write implements Serializable.
func (s *StructSchema) Write(w *Writer, v any) error {
	rec, ok := s.record(v)
	if !ok {
		return mismatch(s, v)
	}

	alignCursor(w, s.align)
	for _, f := range s.fields {
		fv, ok := rec[f.Name]
		if !ok {
			return NewErrorf(ErrValueMismatch, "%s: missing field %q", s, f.Name)
		}
		alignCursor(w, f.Type.Alignment())
		if err := f.Type.Write(w, fv); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	alignCursor(w, s.align)
	return nil
}

// Read implements Serializable.
func (s *StructSchema) Read(r *Reader) (any, error) {
	alignCursor(r, s.align)
	rec := make(Record, len(s.fields))
	for _, f := range s.fields {
		alignCursor(r, f.Type.Alignment())
		v, err := f.Type.Read(r)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		rec[f.Name] = v
	}
	alignCursor(r, s.align)
	return rec, nil
}

// Measure implements Serializable.
func (s *StructSchema) Measure(v any, m *Measurer) *Measurer {
	rec, _ := s.record(v)

	alignCursor(m, s.align)
	for _, f := range s.fields {
		fv, ok := rec[f.Name]
		if !ok {
			fv = MaxValue
		}
		alignCursor(m, f.Type.Alignment())
		f.Type.Measure(fv, m)
	}
	alignCursor(m, s.align)
	return m
}
