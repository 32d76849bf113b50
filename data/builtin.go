// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import "github.com/gogpu/tgpu/resolve"

// BuiltinValue is a WGSL built-in input or output value.
// It resolves to its builtin name.
type BuiltinValue struct {
	name   string
	schema Schema
}

var (
	BuiltinPosition             = &BuiltinValue{name: "position", schema: Vec4f}
	BuiltinVertexIndex          = &BuiltinValue{name: "vertex_index", schema: U32}
	BuiltinInstanceIndex        = &BuiltinValue{name: "instance_index", schema: U32}
	BuiltinFrontFacing          = &BuiltinValue{name: "front_facing", schema: Bool}
	BuiltinFragDepth            = &BuiltinValue{name: "frag_depth", schema: F32}
	BuiltinSampleIndex          = &BuiltinValue{name: "sample_index", schema: U32}
	BuiltinSampleMask           = &BuiltinValue{name: "sample_mask", schema: U32}
	BuiltinLocalInvocationID    = &BuiltinValue{name: "local_invocation_id", schema: Vec3u}
	BuiltinLocalInvocationIndex = &BuiltinValue{name: "local_invocation_index", schema: U32}
	BuiltinGlobalInvocationID   = &BuiltinValue{name: "global_invocation_id", schema: Vec3u}
	BuiltinWorkgroupID          = &BuiltinValue{name: "workgroup_id", schema: Vec3u}
	BuiltinNumWorkgroups        = &BuiltinValue{name: "num_workgroups", schema: Vec3u}
)

var builtinsByName = map[string]*BuiltinValue{}

func init() {
	for _, b := range []*BuiltinValue{
		BuiltinPosition, BuiltinVertexIndex, BuiltinInstanceIndex,
		BuiltinFrontFacing, BuiltinFragDepth, BuiltinSampleIndex,
		BuiltinSampleMask, BuiltinLocalInvocationID, BuiltinLocalInvocationIndex,
		BuiltinGlobalInvocationID, BuiltinWorkgroupID, BuiltinNumWorkgroups,
	} {
		builtinsByName[b.name] = b
	}
}

// LookupBuiltin returns the builtin with the given WGSL name.
func LookupBuiltin(name string) (*BuiltinValue, bool) {
	b, ok := builtinsByName[name]
	return b, ok
}

// Name returns the WGSL builtin name.
func (b *BuiltinValue) Name() string { return b.name }

// Schema returns the type of the builtin.
func (b *BuiltinValue) Schema() Schema { return b.schema }

// Resolve implements resolve.Resolvable.
func (b *BuiltinValue) Resolve(resolve.Ctx) (string, error) {
	return b.name, nil
}

// BuiltinSchema is a struct member bound to a builtin value. It has the
// layout of the builtin's type.
type BuiltinSchema struct {
	value *BuiltinValue
}

// Builtin creates a member schema for b.
func Builtin(b *BuiltinValue) *BuiltinSchema {
	return &BuiltinSchema{value: b}
}

// Value returns the builtin.
func (s *BuiltinSchema) Value() *BuiltinValue { return s.value }

// Inner returns the builtin's type.
func (s *BuiltinSchema) Inner() Schema { return s.value.schema }

func (s *BuiltinSchema) Size() int      { return s.value.schema.Size() }
func (s *BuiltinSchema) Alignment() int { return s.value.schema.Alignment() }
func (s *BuiltinSchema) Kind() Kind     { return KindOverride }

func (s *BuiltinSchema) Resolve(ctx resolve.Ctx) (string, error) {
	return ctx.Resolve(s.value.schema)
}

func (s *BuiltinSchema) ResolveReferences(resolve.Ctx) error {
	return recursiveDataType(s)
}

func (s *BuiltinSchema) Write(w *Writer, v any) error { return s.value.schema.Write(w, v) }
func (s *BuiltinSchema) Read(r *Reader) (any, error)  { return s.value.schema.Read(r) }

func (s *BuiltinSchema) Measure(v any, m *Measurer) *Measurer {
	return s.value.schema.Measure(v, m)
}
