// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package tgpu

import (
	"fmt"

	"github.com/gogpu/tgpu/data"
	"github.com/gogpu/tgpu/resolve"
)

// Buffer is a typed GPU buffer description. The GPU allocation itself is
// owned by the caller; a Buffer only carries the schema and a label.
//
// A buffer is referenced from shader code through one of its usages.
// Each usage is created once per buffer, so referencing the same usage
// from several places declares a single binding.
type Buffer struct {
	schema data.Schema
	label  string

	uniform  *BufferUsage
	readonly *BufferUsage
	mutable  *BufferUsage
}

// NewBuffer creates a buffer holding values of schema.
func NewBuffer(schema data.Schema) *Buffer {
	b := &Buffer{schema: schema}
	b.uniform = &BufferUsage{buffer: b, usage: resolve.UsageUniform}
	b.readonly = &BufferUsage{buffer: b, usage: resolve.UsageReadonly}
	b.mutable = &BufferUsage{buffer: b, usage: resolve.UsageMutable}
	return b
}

// Named sets the label and returns the buffer.
func (b *Buffer) Named(label string) *Buffer {
	b.label = label
	return b
}

// Label returns the buffer label.
func (b *Buffer) Label() string { return b.label }

// Schema returns the schema of the buffer contents.
func (b *Buffer) Schema() data.Schema { return b.schema }

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int { return b.schema.Size() }

// AsUniform returns the buffer bound as var<uniform>.
func (b *Buffer) AsUniform() *BufferUsage { return b.uniform }

// AsReadonly returns the buffer bound as var<storage, read>.
func (b *Buffer) AsReadonly() *BufferUsage { return b.readonly }

// AsMutable returns the buffer bound as var<storage, read_write>.
func (b *Buffer) AsMutable() *BufferUsage { return b.mutable }

// Encode serializes v with the buffer schema.
func (b *Buffer) Encode(v any) ([]byte, error) {
	p, err := data.Serialize(b.schema, v)
	if err != nil {
		return nil, fmt.Errorf("buffer %q: %w", b.label, err)
	}
	return p, nil
}

// Decode deserializes buffer contents read back from the GPU.
func (b *Buffer) Decode(p []byte) (any, error) {
	v, err := data.Deserialize(b.schema, p)
	if err != nil {
		return nil, fmt.Errorf("buffer %q: %w", b.label, err)
	}
	return v, nil
}

// BufferUsage is a Buffer bound with a specific usage. It is the
// resolve.Bindable that shader code refers to.
type BufferUsage struct {
	buffer *Buffer
	usage  resolve.Usage
}

// Buffer returns the underlying buffer.
func (u *BufferUsage) Buffer() *Buffer { return u.buffer }

// Usage implements resolve.Bindable.
func (u *BufferUsage) Usage() resolve.Usage { return u.usage }

// Label implements resolve.Namable.
func (u *BufferUsage) Label() string { return u.buffer.label }

// Resolve declares the binding and returns the variable name.
func (u *BufferUsage) Resolve(ctx resolve.Ctx) (string, error) {
	if u.usage == resolve.UsageUniform && data.IsRuntimeSized(u.buffer.schema) {
		return "", resolve.NewErrorf(resolve.ErrUnresolvable,
			"buffer %q: runtime-sized data cannot be bound as uniform", u.buffer.label)
	}

	name, err := ctx.NameFor(u)
	if err != nil {
		return "", err
	}
	idx := ctx.AddBinding(u)

	decl := resolve.Code(
		"@group(", int(ctx.BindingGroup()), ") @binding(", int(idx), ") ",
		"var<", u.usage.AddressSpace(), "> ", name, ": ", u.buffer.schema, ";",
	)
	if err := ctx.AddDeclaration(decl); err != nil {
		return "", fmt.Errorf("buffer %q: %w", u.buffer.label, err)
	}
	return name, nil
}
