// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import "github.com/gogpu/tgpu/resolve"

// AtomicSchema is atomic<i32> or atomic<u32>. It has the layout and host
// values of the wrapped scalar.
type AtomicSchema struct {
	inner *ScalarSchema
}

// NewAtomic wraps s, which must be I32 or U32.
func NewAtomic(s Schema) (*AtomicSchema, error) {
	switch s {
	case Schema(I32), Schema(U32):
		return &AtomicSchema{inner: s.(*ScalarSchema)}, nil
	}
	if s == nil {
		return nil, NewError(ErrInvalidAtomic, "atomic target is nil")
	}
	return nil, NewErrorf(ErrInvalidAtomic, "atomic<%s> is not supported, use i32 or u32", describe(s))
}

// Atomic is like NewAtomic but panics on error.
func Atomic(s Schema) *AtomicSchema {
	return must(NewAtomic(s))
}

// Inner returns the wrapped scalar.
func (s *AtomicSchema) Inner() Schema { return s.inner }

func (s *AtomicSchema) Size() int      { return s.inner.Size() }
func (s *AtomicSchema) Alignment() int { return s.inner.Alignment() }
func (s *AtomicSchema) Kind() Kind     { return KindAtomic }
func (s *AtomicSchema) String() string { return "atomic<" + s.inner.name + ">" }

// Resolve implements resolve.Resolvable.
func (s *AtomicSchema) Resolve(ctx resolve.Ctx) (string, error) {
	inner, err := ctx.Resolve(s.inner)
	if err != nil {
		return "", err
	}
	return "atomic<" + inner + ">", nil
}

// ResolveReferences always fails: atomics are resolved as a unit.
func (s *AtomicSchema) ResolveReferences(resolve.Ctx) error {
	return recursiveDataType(s)
}

func (s *AtomicSchema) Write(w *Writer, v any) error { return s.inner.Write(w, v) }
func (s *AtomicSchema) Read(r *Reader) (any, error)  { return s.inner.Read(r) }

func (s *AtomicSchema) Measure(v any, m *Measurer) *Measurer {
	return s.inner.Measure(v, m)
}
