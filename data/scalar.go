// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import (
	"math"

	"github.com/gogpu/tgpu/resolve"
)

type scalarType uint8

const (
	scalarF32 scalarType = iota
	scalarI32
	scalarU32
	scalarBool
)

// ScalarSchema is a 4-byte scalar.
type ScalarSchema struct {
	name string
	typ  scalarType
}

var (
	// F32 is a 32-bit float. Host values are float32.
	F32 = &ScalarSchema{name: "f32", typ: scalarF32}

	// I32 is a 32-bit signed integer. Host values are int32.
	I32 = &ScalarSchema{name: "i32", typ: scalarI32}

	// U32 is a 32-bit unsigned integer. Host values are uint32.
	U32 = &ScalarSchema{name: "u32", typ: scalarU32}

	// Bool is only valid in stage inputs and outputs, it is not
	// host-shareable. It is encoded as a u32 of 0 or 1.
	Bool = &ScalarSchema{name: "bool", typ: scalarBool}
)

func (s *ScalarSchema) Size() int      { return 4 }
func (s *ScalarSchema) Alignment() int { return 4 }
func (s *ScalarSchema) Kind() Kind     { return KindScalar }
func (s *ScalarSchema) String() string { return s.name }

// Resolve implements resolve.Resolvable.
func (s *ScalarSchema) Resolve(resolve.Ctx) (string, error) {
	return s.name, nil
}

// Write implements Serializable.
func (s *ScalarSchema) Write(w *Writer, v any) error {
	switch s.typ {
	case scalarF32:
		f, ok := asFloat32(v)
		if !ok {
			return mismatch(s, v)
		}
		w.WriteFloat32(f)
	case scalarI32:
		i, ok := asInt32(v)
		if !ok {
			return mismatch(s, v)
		}
		w.WriteInt32(i)
	case scalarU32:
		u, ok := asUint32(v)
		if !ok {
			return mismatch(s, v)
		}
		w.WriteUint32(u)
	case scalarBool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(s, v)
		}
		var u uint32
		if b {
			u = 1
		}
		w.WriteUint32(u)
	}
	return nil
}

// Read implements Serializable.
func (s *ScalarSchema) Read(r *Reader) (any, error) {
	switch s.typ {
	case scalarF32:
		return r.ReadFloat32(), nil
	case scalarI32:
		return r.ReadInt32(), nil
	case scalarBool:
		return r.ReadUint32() != 0, nil
	default:
		return r.ReadUint32(), nil
	}
}

// Measure implements Serializable.
func (s *ScalarSchema) Measure(_ any, m *Measurer) *Measurer {
	return m.Add(4)
}

func asFloat32(v any) (float32, bool) {
	switch x := v.(type) {
	case float32:
		return x, true
	case float64:
		return float32(x), true
	case int:
		return float32(x), true
	}
	return 0, false
}

func asInt32(v any) (int32, bool) {
	switch x := v.(type) {
	case int32:
		return x, true
	case int:
		if x < math.MinInt32 || x > math.MaxInt32 {
			return 0, false
		}
		return int32(x), true
	}
	return 0, false
}

func asUint32(v any) (uint32, bool) {
	switch x := v.(type) {
	case uint32:
		return x, true
	case uint:
		if uint64(x) > math.MaxUint32 {
			return 0, false
		}
		return uint32(x), true
	case int:
		if x < 0 || uint64(x) > math.MaxUint32 {
			return 0, false
		}
		return uint32(x), true
	}
	return 0, false
}
