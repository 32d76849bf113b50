// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import "github.com/gogpu/tgpu/resolve"

// component is a vector component type.
type component interface {
	float32 | int32 | uint32
}

// VectorSchema is a 2, 3 or 4 component vector. Host values are [N]T
// arrays; []T slices of the right length are accepted when writing.
type VectorSchema[T component] struct {
	name string
	n    int
}

var (
	Vec2f = &VectorSchema[float32]{name: "vec2f", n: 2}
	Vec3f = &VectorSchema[float32]{name: "vec3f", n: 3}
	Vec4f = &VectorSchema[float32]{name: "vec4f", n: 4}

	Vec2i = &VectorSchema[int32]{name: "vec2i", n: 2}
	Vec3i = &VectorSchema[int32]{name: "vec3i", n: 3}
	Vec4i = &VectorSchema[int32]{name: "vec4i", n: 4}

	Vec2u = &VectorSchema[uint32]{name: "vec2u", n: 2}
	Vec3u = &VectorSchema[uint32]{name: "vec3u", n: 3}
	Vec4u = &VectorSchema[uint32]{name: "vec4u", n: 4}
)

// Size returns 4 bytes per component.
func (s *VectorSchema[T]) Size() int { return 4 * s.n }

// Alignment returns 8 for vec2 and 16 for vec3 and vec4.
func (s *VectorSchema[T]) Alignment() int {
	if s.n == 2 {
		return 8
	}
	return 16
}

func (s *VectorSchema[T]) Kind() Kind     { return KindVector }
func (s *VectorSchema[T]) String() string { return s.name }

// Len returns the number of components.
func (s *VectorSchema[T]) Len() int { return s.n }

// Resolve implements resolve.Resolvable.
func (s *VectorSchema[T]) Resolve(resolve.Ctx) (string, error) {
	return s.name, nil
}

// Write implements Serializable.
func (s *VectorSchema[T]) Write(w *Writer, v any) error {
	comps, ok := s.components(v)
	if !ok {
		return mismatch(s, v)
	}
	for _, c := range comps {
		writeComponent(w, c)
	}
	return nil
}

func (s *VectorSchema[T]) components(v any) ([]T, bool) {
	var comps []T
	switch x := v.(type) {
	case [2]T:
		comps = x[:]
	case [3]T:
		comps = x[:]
	case [4]T:
		comps = x[:]
	case []T:
		comps = x
	default:
		return nil, false
	}
	return comps, len(comps) == s.n
}

// Read implements Serializable.
func (s *VectorSchema[T]) Read(r *Reader) (any, error) {
	switch s.n {
	case 2:
		return [2]T{readComponent[T](r), readComponent[T](r)}, nil
	case 3:
		return [3]T{readComponent[T](r), readComponent[T](r), readComponent[T](r)}, nil
	default:
		return [4]T{readComponent[T](r), readComponent[T](r), readComponent[T](r), readComponent[T](r)}, nil
	}
}

// Measure implements Serializable.
func (s *VectorSchema[T]) Measure(_ any, m *Measurer) *Measurer {
	return m.Add(s.Size())
}

func writeComponent[T component](w *Writer, c T) {
	switch x := any(c).(type) {
	case float32:
		w.WriteFloat32(x)
	case int32:
		w.WriteInt32(x)
	case uint32:
		w.WriteUint32(x)
	}
}

func readComponent[T component](r *Reader) T {
	var v any
	switch any(*new(T)).(type) {
	case float32:
		v = r.ReadFloat32()
	case int32:
		v = r.ReadInt32()
	default:
		v = r.ReadUint32()
	}
	return v.(T)
}
