// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import "github.com/gogpu/tgpu/resolve"

// MatrixSchema is a square column-major f32 matrix. Host values are
// [C][R]float32, indexed by column first.
type MatrixSchema struct {
	name string
	dim  int
}

var (
	Mat2x2f = &MatrixSchema{name: "mat2x2f", dim: 2}
	Mat3x3f = &MatrixSchema{name: "mat3x3f", dim: 3}
	Mat4x4f = &MatrixSchema{name: "mat4x4f", dim: 4}
)

// Alignment returns the alignment of one column vector.
func (s *MatrixSchema) Alignment() int {
	if s.dim == 2 {
		return 8
	}
	return 16
}

// Size returns the column count times the padded column size.
func (s *MatrixSchema) Size() int {
	return s.dim * alignTo(4*s.dim, s.Alignment())
}

func (s *MatrixSchema) Kind() Kind     { return KindMatrix }
func (s *MatrixSchema) String() string { return s.name }

// Resolve implements resolve.Resolvable.
func (s *MatrixSchema) Resolve(resolve.Ctx) (string, error) {
	return s.name, nil
}

// Write implements Serializable.
func (s *MatrixSchema) Write(w *Writer, v any) error {
	cols, ok := s.columns(v)
	if !ok {
		return mismatch(s, v)
	}

	align := s.Alignment()
	alignCursor(w, align)
	for _, col := range cols {
		alignCursor(w, align)
		for _, f := range col {
			w.WriteFloat32(f)
		}
	}
	alignCursor(w, align)
	return nil
}

func (s *MatrixSchema) columns(v any) ([][]float32, bool) {
	var cols [][]float32
	switch x := v.(type) {
	case [2][2]float32:
		cols = [][]float32{x[0][:], x[1][:]}
	case [3][3]float32:
		cols = [][]float32{x[0][:], x[1][:], x[2][:]}
	case [4][4]float32:
		cols = [][]float32{x[0][:], x[1][:], x[2][:], x[3][:]}
	case [][]float32:
		cols = x
	default:
		return nil, false
	}
	if len(cols) != s.dim {
		return nil, false
	}
	for _, col := range cols {
		if len(col) != s.dim {
			return nil, false
		}
	}
	return cols, true
}

// Read implements Serializable.
func (s *MatrixSchema) Read(r *Reader) (any, error) {
	align := s.Alignment()
	alignCursor(r, align)

	var flat [4][4]float32
	for c := 0; c < s.dim; c++ {
		alignCursor(r, align)
		for row := 0; row < s.dim; row++ {
			flat[c][row] = r.ReadFloat32()
		}
	}
	alignCursor(r, align)

	switch s.dim {
	case 2:
		return [2][2]float32{
			{flat[0][0], flat[0][1]},
			{flat[1][0], flat[1][1]},
		}, nil
	case 3:
		return [3][3]float32{
			{flat[0][0], flat[0][1], flat[0][2]},
			{flat[1][0], flat[1][1], flat[1][2]},
			{flat[2][0], flat[2][1], flat[2][2]},
		}, nil
	default:
		return flat, nil
	}
}

// Measure implements Serializable.
func (s *MatrixSchema) Measure(_ any, m *Measurer) *Measurer {
	align := s.Alignment()
	alignCursor(m, align)
	for c := 0; c < s.dim; c++ {
		alignCursor(m, align)
		m.Add(4 * s.dim)
	}
	alignCursor(m, align)
	return m
}
