// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func generateTS(t *testing.T, source string) string {
	t.Helper()
	code, err := GenerateSource(source, DefaultOptions())
	require.NoError(t, err)
	return code
}

func TestGenerateJS(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name: "plain",
			source: `
struct TriangleData {
  position: vec4f,
  velocity: vec2f,
  isRed: u32,
};`,
			want: `const TriangleData = d.struct({
  position: d.vec4f,
  velocity: d.vec2f,
  isRed: d.u32,
});`,
		},
		{
			name: "align and size",
			source: `
struct TriangleData {
  @align(32) @size(32) position: vec4f,
  @size(64) velocity: vec2f,
};`,
			want: `const TriangleData = d.struct({
  position: d.size(32, d.align(32, d.vec4f)),
  velocity: d.size(64, d.vec2f),
});`,
		},
		{
			name: "align and size on arrays",
			source: `
struct TriangleData {
  @align(32) @size(32) position: array<vec3f, 2>,
};`,
			want: `const TriangleData = d.struct({
  position: d.size(32, d.align(32, d.arrayOf(d.vec3f, 2))),
});`,
		},
		{
			name: "predeclared aliases",
			source: `
struct Data {
  a1: vec2<i32>,
  a2: vec3<i32>,
  a3: vec4<i32>,
  a4: vec2<u32>,
  a5: vec3<u32>,
  a6: vec4<u32>,
  a7: vec2<f32>,
  a8: vec3<f32>,
  a9: vec4<f32>,
};`,
			want: `const Data = d.struct({
  a1: d.vec2i,
  a2: d.vec3i,
  a3: d.vec4i,
  a4: d.vec2u,
  a5: d.vec3u,
  a6: d.vec4u,
  a7: d.vec2f,
  a8: d.vec3f,
  a9: d.vec4f,
});`,
		},
		{
			name: "nested structs",
			source: `
struct TriangleData {
  position: f32,
  @size(64) velocity: vec2f,
};

struct NewStruct {
  triangleData: TriangleData,
  triangleData2: TriangleData,
}`,
			want: `const TriangleData = d.struct({
  position: d.f32,
  velocity: d.size(64, d.vec2f),
});

const NewStruct = d.struct({
  triangleData: TriangleData,
  triangleData2: TriangleData,
});`,
		},
		{
			name: "array members",
			source: `
struct Vertex {
  vals: vec3 <f32>,
  _pad: f32,
};

struct Triangle {
  vertices: array<Vertex, 3>,
  color: array<u32, 7>,
};`,
			want: `const Vertex = d.struct({
  vals: d.vec3f,
  _pad: d.f32,
});

const Triangle = d.struct({
  vertices: d.arrayOf(Vertex, 3),
  color: d.arrayOf(d.u32, 7),
});`,
		},
		{
			name: "atomic members",
			source: `
struct NewStruct {
  atomicX: atomic<u32>,
}`,
			want: `const NewStruct = d.struct({
  atomicX: d.atomic(d.u32),
});`,
		},
		{
			name: "buffer-tied length",
			source: `
struct Vertex {
  vals: vec3 <f32>,
  _pad: f32,
};

struct Triangle {
  vertices: array<Vertex, 3>,
  color: array<u32, 3>,
};

@group(2) @binding(1)
var<storage, read> triangles: Triangles;

struct Triangles {
    tris : array<Triangle>,
};`,
			want: `const Triangles = (arrayLength: number) => d.struct({
  tris: d.arrayOf(Triangle, arrayLength),
});`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, generateTS(t, tt.source), tt.want)
		})
	}
}

func TestGenerateUntypedJS(t *testing.T) {
	source := `
struct Vertex {
  vals: vec3<f32>,
  _pad: f32,
};

struct Triangle {
  vertices: array<Vertex, 3>,
  color: array<u32, 3>,
};

@group(2) @binding(1)
var<storage, read> triangles: Triangles;

struct Triangles {
  tris: array<Triangle>,
};`

	code, err := GenerateSource(source, Options{Dialect: DialectJS})
	require.NoError(t, err)
	assert.Contains(t, code, `const Triangles = (arrayLength) => d.struct({
  tris: d.arrayOf(Triangle, arrayLength),
});`)
}

func TestGenerateUnrecognizedType(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unknown identifier", "struct NewStruct {\n    x: T,\n}"},
		{"texture", "struct S {\n    t: texture_2d<f32>,\n}"},
		{"f16 vector", "struct S {\n    v: vec3<f16>,\n}"},
		{"non-square matrix", "struct S {\n    m: mat2x3<f32>,\n}"},
		{"float atomic", "struct S {\n    a: atomic<f32>,\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := GenerateSource(tt.source, DefaultOptions())
			assert.ErrorIs(t, err, ErrUnrecognizedType)
			assert.Empty(t, code)
		})
	}
}

func TestGenerateErrorNamesMember(t *testing.T) {
	_, err := GenerateSource("struct Outer {\n  ok: f32,\n  bad: Missing,\n}", DefaultOptions())

	var genErr *Error
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "Outer", genErr.Struct)
	assert.Equal(t, "bad", genErr.Member)
	assert.Contains(t, genErr.Error(), "Outer.bad")
}

func TestGenerateDependencyOrder(t *testing.T) {
	source := `
struct Scene {
  lights: array<Light, 4>,
  camera: Camera,
}

struct Light {
  color: vec3f,
}

struct Camera {
  view: mat4x4f,
}`
	code := generateTS(t, source)

	light := strings.Index(code, "const Light")
	camera := strings.Index(code, "const Camera")
	scene := strings.Index(code, "const Scene")
	require.True(t, light >= 0 && camera >= 0 && scene >= 0)
	assert.Less(t, light, camera, "independent structs keep source order")
	assert.Less(t, camera, scene)
}

func TestGenerateRecursive(t *testing.T) {
	source := `
struct A {
  b: B,
}

struct B {
  a: array<A, 2>,
}`
	_, err := GenerateSource(source, DefaultOptions())
	assert.ErrorIs(t, err, ErrRecursiveDataType)
}

func TestGenerateArrayLengths(t *testing.T) {
	t.Run("module constant", func(t *testing.T) {
		code := generateTS(t, "const COUNT = 8u;\nstruct S {\n  v: array<f32, COUNT>,\n}")
		assert.Contains(t, code, "v: d.arrayOf(d.f32, 8),")
	})

	t.Run("option constant", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Constants = map[string]int{"N": 5}
		code, err := GenerateSource("struct S {\n  v: array<f32, N>,\n}", opts)
		require.NoError(t, err)
		assert.Contains(t, code, "v: d.arrayOf(d.f32, 5),")
	})

	t.Run("unknown constant", func(t *testing.T) {
		_, err := GenerateSource("struct S {\n  v: array<f32, N>,\n}", DefaultOptions())
		assert.ErrorIs(t, err, ErrInvalidArrayLength)
	})

	t.Run("zero", func(t *testing.T) {
		_, err := GenerateSource("struct S {\n  v: array<f32, 0>,\n}", DefaultOptions())
		assert.ErrorIs(t, err, ErrInvalidArrayLength)
	})

	t.Run("runtime array not last", func(t *testing.T) {
		_, err := GenerateSource("struct S {\n  v: array<f32>,\n  n: u32,\n}", DefaultOptions())
		assert.ErrorIs(t, err, ErrInvalidArrayLength)
	})
}

func TestGenerateNestedGenerator(t *testing.T) {
	source := `
struct Particles {
  count: u32,
  items: array<vec4f>,
}

struct World {
  time: f32,
  particles: Particles,
}`
	code := generateTS(t, source)
	assert.Contains(t, code, `const World = (arrayLength: number) => d.struct({
  time: d.f32,
  particles: Particles(arrayLength),
});`)

	_, err := GenerateSource(source+"\nstruct Bad {\n  w: World,\n  x: f32,\n}", DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidArrayLength)
}

func TestGenerateIOStruct(t *testing.T) {
	source := `
struct VertexOut {
  @builtin(position) position: vec4f,
  uv: vec2f,
  @location(5) color: vec4f,
  normal: vec3f,
}`
	code := generateTS(t, source)
	assert.Contains(t, code, `const VertexOut = d.struct({
  position: d.builtin.position,
  uv: d.location(0, d.vec2f),
  color: d.location(5, d.vec4f),
  normal: d.location(1, d.vec3f),
});`)
}

func TestGenerateAutoLocationsSkipExplicit(t *testing.T) {
	code := generateTS(t, `
struct Varyings {
  @location(0) a: vec4f,
  b: f32,
  @location(2) c: vec2f,
  d: vec3f,
  e: u32,
}`)
	assert.Contains(t, code, `const Varyings = d.struct({
  a: d.location(0, d.vec4f),
  b: d.location(1, d.f32),
  c: d.location(2, d.vec2f),
  d: d.location(3, d.vec3f),
  e: d.location(4, d.u32),
});`)
}

func TestGenerateSizeAtNaturalSize(t *testing.T) {
	code := generateTS(t, `
struct Inner {
  a: vec3f,
  b: f32,
}

struct Outer {
  @size(16) inner: Inner,
  @size(12) v: vec3f,
}`)
	assert.Contains(t, code, "inner: d.size(16, Inner),")
	assert.Contains(t, code, "v: d.size(12, d.vec3f),")
}

func TestErrorMessageFormat(t *testing.T) {
	_, err := GenerateSource("struct S {\n  @align(3) x: f32,\n}", DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, "structgen InvalidAttribute: S.x: @align(3) is not a power of two", err.Error())
}

func TestGenerateInvalidAttributes(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"unknown builtin", "struct S {\n  @builtin(nowhere) p: vec4f,\n}"},
		{"align without argument", "struct S {\n  @align x: f32,\n}"},
		{"zero size", "struct S {\n  @size(0) x: f32,\n}"},
		{"align not a power of two", "struct S {\n  @align(3) x: f32,\n}"},
		{"size below natural size", "struct S {\n  @size(2) x: vec4f,\n}"},
		{"size below array size", "struct S {\n  @size(16) x: array<vec3f, 2>,\n}"},
		{"size below struct size", "struct A {\n  m: mat4x4f,\n}\n\nstruct S {\n  @size(32) a: A,\n}"},
		{"size on runtime array", "struct S {\n  @size(64) x: array<f32>,\n}"},
		{"builtin with wrong type", "struct S {\n  @builtin(position) p: vec3f,\n}"},
		{"builtin with align", "struct S {\n  @builtin(position) @align(32) p: vec4f,\n}"},
		{"builtin with location", "struct S {\n  @builtin(vertex_index) @location(1) i: u32,\n}"},
		{"duplicate location", "struct S {\n  @location(1) a: f32,\n  @location(1) b: f32,\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSource(tt.source, DefaultOptions())
			assert.ErrorIs(t, err, ErrInvalidAttribute)
		})
	}
}

func TestGenerateGo(t *testing.T) {
	source := `
struct VertexOut {
  @builtin(position) position: vec4f,
  @builtin(front_facing) front: bool,
  uv: vec2f,
}

struct Cell {
  @align(16) alive: atomic<u32>,
  weights: array<mat2x2<f32>, 2>,
}

struct Grid {
  size: vec2u,
  cells: array<Cell>,
}`
	code, err := GenerateSource(source, Options{Dialect: DialectGo})
	require.NoError(t, err)

	want := `var VertexOut = data.Struct(
	data.Field("position", data.Builtin(data.BuiltinPosition)),
	data.Field("front", data.Builtin(data.BuiltinFrontFacing)),
	data.Field("uv", data.Location(0, data.Vec2f)),
).Named("VertexOut")

var Cell = data.Struct(
	data.Field("alive", data.Align(16, data.Atomic(data.U32))),
	data.Field("weights", data.ArrayOf(data.Mat2x2f, 2)),
).Named("Cell")

func Grid(arrayLength int) *data.StructSchema {
	return data.Struct(
		data.Field("size", data.Vec2u),
		data.Field("cells", data.RuntimeArray(Cell, arrayLength)),
	).Named("Grid")
}
`
	assert.Equal(t, want, code)
}

func TestGenerateGoKeywordName(t *testing.T) {
	code, err := GenerateSource("struct range {\n  x: f32,\n}\nstruct S {\n  r: range,\n}", Options{Dialect: DialectGo})
	require.NoError(t, err)
	assert.Contains(t, code, "var range_ = data.Struct(")
	assert.Contains(t, code, `data.Field("r", range_)`)
	assert.Contains(t, code, `.Named("range")`)
}

func TestGenerateStructIncremental(t *testing.T) {
	module, err := Parse("struct A {\n  x: f32,\n}\nstruct B {\n  a: A,\n}")
	require.NoError(t, err)
	require.Len(t, module.Structs, 2)

	emitted := Emitted{}
	_, err = GenerateStruct(module.Structs[1], emitted, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnrecognizedType)
	assert.Empty(t, emitted)

	_, err = GenerateStruct(module.Structs[0], emitted, DefaultOptions())
	require.NoError(t, err)
	code, err := GenerateStruct(module.Structs[1], emitted, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, code, "a: A,")
	assert.Equal(t, Emitted{"A": false, "B": false}, emitted)
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		typed   bool
	}{
		{"go", DialectGo, false},
		{"js", DialectJS, false},
		{"ts", DialectJS, true},
	}
	for _, tt := range tests {
		d, typed, err := ParseDialect(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.dialect, d)
		assert.Equal(t, tt.typed, typed)
	}

	_, _, err := ParseDialect("rust")
	assert.Error(t, err)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "import * as d from 'typegpu/data';\n", Header(DefaultOptions()))

	goHeader := Header(Options{Dialect: DialectGo, Package: "shaders"})
	assert.Contains(t, goHeader, "package shaders\n")
	assert.Contains(t, goHeader, `import "github.com/gogpu/tgpu/data"`)

	aliased := Header(Options{Dialect: DialectGo, Namespace: "d"})
	assert.Contains(t, aliased, `import d "github.com/gogpu/tgpu/data"`)
}

func TestParseError(t *testing.T) {
	_, err := GenerateSource("struct {", DefaultOptions())
	assert.ErrorIs(t, err, ErrParse)
}

func TestGenerateLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	_, err := GenerateSource("struct A {\n  x: f32,\n}", opts)
	require.NoError(t, err)

	entries := logs.FilterMessage("generated struct").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].ContextMap()["name"])
}
