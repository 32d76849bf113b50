// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data

import (
	"strings"
	"testing"

	"github.com/gogpu/tgpu/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitStrict(t *testing.T, root resolve.Resolvable) string {
	t.Helper()
	ctx := resolve.NewContext(resolve.Options{Names: resolve.NewStrictNameRegistry()})
	code, err := ctx.Emit(root)
	require.NoError(t, err)
	return code
}

func TestResolveTypeNames(t *testing.T) {
	tests := []struct {
		schema Schema
		want   string
	}{
		{F32, "f32"},
		{U32, "u32"},
		{Bool, "bool"},
		{Vec3f, "vec3f"},
		{Vec2i, "vec2i"},
		{Vec4u, "vec4u"},
		{Mat4x4f, "mat4x4f"},
		{ArrayOf(Vec2f, 8), "array<vec2f, 8>"},
		{RuntimeArray(U32, 8), "array<u32>"},
		{ArrayOf(ArrayOf(F32, 2), 3), "array<array<f32, 2>, 3>"},
		{Atomic(U32), "atomic<u32>"},
		{Align(16, F32), "f32"},
		{Size(16, Vec2f), "vec2f"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, emitStrict(t, tt.schema))
		})
	}
}

func TestResolveStructAttributes(t *testing.T) {
	boid := Struct(
		Field("position", Size(32, Align(32, Vec4f))),
		Field("velocity", Size(64, Vec2f)),
	).Named("Boid")

	want := strings.Join([]string{
		"struct Boid {",
		"  @size(32) @align(32) position: vec4f,",
		"  @size(64) velocity: vec2f,",
		"}",
		"",
		"Boid",
	}, "\n")
	assert.Equal(t, want, emitStrict(t, boid))
}

func TestResolveNestedStructOrder(t *testing.T) {
	light := Struct(Field("dir", Vec3f), Field("intensity", F32)).Named("Light")
	scene := Struct(
		Field("sun", light),
		Field("lamps", ArrayOf(light, 4)),
		Field("count", Atomic(U32)),
	).Named("Scene")

	code := emitStrict(t, scene)

	want := strings.Join([]string{
		"struct Light {",
		"  dir: vec3f,",
		"  intensity: f32,",
		"}",
		"",
		"struct Scene {",
		"  sun: Light,",
		"  lamps: array<Light, 4>,",
		"  count: atomic<u32>,",
		"}",
		"",
		"Scene",
	}, "\n")
	assert.Equal(t, want, code)
	assert.Equal(t, 1, strings.Count(code, "struct Light"))
}

func TestResolveIOStructLocations(t *testing.T) {
	out := IOStruct(
		Field("pos", Builtin(BuiltinPosition)),
		Field("uv", Vec2f),
		Field("instance", Builtin(BuiltinInstanceIndex)),
		Field("color", Vec4f),
	).Named("VertexOut")

	want := strings.Join([]string{
		"struct VertexOut {",
		"  @builtin(position) pos: vec4f,",
		"  @location(0) uv: vec2f,",
		"  @builtin(instance_index) instance: u32,",
		"  @location(1) color: vec4f,",
		"}",
		"",
		"VertexOut",
	}, "\n")
	assert.Equal(t, want, emitStrict(t, out))
}

func TestResolveIOStructExplicitLocation(t *testing.T) {
	in := IOStruct(
		Field("a", Location(5, Vec4f)),
		Field("b", F32),
	).Named("FragIn")

	code := emitStrict(t, in)
	assert.Contains(t, code, "  @location(5) a: vec4f,\n")
	assert.Contains(t, code, "  @location(0) b: f32,\n")
}

func TestResolveIOStructAutoLocationsSkipExplicit(t *testing.T) {
	tests := []struct {
		name   string
		fields []StructField
		want   []string
	}{
		{
			name:   "explicit first",
			fields: []StructField{Field("a", Location(0, Vec4f)), Field("b", F32)},
			want:   []string{"  @location(0) a: vec4f,\n", "  @location(1) b: f32,\n"},
		},
		{
			name: "explicit in the middle",
			fields: []StructField{
				Field("a", Vec2f),
				Field("b", Location(1, Vec4f)),
				Field("c", F32),
			},
			want: []string{"  @location(0) a: vec2f,\n", "  @location(1) b: vec4f,\n", "  @location(2) c: f32,\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := emitStrict(t, IOStruct(tt.fields...).Named("Varyings"))
			for _, line := range tt.want {
				assert.Contains(t, code, line)
			}
		})
	}
}

func TestIOStructDuplicateLocation(t *testing.T) {
	_, err := NewIOStruct(Field("a", Location(2, Vec4f)), Field("b", Location(2, F32)))
	require.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "share @location(2)")
}

func TestResolvePlainStructHasNoLocations(t *testing.T) {
	s := Struct(Field("a", Vec4f), Field("b", Builtin(BuiltinPosition))).Named("Plain")
	code := emitStrict(t, s)
	assert.NotContains(t, code, "@location")
	assert.Contains(t, code, "@builtin(position) b: vec4f")
}

func TestResolveRandomNames(t *testing.T) {
	s := Struct(Field("a", F32)).Named("Thing")
	ctx := resolve.NewContext(resolve.DefaultOptions())

	name, err := ctx.Resolve(s)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "Thing_"), "name = %q", name)

	again, err := ctx.Resolve(s)
	require.NoError(t, err)
	assert.Equal(t, name, again)
	assert.Len(t, ctx.Declarations(), 1)
}

func TestResolveUnnamedStructStrict(t *testing.T) {
	ctx := resolve.NewContext(resolve.Options{Names: resolve.NewStrictNameRegistry()})
	_, err := ctx.Resolve(Struct(Field("a", F32)))
	assert.ErrorIs(t, err, resolve.ErrUnnamed)
}

func TestBuiltinValues(t *testing.T) {
	b, ok := LookupBuiltin("global_invocation_id")
	require.True(t, ok)
	assert.Same(t, BuiltinGlobalInvocationID, b)
	assert.Equal(t, Schema(Vec3u), b.Schema())
	assert.Equal(t, "global_invocation_id", emitStrict(t, b))

	_, ok = LookupBuiltin("nope")
	assert.False(t, ok)
}
