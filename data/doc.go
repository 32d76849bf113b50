// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package data describes WGSL data types and their host-shareable byte
// layout.
//
// Every Schema knows its size and alignment and can write, read and
// measure host values against a byte cursor. All three walks follow the
// WGSL "Alignment and Size" rules:
//
//	| Type          | Align | Size |
//	|---------------|-------|------|
//	| f32, i32, u32 | 4     | 4    |
//	| vec2<T>       | 8     | 8    |
//	| vec3<T>       | 16    | 12   |
//	| vec4<T>       | 16    | 16   |
//	| mat2x2f       | 8     | 16   |
//	| mat3x3f       | 16    | 48   |
//	| mat4x4f       | 16    | 64   |
//
// Arrays use a stride of roundUp(elemAlign, elemSize). Structs align to
// their largest member and round their size up to that alignment.
//
// # Host values
//
// Scalars map to float32, int32 and uint32. Vectors are [N]T arrays,
// matrices [C][R]float32 in column-major order, structs are Records and
// arrays are slices. Reading always yields these canonical forms, with
// arrays read back as []any.
//
// # Overrides
//
// Align and Size mirror the @align and @size member attributes. They only
// ever widen a type:
//
//	particle := data.Struct(
//		data.Field("position", data.Size(32, data.Align(32, data.Vec4f))),
//		data.Field("velocity", data.Size(64, data.Vec2f)),
//	).Named("Particle")
//
// # Runtime-sized arrays
//
// A runtime-sized array has no size until it is bound to an element count.
// RuntimeArrayOf and UnsizedStruct return Unsized values which produce a
// concrete schema per count; the array still resolves as array<T>.
package data
