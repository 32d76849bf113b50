// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import (
	"github.com/gogpu/naga/wgsl"

	"github.com/gogpu/tgpu/data"
)

// primitives maps WGSL aliases to their schemas.
var primitives = map[string]data.Schema{
	"f32": data.F32, "i32": data.I32, "u32": data.U32,
	"vec2f": data.Vec2f, "vec3f": data.Vec3f, "vec4f": data.Vec4f,
	"vec2i": data.Vec2i, "vec3i": data.Vec3i, "vec4i": data.Vec4i,
	"vec2u": data.Vec2u, "vec3u": data.Vec3u, "vec4u": data.Vec4u,
	"mat2x2f": data.Mat2x2f, "mat3x3f": data.Mat3x3f, "mat4x4f": data.Mat4x4f,
}

// layout is the size and alignment of a member type. Sizes are unknown
// for runtime-sized types and for structs emitted by another generator.
type layout struct {
	size  int
	align int
	known bool
}

func schemaLayout(s data.Schema) layout {
	return layout{size: s.Size(), align: s.Alignment(), known: true}
}

func arrayLayout(elem layout, n int) layout {
	if !elem.known {
		return layout{}
	}
	return layout{size: roundUp(elem.size, elem.align) * n, align: elem.align, known: true}
}

// structLayout places members in order and rounds the span up to the
// largest member alignment.
func structLayout(members []layout) layout {
	offset, align := 0, 1
	for _, m := range members {
		if !m.known {
			return layout{}
		}
		offset = roundUp(offset, m.align) + m.size
		align = max(align, m.align)
	}
	return layout{size: roundUp(offset, align), align: align, known: true}
}

func roundUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// declaredSchema returns the schema of a builtin member's declared type.
func declaredSchema(t wgsl.Type) (data.Schema, bool) {
	named, ok := t.(*wgsl.NamedType)
	if !ok {
		return nil, false
	}
	if named.Name == "bool" && len(named.TypeParams) == 0 {
		return data.Bool, true
	}
	alias, ok := primitiveAlias(named)
	if !ok {
		return nil, false
	}
	return primitives[alias], true
}
