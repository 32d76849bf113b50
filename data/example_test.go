// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package data_test

import (
	"fmt"

	"github.com/gogpu/tgpu/data"
)

// ExampleStruct demonstrates computing a struct layout.
func ExampleStruct() {
	light := data.Struct(
		data.Field("color", data.Vec3f),
		data.Field("intensity", data.F32),
		data.Field("direction", data.Vec3f),
	).Named("Light")

	fmt.Println(light.Offsets(), light.Alignment(), light.Size())
	// Output: [0 12 16] 16 32
}

// ExampleSerialize demonstrates encoding a host value.
func ExampleSerialize() {
	particle := data.Struct(
		data.Field("position", data.Vec2f),
		data.Field("mass", data.F32),
	)

	b, err := data.Serialize(particle, data.Record{
		"position": [2]float32{1, 2},
		"mass":     float32(0.5),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(b), b[8:12])
	// Output: 16 [0 0 0 63]
}

// ExampleUnsizedStruct demonstrates binding a runtime-sized struct.
func ExampleUnsizedStruct() {
	points := data.UnsizedStruct("items", data.RuntimeArrayOf(data.Vec2f),
		data.Field("count", data.U32)).Named("Points")

	for _, n := range []int{1, 10} {
		s, _ := points.Bind(n)
		fmt.Println(n, s.Size())
	}
	// Output:
	// 1 16
	// 10 88
}
