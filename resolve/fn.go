// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import "fmt"

// Stage is the shader stage a function is an entry point for.
type Stage uint8

const (
	// StageNone marks a plain helper function.
	StageNone Stage = iota
	StageVertex
	StageFragment
	StageCompute
)

// String returns the stage attribute name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "none"
	}
}

// FnDecl is a WGSL function. The body starts right after the function
// name, so it includes the parameter list and return type:
//
//	resolve.Fn("(x: f32) -> f32 { return x * ", scale, "; }")
//
// Resolving a function declares it once and yields its name.
type FnDecl struct {
	label     string
	stage     Stage
	workgroup [3]uint32
	body      *CodeFragment
}

// Fn creates a helper function.
func Fn(body ...any) *FnDecl {
	return &FnDecl{body: Code(body...)}
}

// VertexFn creates a vertex entry point.
func VertexFn(body ...any) *FnDecl {
	return &FnDecl{stage: StageVertex, body: Code(body...)}
}

// FragmentFn creates a fragment entry point.
func FragmentFn(body ...any) *FnDecl {
	return &FnDecl{stage: StageFragment, body: Code(body...)}
}

// ComputeFn creates a compute entry point with the given workgroup size.
func ComputeFn(x, y, z uint32, body ...any) *FnDecl {
	return &FnDecl{
		stage:     StageCompute,
		workgroup: [3]uint32{x, y, z},
		body:      Code(body...),
	}
}

// Named sets the label and returns the function.
func (f *FnDecl) Named(label string) *FnDecl {
	f.label = label
	return f
}

// Label implements Namable.
func (f *FnDecl) Label() string { return f.label }

// SetLabel implements Labeler.
func (f *FnDecl) SetLabel(label string) { f.label = label }

// Stage returns the entry point stage.
func (f *FnDecl) Stage() Stage { return f.stage }

// Resolve implements Resolvable.
func (f *FnDecl) Resolve(ctx Ctx) (string, error) {
	name, err := ctx.NameFor(f)
	if err != nil {
		return "", err
	}

	var attr string
	switch f.stage {
	case StageVertex, StageFragment:
		attr = "@" + f.stage.String() + " "
	case StageCompute:
		attr = fmt.Sprintf("@compute @workgroup_size(%d, %d, %d) ",
			f.workgroup[0], f.workgroup[1], f.workgroup[2])
	}

	if err := ctx.AddDeclaration(Code(attr, "fn ", name, f.body)); err != nil {
		return "", err
	}
	return name, nil
}
