// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package tgpu

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gogpu/tgpu/resolve"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// BindingGroup is the @group index of every binding (default: 0).
	BindingGroup uint32

	// Names assigns identifiers. Defaults to a random registry, which
	// never collides.
	Names resolve.NameRegistry

	// Logger overrides the resolve package logger.
	Logger *zap.Logger
}

// Binding is one resource a program binds.
type Binding struct {
	// Index is the @binding index, assigned in first-encounter order.
	Index uint32

	// Usage is how the shader accesses the resource.
	Usage resolve.Usage

	// Resource is the bindable referenced by the shader.
	Resource resolve.Bindable

	// Buffer is the buffer behind Resource, or nil if Resource is not a
	// BufferUsage.
	Buffer *Buffer
}

// Program is a resolved shader together with its bindings.
type Program struct {
	// Code is the WGSL source.
	Code string

	// Group is the @group index of all bindings.
	Group uint32

	// Bindings lists the used resources ordered by binding index.
	Bindings []Binding
}

// Build resolves root and collects the resources it binds. A named root
// such as an entry point contributes only its declaration.
func Build(root resolve.Resolvable, opts BuildOptions) (*Program, error) {
	log := opts.Logger
	if log == nil {
		log = resolve.Logger()
	}

	ctx := resolve.NewContext(resolve.Options{
		Names:        opts.Names,
		BindingGroup: opts.BindingGroup,
		Logger:       log,
	})

	top := root
	if _, ok := root.(resolve.Namable); ok {
		top = &declaration{item: root}
	}
	code, err := ctx.Emit(top)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	code = strings.TrimRight(code, "\n")

	used := ctx.UsedBindables()
	p := &Program{
		Code:     code,
		Group:    opts.BindingGroup,
		Bindings: make([]Binding, len(used)),
	}
	for i, b := range used {
		binding := Binding{
			Index:    uint32(i),
			Usage:    b.Usage(),
			Resource: b,
		}
		if u, ok := b.(*BufferUsage); ok {
			binding.Buffer = u.Buffer()
		}
		p.Bindings[i] = binding
	}

	log.Info("built program",
		zap.Uint32("group", p.Group),
		zap.Int("bindings", len(p.Bindings)),
		zap.Int("code_bytes", len(p.Code)))
	return p, nil
}
