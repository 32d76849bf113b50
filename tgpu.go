// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package tgpu builds WGSL shaders from typed data schemas and code
// fragments.
//
// Schemas (package data) describe host-shareable memory, resolvables
// (package resolve) describe shader text, and this package ties them
// together:
//   - Resolve and ResolveWithOptions turn items into WGSL source.
//   - Build additionally collects the buffers a shader binds and assigns
//     their binding indices.
//
// Example usage:
//
//	Particle := data.Struct(
//		data.Field("position", data.Vec2f),
//		data.Field("velocity", data.Vec2f),
//	).Named("Particle")
//
//	particles := tgpu.NewBuffer(data.ArrayOf(Particle, 1024)).Named("particles")
//
//	main := resolve.ComputeFn(64, 1, 1,
//		"(@builtin(global_invocation_id) id: vec3u) {\n",
//		"  ", particles.AsMutable(), "[id.x].position += 0.01;\n",
//		"}").Named("main")
//
//	program, err := tgpu.Build(main, tgpu.BuildOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The resulting Program carries the shader code and the bindings, which
// package gpu turns into wgpu bind group layouts and bind groups.
package tgpu

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/gogpu/tgpu/resolve"
)

// ResolveOptions configures ResolveWithOptions.
type ResolveOptions struct {
	// Template is the root: a string, a resolve.Resolvable, or a []any or
	// []string of those, treated as sibling items.
	Template any

	// Externals maps identifiers used in template strings to the items
	// they stand for. Unnamed namable items are named after their key
	// within this resolution; the items are not modified.
	Externals map[string]any

	// Names assigns identifiers. Defaults to a strict registry so that
	// labels appear verbatim in the output.
	Names resolve.NameRegistry

	// Logger overrides the resolve package logger.
	Logger *zap.Logger
}

// Resolve resolves items in one context and returns the WGSL text.
// Several items are siblings: they share naming and deduplication and
// their texts are separated by newlines.
func Resolve(items ...any) (string, error) {
	var template any = items
	if len(items) == 1 {
		template = items[0]
	}
	return ResolveWithOptions(ResolveOptions{Template: template})
}

// ResolveWithOptions resolves opts.Template, substituting externals.
func ResolveWithOptions(opts ResolveOptions) (string, error) {
	if opts.Names == nil {
		opts.Names = resolve.NewStrictNameRegistry()
	}

	labels := make(map[resolve.Resolvable]string)
	for key, ext := range opts.Externals {
		if n, ok := ext.(resolve.Namable); ok && n.Label() == "" {
			if r, ok := ext.(resolve.Resolvable); ok && reflect.TypeOf(r).Comparable() {
				labels[r] = key
			}
		}
	}

	parts, err := templateParts(opts.Template, opts.Externals)
	if err != nil {
		return "", err
	}

	ctx := resolve.NewContext(resolve.Options{
		Names:  opts.Names,
		Logger: opts.Logger,
		Labels: labels,
	})
	code, err := ctx.Emit(resolve.Code(parts...))
	if err != nil {
		return "", fmt.Errorf("resolve: %w", err)
	}
	return strings.TrimRight(code, "\n"), nil
}

// identifierPattern matches WGSL identifiers in template text.
var identifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// declaration stands for a named item in a template. The item's
// declarations are emitted but its name is not, so resolving a function
// or a struct yields just its declaration.
type declaration struct {
	item resolve.Resolvable
}

func (d *declaration) Resolve(ctx resolve.Ctx) (string, error) {
	_, err := ctx.Resolve(d.item)
	return "", err
}

// templateParts flattens a template into code parts, newline separating
// sibling items.
func templateParts(template any, externals map[string]any) ([]any, error) {
	switch t := template.(type) {
	case nil:
		return nil, nil
	case string:
		return substitute(t, externals), nil
	case []string:
		items := make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
		return templateParts(items, externals)
	case []any:
		var parts []any
		for i, item := range t {
			if i > 0 {
				parts = append(parts, "\n")
			}
			sub, err := templateParts(item, externals)
			if err != nil {
				return nil, err
			}
			parts = append(parts, sub...)
		}
		return parts, nil
	case resolve.Namable:
		r, ok := t.(resolve.Resolvable)
		if !ok {
			return nil, resolve.NewErrorf(resolve.ErrUnresolvable, "cannot use %T as a template", template)
		}
		return []any{&declaration{item: r}}, nil
	case resolve.Resolvable:
		return []any{t}, nil
	default:
		return nil, resolve.NewErrorf(resolve.ErrUnresolvable, "cannot use %T as a template", template)
	}
}

// substitute splits text around identifiers that name externals.
func substitute(text string, externals map[string]any) []any {
	if len(externals) == 0 {
		return []any{text}
	}

	var parts []any
	last := 0
	for _, loc := range identifierPattern.FindAllStringIndex(text, -1) {
		ext, ok := externals[text[loc[0]:loc[1]]]
		if !ok {
			continue
		}
		parts = append(parts, text[last:loc[0]], ext)
		last = loc[1]
	}
	return append(parts, text[last:])
}
