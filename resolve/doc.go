// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package resolve turns a graph of shader items into WGSL text.
//
// Every item taking part in a build implements Resolvable. A Context walks
// the graph depth-first starting at a root item: dependencies resolve
// first and push their module-scope declarations, so the emitted text is
// always in dependency order. Items are deduplicated by identity, meaning
// the same pointer reached through several paths is declared once.
//
// # Naming
//
// Identifiers come from a NameRegistry chosen per build:
//   - RandomNameRegistry appends a random suffix to every label, so
//     equal labels never collide. This is the default.
//   - StrictNameRegistry uses labels verbatim and reports collisions,
//     reserved words and unnamed items as errors.
//
// # Usage
//
//	scale := resolve.Const("2.0").Named("scale")
//	main := resolve.Fn("(x: f32) -> f32 { return x * ", scale, "; }").Named("main")
//
//	ctx := resolve.NewContext(resolve.Options{Names: resolve.NewStrictNameRegistry()})
//	code, err := ctx.Emit(main)
//	// const scale = 2.0;
//	// fn main(x: f32) -> f32 { return x * scale; }
//	// main
//
// # Bindings
//
// Bindable resources call AddBinding while resolving. Binding indices
// follow the order in which resources are first encountered, within the
// bind group given by Options.BindingGroup.
package resolve
