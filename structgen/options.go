// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import (
	"fmt"

	"go.uber.org/zap"
)

// Dialect selects the language of the generated schema code.
type Dialect uint8

const (
	// DialectGo emits package-level data.Struct declarations.
	DialectGo Dialect = iota

	// DialectJS emits d.struct({...}) constants for the TypeGPU
	// JavaScript library.
	DialectJS
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectGo:
		return "go"
	case DialectJS:
		return "js"
	default:
		return "unknown"
	}
}

// ParseDialect parses a dialect name. "ts" selects DialectJS with type
// annotations, "js" selects it without.
func ParseDialect(name string) (d Dialect, typed bool, err error) {
	switch name {
	case "go":
		return DialectGo, false, nil
	case "ts":
		return DialectJS, true, nil
	case "js":
		return DialectJS, false, nil
	}
	return 0, false, fmt.Errorf("structgen: unknown dialect %q (want go, js or ts)", name)
}

// Options configures code generation.
type Options struct {
	// Dialect is the output language.
	Dialect Dialect

	// Typed adds TypeScript annotations to JavaScript generator
	// functions: (arrayLength: number) instead of (arrayLength).
	Typed bool

	// Namespace is the identifier the schema constructors are reached
	// through. Defaults to "d" for JavaScript and "data" for Go.
	Namespace string

	// Package is the Go package clause written by File.
	Package string

	// Constants supplies integer constants usable as array lengths in
	// addition to the module's own const declarations.
	Constants map[string]int

	// Logger overrides the package logger.
	Logger *zap.Logger
}

// DefaultOptions returns options generating TypeScript.
func DefaultOptions() Options {
	return Options{
		Dialect: DialectJS,
		Typed:   true,
	}
}

func (o Options) namespace() string {
	if o.Namespace != "" {
		return o.Namespace
	}
	if o.Dialect == DialectGo {
		return "data"
	}
	return "d"
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}
