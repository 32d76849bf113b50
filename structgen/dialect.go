// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// member is one generated struct field.
type member struct {
	name string
	expr string
}

// writer renders schema expressions in one output language.
type writer interface {
	// primitive renders a scalar, vector or matrix by its WGSL alias
	// ("f32", "vec3f", "mat4x4f").
	primitive(alias string) string
	arrayOf(elem string, n int) string
	runtimeArray(elem string) string
	atomic(inner string) string
	align(n int, inner string) string
	size(n int, inner string) string
	location(n int, inner string) string
	builtin(name string) string
	structRef(name string, generator bool) string
	structDecl(name string, generator bool, members []member) string
}

const lengthParam = "arrayLength"

func newWriter(opts Options) writer {
	if opts.Dialect == DialectGo {
		return goWriter{ns: opts.namespace()}
	}
	return jsWriter{ns: opts.namespace(), typed: opts.Typed}
}

type jsWriter struct {
	ns    string
	typed bool
}

func (w jsWriter) primitive(alias string) string { return w.ns + "." + alias }

func (w jsWriter) arrayOf(elem string, n int) string {
	return fmt.Sprintf("%s.arrayOf(%s, %d)", w.ns, elem, n)
}

func (w jsWriter) runtimeArray(elem string) string {
	return fmt.Sprintf("%s.arrayOf(%s, %s)", w.ns, elem, lengthParam)
}

func (w jsWriter) atomic(inner string) string { return w.ns + ".atomic(" + inner + ")" }

func (w jsWriter) align(n int, inner string) string {
	return fmt.Sprintf("%s.align(%d, %s)", w.ns, n, inner)
}

func (w jsWriter) size(n int, inner string) string {
	return fmt.Sprintf("%s.size(%d, %s)", w.ns, n, inner)
}

func (w jsWriter) location(n int, inner string) string {
	return fmt.Sprintf("%s.location(%d, %s)", w.ns, n, inner)
}

func (w jsWriter) builtin(name string) string {
	return w.ns + ".builtin." + camelCase(name, false)
}

func (w jsWriter) structRef(name string, generator bool) string {
	if generator {
		return name + "(" + lengthParam + ")"
	}
	return name
}

func (w jsWriter) structDecl(name string, generator bool, members []member) string {
	var sb strings.Builder
	sb.WriteString("const ")
	sb.WriteString(name)
	sb.WriteString(" = ")
	if generator {
		if w.typed {
			sb.WriteString("(" + lengthParam + ": number) => ")
		} else {
			sb.WriteString("(" + lengthParam + ") => ")
		}
	}
	sb.WriteString(w.ns)
	sb.WriteString(".struct({\n")
	for _, m := range members {
		fmt.Fprintf(&sb, "  %s: %s,\n", m.name, m.expr)
	}
	sb.WriteString("});\n")
	return sb.String()
}

type goWriter struct {
	ns string
}

func (w goWriter) primitive(alias string) string {
	return w.ns + "." + strings.ToUpper(alias[:1]) + alias[1:]
}

func (w goWriter) arrayOf(elem string, n int) string {
	return fmt.Sprintf("%s.ArrayOf(%s, %d)", w.ns, elem, n)
}

func (w goWriter) runtimeArray(elem string) string {
	return fmt.Sprintf("%s.RuntimeArray(%s, %s)", w.ns, elem, lengthParam)
}

func (w goWriter) atomic(inner string) string { return w.ns + ".Atomic(" + inner + ")" }

func (w goWriter) align(n int, inner string) string {
	return fmt.Sprintf("%s.Align(%d, %s)", w.ns, n, inner)
}

func (w goWriter) size(n int, inner string) string {
	return fmt.Sprintf("%s.Size(%d, %s)", w.ns, n, inner)
}

func (w goWriter) location(n int, inner string) string {
	return fmt.Sprintf("%s.Location(%d, %s)", w.ns, n, inner)
}

func (w goWriter) builtin(name string) string {
	return fmt.Sprintf("%s.Builtin(%s.Builtin%s)", w.ns, w.ns, camelCase(name, true))
}

func (w goWriter) structRef(name string, generator bool) string {
	name = goIdent(name)
	if generator {
		return name + "(" + lengthParam + ")"
	}
	return name
}

func (w goWriter) structDecl(name string, generator bool, members []member) string {
	var sb strings.Builder
	indent := ""
	if generator {
		fmt.Fprintf(&sb, "func %s(%s int) *%s.StructSchema {\n\treturn ", goIdent(name), lengthParam, w.ns)
		indent = "\t"
	} else {
		fmt.Fprintf(&sb, "var %s = ", goIdent(name))
	}
	sb.WriteString(w.ns)
	sb.WriteString(".Struct(\n")
	for _, m := range members {
		fmt.Fprintf(&sb, "%s\t%s.Field(%s, %s),\n", indent, w.ns, strconv.Quote(m.name), m.expr)
	}
	fmt.Fprintf(&sb, "%s).Named(%s)\n", indent, strconv.Quote(name))
	if generator {
		sb.WriteString("}\n")
	}
	return sb.String()
}

// goIdent makes a WGSL identifier usable as a Go identifier.
func goIdent(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// camelCase converts a snake_case builtin name. Exported Go names spell
// "id" as "ID".
func camelCase(name string, exported bool) string {
	parts := strings.Split(name, "_")
	var sb strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 && !exported {
			sb.WriteString(p)
			continue
		}
		if exported && p == "id" {
			sb.WriteString("ID")
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return sb.String()
}
