// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package structgen turns WGSL struct declarations into source code that
// builds the equivalent schemas, either as Go code using package data or
// as JavaScript/TypeScript for the TypeGPU library.
//
// Structs holding a runtime-sized array become single-argument generator
// functions taking the array length:
//
//	struct Triangles {
//	    tris: array<Triangle>,
//	}
//
// generates (TypeScript dialect)
//
//	const Triangles = (arrayLength: number) => d.struct({
//	  tris: d.arrayOf(Triangle, arrayLength),
//	});
package structgen

import (
	"strconv"
	"strings"

	"github.com/gogpu/naga/wgsl"
	"go.uber.org/zap"

	"github.com/gogpu/tgpu/data"
)

// Emitted records the structs generated so far. The value reports
// whether the struct became a generator function.
type Emitted map[string]bool

// Generate emits every struct of module in dependency order, separated
// by blank lines.
func Generate(module *wgsl.Module, opts Options) (string, error) {
	structs, err := dependencyOrder(module.Structs)
	if err != nil {
		return "", err
	}

	g := newGenerator(opts, moduleConstants(module), Emitted{})
	parts := make([]string, 0, len(structs))
	for _, s := range structs {
		code, err := g.structDecl(s)
		if err != nil {
			return "", err
		}
		parts = append(parts, code)
	}
	return strings.Join(parts, "\n"), nil
}

// GenerateSource parses source and generates its structs.
func GenerateSource(source string, opts Options) (string, error) {
	module, err := Parse(source)
	if err != nil {
		return "", err
	}
	return Generate(module, opts)
}

// GenerateStruct emits one struct. Member types may refer to the structs
// in emitted; on success decl is added to it.
func GenerateStruct(decl *wgsl.StructDecl, emitted Emitted, opts Options) (string, error) {
	return newGenerator(opts, nil, emitted).structDecl(decl)
}

// File returns a complete source file: the dialect's header followed by
// the generated structs.
func File(module *wgsl.Module, opts Options) (string, error) {
	code, err := Generate(module, opts)
	if err != nil {
		return "", err
	}
	return Header(opts) + "\n" + code, nil
}

// Header returns the file preamble of the dialect: a package clause and
// import for Go, an import of the data namespace for JavaScript.
func Header(opts Options) string {
	ns := opts.namespace()
	if opts.Dialect != DialectGo {
		return "import * as " + ns + " from 'typegpu/data';\n"
	}

	pkg := opts.Package
	if pkg == "" {
		pkg = "shaders"
	}
	imp := strconv.Quote("github.com/gogpu/tgpu/data")
	if ns != "data" {
		imp = ns + " " + imp
	}
	return "// Code generated by tgpugen. DO NOT EDIT.\n\npackage " + pkg + "\n\nimport " + imp + "\n"
}

type generator struct {
	w       writer
	log     *zap.Logger
	consts  map[string]int
	emitted Emitted
	layouts map[string]layout
}

func newGenerator(opts Options, consts map[string]int, emitted Emitted) *generator {
	all := make(map[string]int, len(consts)+len(opts.Constants))
	for k, v := range consts {
		all[k] = v
	}
	for k, v := range opts.Constants {
		all[k] = v
	}
	if emitted == nil {
		emitted = Emitted{}
	}
	return &generator{
		w:       newWriter(opts),
		log:     opts.logger(),
		consts:  all,
		emitted: emitted,
		layouts: make(map[string]layout),
	}
}

// memberAttrs are the layout attributes of one member.
type memberAttrs struct {
	align    int
	size     int
	location int
	located  bool
	builtin  string
}

// memberType is a rendered member type. runtime reports that it depends
// on the array length parameter.
type memberType struct {
	expr    string
	runtime bool
	layout  layout
}

func (g *generator) structDecl(decl *wgsl.StructDecl) (string, error) {
	attrs := make([]memberAttrs, len(decl.Members))
	taken := make(map[int]string)
	io := false
	for i, m := range decl.Members {
		a, err := parseAttributes(m.Attributes)
		if err != nil {
			return "", inMember(err, decl.Name, m.Name)
		}
		if a.located {
			if other, dup := taken[a.location]; dup {
				return "", inMember(errorf(ErrInvalidAttribute, "@location(%d) is already used by %s", a.location, other), decl.Name, m.Name)
			}
			taken[a.location] = m.Name
		}
		attrs[i] = a
		io = io || a.located || a.builtin != ""
	}

	members := make([]member, len(decl.Members))
	layouts := make([]layout, len(decl.Members))
	isGenerator := false
	location := 0
	for i, m := range decl.Members {
		a := attrs[i]
		last := i == len(decl.Members)-1

		if a.builtin != "" {
			l, err := builtinMember(a.builtin, m.Type)
			if err != nil {
				return "", inMember(err, decl.Name, m.Name)
			}
			members[i] = member{name: m.Name, expr: g.w.builtin(a.builtin)}
			layouts[i] = l
			continue
		}

		t, err := g.typeExpr(m.Type, last)
		if err != nil {
			return "", inMember(err, decl.Name, m.Name)
		}
		isGenerator = isGenerator || t.runtime
		expr, l := t.expr, t.layout
		if a.align > 0 {
			expr = g.w.align(a.align, expr)
			l.align = max(l.align, a.align)
		}
		if a.size > 0 {
			if t.runtime {
				return "", inMember(errorf(ErrInvalidAttribute, "@size on runtime-sized %s", typeString(m.Type)), decl.Name, m.Name)
			}
			if l.known && a.size < l.size {
				return "", inMember(errorf(ErrInvalidAttribute, "@size(%d) is smaller than %s (%d bytes)", a.size, typeString(m.Type), l.size), decl.Name, m.Name)
			}
			expr = g.w.size(a.size, expr)
			l.size = a.size
		}
		switch {
		case a.located:
			expr = g.w.location(a.location, expr)
		case io:
			for taken[location] != "" {
				location++
			}
			expr = g.w.location(location, expr)
			location++
		}
		members[i] = member{name: m.Name, expr: expr}
		layouts[i] = l
	}

	g.emitted[decl.Name] = isGenerator
	if !isGenerator {
		g.layouts[decl.Name] = structLayout(layouts)
	}
	g.log.Debug("generated struct",
		zap.String("name", decl.Name),
		zap.Int("members", len(members)),
		zap.Bool("generator", isGenerator))
	return g.w.structDecl(decl.Name, isGenerator, members), nil
}

// builtinMember checks that a builtin member is declared with the
// builtin's own type.
func builtinMember(name string, t wgsl.Type) (layout, error) {
	b, _ := data.LookupBuiltin(name)
	if s, ok := declaredSchema(t); !ok || s != b.Schema() {
		return layout{}, errorf(ErrInvalidAttribute, "@builtin(%s) must be declared %s, not %s", name, b.Schema(), typeString(t))
	}
	return schemaLayout(b.Schema()), nil
}

// typeExpr renders a member type. Only the last member may depend on the
// array length parameter.
func (g *generator) typeExpr(t wgsl.Type, last bool) (memberType, error) {
	switch t := t.(type) {
	case *wgsl.ArrayType:
		elem, err := g.typeExpr(t.Element, false)
		if err != nil {
			return memberType{}, err
		}
		if elem.runtime {
			return memberType{}, errorf(ErrInvalidArrayLength, "array element %s is runtime-sized", typeString(t.Element))
		}
		if t.Size == nil {
			if !last {
				return memberType{}, errorf(ErrInvalidArrayLength, "runtime-sized %s must be the last member", typeString(t))
			}
			return memberType{expr: g.w.runtimeArray(elem.expr), runtime: true, layout: layout{align: elem.layout.align}}, nil
		}
		n, err := g.arrayLength(t.Size)
		if err != nil {
			return memberType{}, err
		}
		return memberType{expr: g.w.arrayOf(elem.expr, n), layout: arrayLayout(elem.layout, n)}, nil

	case *wgsl.NamedType:
		if alias, ok := primitiveAlias(t); ok {
			return memberType{expr: g.w.primitive(alias), layout: schemaLayout(primitives[alias])}, nil
		}
		if t.Name == "atomic" && len(t.TypeParams) == 1 {
			if p, ok := t.TypeParams[0].(*wgsl.NamedType); ok && (p.Name == "i32" || p.Name == "u32") && len(p.TypeParams) == 0 {
				return memberType{expr: g.w.atomic(g.w.primitive(p.Name)), layout: schemaLayout(primitives[p.Name])}, nil
			}
			return memberType{}, errorf(ErrUnrecognizedType, "%s: atomics hold i32 or u32", typeString(t))
		}
		if len(t.TypeParams) == 0 {
			if gen, ok := g.emitted[t.Name]; ok {
				if gen && !last {
					return memberType{}, errorf(ErrInvalidArrayLength, "runtime-sized struct %s must be the last member", t.Name)
				}
				return memberType{expr: g.w.structRef(t.Name, gen), runtime: gen, layout: g.layouts[t.Name]}, nil
			}
		}
	}
	return memberType{}, errorf(ErrUnrecognizedType, "unrecognized type %s", typeString(t))
}

func (g *generator) arrayLength(e wgsl.Expr) (int, error) {
	var n int
	switch e := e.(type) {
	case *wgsl.Literal:
		v, ok := intLiteral(e)
		if !ok {
			return 0, errorf(ErrInvalidArrayLength, "array length %q is not an integer", e.Value)
		}
		n = v
	case *wgsl.Ident:
		v, ok := g.consts[e.Name]
		if !ok {
			return 0, errorf(ErrInvalidArrayLength, "array length %s is not an integer constant", e.Name)
		}
		n = v
	default:
		return 0, errorf(ErrInvalidArrayLength, "array length must be a literal or a constant")
	}
	if n <= 0 {
		return 0, errorf(ErrInvalidArrayLength, "array length must be positive, got %d", n)
	}
	return n, nil
}

func parseAttributes(attrs []wgsl.Attribute) (memberAttrs, error) {
	var a memberAttrs
	for _, attr := range attrs {
		switch attr.Name {
		case "align", "size", "location":
			n, ok := intArg(attr)
			if !ok || n < 0 || (n == 0 && attr.Name != "location") {
				return a, errorf(ErrInvalidAttribute, "@%s needs a positive integer argument", attr.Name)
			}
			switch attr.Name {
			case "align":
				if n&(n-1) != 0 {
					return a, errorf(ErrInvalidAttribute, "@align(%d) is not a power of two", n)
				}
				a.align = n
			case "size":
				a.size = n
			default:
				a.location = n
				a.located = true
			}
		case "builtin":
			if len(attr.Args) != 1 {
				return a, errorf(ErrInvalidAttribute, "@builtin needs one argument")
			}
			id, ok := attr.Args[0].(*wgsl.Ident)
			if !ok {
				return a, errorf(ErrInvalidAttribute, "@builtin argument must be a builtin name")
			}
			if _, known := data.LookupBuiltin(id.Name); !known {
				return a, errorf(ErrInvalidAttribute, "unknown builtin %q", id.Name)
			}
			a.builtin = id.Name
		}
	}
	if a.builtin != "" && (a.align > 0 || a.size > 0 || a.located) {
		return a, errorf(ErrInvalidAttribute, "@builtin(%s) takes no layout or location attributes", a.builtin)
	}
	return a, nil
}

func intArg(attr wgsl.Attribute) (int, bool) {
	if len(attr.Args) != 1 {
		return 0, false
	}
	lit, ok := attr.Args[0].(*wgsl.Literal)
	if !ok {
		return 0, false
	}
	return intLiteral(lit)
}

func intLiteral(lit *wgsl.Literal) (int, bool) {
	if lit.Kind != wgsl.TokenIntLiteral {
		return 0, false
	}
	v := strings.TrimRight(lit.Value, "iu")
	n, err := strconv.ParseInt(v, 0, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// moduleConstants collects the integer const declarations of module.
func moduleConstants(module *wgsl.Module) map[string]int {
	consts := make(map[string]int)
	for _, c := range module.Constants {
		if lit, ok := c.Init.(*wgsl.Literal); ok {
			if n, ok := intLiteral(lit); ok {
				consts[c.Name] = n
			}
		}
	}
	return consts
}

// primitiveAlias returns the short WGSL alias of a scalar, vector or
// matrix type: vec3<f32> and vec3f both give "vec3f".
func primitiveAlias(t *wgsl.NamedType) (string, bool) {
	if len(t.TypeParams) == 0 {
		switch t.Name {
		case "f32", "i32", "u32",
			"vec2f", "vec3f", "vec4f",
			"vec2i", "vec3i", "vec4i",
			"vec2u", "vec3u", "vec4u",
			"mat2x2f", "mat3x3f", "mat4x4f":
			return t.Name, true
		}
		return "", false
	}

	if len(t.TypeParams) != 1 {
		return "", false
	}
	p, ok := t.TypeParams[0].(*wgsl.NamedType)
	if !ok || len(p.TypeParams) != 0 {
		return "", false
	}
	switch t.Name {
	case "vec2", "vec3", "vec4":
		switch p.Name {
		case "f32", "i32", "u32":
			return t.Name + p.Name[:1], true
		}
	case "mat2x2", "mat3x3", "mat4x4":
		if p.Name == "f32" {
			return t.Name + "f", true
		}
	}
	return "", false
}

// typeString renders a type back to WGSL for error messages.
func typeString(t wgsl.Type) string {
	switch t := t.(type) {
	case *wgsl.NamedType:
		if len(t.TypeParams) == 0 {
			return t.Name
		}
		params := make([]string, len(t.TypeParams))
		for i, p := range t.TypeParams {
			params[i] = typeString(p)
		}
		return t.Name + "<" + strings.Join(params, ", ") + ">"
	case *wgsl.ArrayType:
		if t.Size == nil {
			return "array<" + typeString(t.Element) + ">"
		}
		size := "?"
		switch s := t.Size.(type) {
		case *wgsl.Literal:
			size = s.Value
		case *wgsl.Ident:
			size = s.Name
		}
		return "array<" + typeString(t.Element) + ", " + size + ">"
	case *wgsl.PtrType:
		return "ptr<" + t.AddressSpace + ", " + typeString(t.PointeeType) + ">"
	case nil:
		return "<nil>"
	}
	return "?"
}

func inMember(err error, structName, memberName string) error {
	if e, ok := err.(*Error); ok {
		e.Struct = structName
		e.Member = memberName
		return e
	}
	return err
}
