// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

// ConstDecl is a module-scope constant. Resolving it declares
// "const name = expr;" once and yields the name.
type ConstDecl struct {
	label string
	expr  *CodeFragment
}

// Const creates a constant from an expression.
func Const(expr ...any) *ConstDecl {
	return &ConstDecl{expr: Code(expr...)}
}

// Named sets the label and returns the constant.
func (c *ConstDecl) Named(label string) *ConstDecl {
	c.label = label
	return c
}

// Label implements Namable.
func (c *ConstDecl) Label() string { return c.label }

// SetLabel implements Labeler.
func (c *ConstDecl) SetLabel(label string) { c.label = label }

// Resolve implements Resolvable.
func (c *ConstDecl) Resolve(ctx Ctx) (string, error) {
	name, err := ctx.NameFor(c)
	if err != nil {
		return "", err
	}
	if err := ctx.AddDeclaration(Code("const ", name, " = ", c.expr, ";")); err != nil {
		return "", err
	}
	return name, nil
}

// AddressSpace is a module-scope variable address space that does not
// require a binding.
type AddressSpace string

const (
	SpacePrivate   AddressSpace = "private"
	SpaceWorkgroup AddressSpace = "workgroup"
)

// VarDecl is a module-scope private or workgroup variable.
type VarDecl struct {
	label string
	space AddressSpace
	typ   Resolvable
	init  *CodeFragment
}

// Var creates a variable of type typ. The optional init parts form the
// initializer expression; workgroup variables cannot have one.
func Var(space AddressSpace, typ Resolvable, init ...any) *VarDecl {
	v := &VarDecl{space: space, typ: typ}
	if len(init) > 0 {
		v.init = Code(init...)
	}
	return v
}

// Named sets the label and returns the variable.
func (v *VarDecl) Named(label string) *VarDecl {
	v.label = label
	return v
}

// Label implements Namable.
func (v *VarDecl) Label() string { return v.label }

// SetLabel implements Labeler.
func (v *VarDecl) SetLabel(label string) { v.label = label }

// Resolve implements Resolvable.
func (v *VarDecl) Resolve(ctx Ctx) (string, error) {
	if v.init != nil && v.space == SpaceWorkgroup {
		return "", NewErrorf(ErrUnresolvable, "workgroup variable %q cannot have an initializer", v.label)
	}

	name, err := ctx.NameFor(v)
	if err != nil {
		return "", err
	}

	parts := []any{"var<", string(v.space), "> ", name, ": ", v.typ}
	if v.init != nil {
		parts = append(parts, " = ", v.init)
	}
	parts = append(parts, ";")

	if err := ctx.AddDeclaration(Code(parts...)); err != nil {
		return "", err
	}
	return name, nil
}

// IdentDecl is a bare identifier. It declares nothing and resolves to
// the name the registry assigns it.
type IdentDecl struct {
	label string
}

// Ident creates an identifier.
func Ident() *IdentDecl {
	return &IdentDecl{}
}

// Named sets the label and returns the identifier.
func (i *IdentDecl) Named(label string) *IdentDecl {
	i.label = label
	return i
}

// Label implements Namable.
func (i *IdentDecl) Label() string { return i.label }

// SetLabel implements Labeler.
func (i *IdentDecl) SetLabel(label string) { i.label = label }

// Resolve implements Resolvable.
func (i *IdentDecl) Resolve(ctx Ctx) (string, error) {
	return ctx.NameFor(i)
}

// RawDecl is a module-scope declaration written verbatim. It resolves to
// an empty string; its text is emitted once among the declarations.
type RawDecl struct {
	body *CodeFragment
}

// Declare creates a raw declaration.
func Declare(parts ...any) *RawDecl {
	return &RawDecl{body: Code(parts...)}
}

// Resolve implements Resolvable.
func (d *RawDecl) Resolve(ctx Ctx) (string, error) {
	if err := ctx.AddDeclaration(d.body); err != nil {
		return "", err
	}
	return "", nil
}
