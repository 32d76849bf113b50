// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func strictContext() *Context {
	return NewContext(Options{Names: NewStrictNameRegistry()})
}

// fakeBuffer is a minimal bindable used to exercise binding bookkeeping.
type fakeBuffer struct {
	label string
	usage Usage
}

func (b *fakeBuffer) Label() string { return b.label }
func (b *fakeBuffer) Usage() Usage  { return b.usage }

func (b *fakeBuffer) Resolve(ctx Ctx) (string, error) {
	name, err := ctx.NameFor(b)
	if err != nil {
		return "", err
	}
	idx := ctx.AddBinding(b)
	decl := Code("@group(", int(ctx.BindingGroup()), ") @binding(", int(idx), ") var<",
		b.usage.AddressSpace(), "> ", name, ": f32;")
	if err := ctx.AddDeclaration(decl); err != nil {
		return "", err
	}
	return name, nil
}

// selfRef refers to itself through a code fragment.
type selfRef struct {
	body *CodeFragment
}

func (s *selfRef) Resolve(ctx Ctx) (string, error) {
	return ctx.Resolve(s.body)
}

// valueItem is a non-pointer resolvable with a slice field, which makes
// it unusable as an identity key.
type valueItem struct {
	parts []string
}

func (v valueItem) Resolve(Ctx) (string, error) {
	return strings.Join(v.parts, ""), nil
}

func TestContext_IdentityDedup(t *testing.T) {
	ctx := strictContext()

	intensity := Const("0.5").Named("intensity")
	root := Code("let a = ", intensity, ";\nlet b = ", intensity, ";")

	code, err := ctx.Emit(root)
	require.NoError(t, err)

	assert.Equal(t, "const intensity = 0.5;\nlet a = intensity;\nlet b = intensity;", code)
	assert.Equal(t, 1, strings.Count(code, "const intensity"))
}

func TestContext_DistinctIdentities(t *testing.T) {
	ctx := NewContext(DefaultOptions())

	a := Const("1").Named("x")
	b := Const("1").Named("x")

	code, err := ctx.Emit(Code(a, " + ", b))
	require.NoError(t, err)

	decls := ctx.Declarations()
	require.Len(t, decls, 2)
	assert.NotEqual(t, decls[0], decls[1])
	assert.Len(t, strings.Split(code, "\n"), 3)
}

func TestContext_DependencyOrder(t *testing.T) {
	ctx := strictContext()

	scale := Const("2.0").Named("scale")
	double := Fn("(x: f32) -> f32 { return x * ", scale, "; }").Named("double")
	main := ComputeFn(64, 1, 1, "() { let v = ", double, "(1.0); }").Named("main")

	code, err := ctx.Emit(main)
	require.NoError(t, err)

	want := strings.Join([]string{
		"const scale = 2.0;",
		"fn double(x: f32) -> f32 { return x * scale; }",
		"@compute @workgroup_size(64, 1, 1) fn main() { let v = double(1.0); }",
		"main",
	}, "\n")
	assert.Equal(t, want, code)
}

func TestContext_EntryPointAttributes(t *testing.T) {
	tests := []struct {
		fn   *FnDecl
		want string
	}{
		{VertexFn("() -> @builtin(position) vec4f { return vec4f(); }").Named("vs"),
			"@vertex fn vs() -> @builtin(position) vec4f { return vec4f(); }"},
		{FragmentFn("() -> @location(0) vec4f { return vec4f(1.0); }").Named("fs"),
			"@fragment fn fs() -> @location(0) vec4f { return vec4f(1.0); }"},
		{Fn("() {}").Named("helper"), "fn helper() {}"},
	}

	for _, tt := range tests {
		t.Run(tt.fn.Stage().String(), func(t *testing.T) {
			ctx := strictContext()
			name, err := ctx.Resolve(tt.fn)
			require.NoError(t, err)
			assert.Equal(t, tt.fn.Label(), name)
			assert.Equal(t, []string{tt.want}, ctx.Declarations())
		})
	}
}

func TestContext_Bindings(t *testing.T) {
	ctx := NewContext(Options{Names: NewStrictNameRegistry(), BindingGroup: 2})

	a := &fakeBuffer{label: "a", usage: UsageUniform}
	b := &fakeBuffer{label: "b", usage: UsageMutable}

	code, err := ctx.Emit(Code(b, " ", a, " ", b))
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"@group(2) @binding(0) var<storage, read_write> b: f32;",
		"@group(2) @binding(1) var<uniform> a: f32;",
		"b a b",
	}, "\n"), code)

	used := ctx.UsedBindables()
	require.Len(t, used, 2)
	assert.Same(t, b, used[0])
	assert.Same(t, a, used[1])
	assert.Equal(t, uint32(0), ctx.AddBinding(b))
}

func TestContext_CyclicDependency(t *testing.T) {
	ctx := strictContext()

	s := &selfRef{}
	s.body = Code("x", s)

	_, err := ctx.Emit(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicDependency)
}

func TestContext_Unresolvable(t *testing.T) {
	ctx := strictContext()

	_, err := ctx.Resolve(valueItem{parts: []string{"a"}})
	assert.ErrorIs(t, err, ErrUnresolvable)

	_, err = ctx.Resolve(nil)
	assert.ErrorIs(t, err, ErrUnresolvable)

	_, err = ctx.Emit(Code(struct{}{}))
	assert.ErrorIs(t, err, ErrUnresolvable)
}

func TestContext_NameCollision(t *testing.T) {
	ctx := strictContext()

	_, err := ctx.Emit(Code(Ident().Named("x"), Ident().Named("x")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNameCollision)
}

func TestContext_UnnamedStrict(t *testing.T) {
	ctx := strictContext()

	_, err := ctx.Emit(Ident())
	assert.ErrorIs(t, err, ErrUnnamed)
}

func TestContext_NameIsStable(t *testing.T) {
	ctx := NewContext(DefaultOptions())
	id := Ident().Named("pos")

	first, err := ctx.NameFor(id)
	require.NoError(t, err)
	second, err := ctx.NameFor(id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, "pos_"))
	assert.True(t, ctx.Seen(id))
	assert.False(t, ctx.Seen(Ident()))
}

func TestContext_FailedResolveCanRetry(t *testing.T) {
	ctx := strictContext()

	v := Var(SpaceWorkgroup, Code("f32"), "1.0").Named("shared")
	_, err := ctx.Resolve(v)
	assert.ErrorIs(t, err, ErrUnresolvable)

	_, err = ctx.Resolve(v)
	assert.ErrorIs(t, err, ErrUnresolvable)
	assert.NotErrorIs(t, err, ErrCyclicDependency)
}

func TestContext_VarDecl(t *testing.T) {
	ctx := strictContext()

	counter := Var(SpacePrivate, Code("u32"), uint32(0)).Named("counter")
	tile := Var(SpaceWorkgroup, Code("array<f32, 64>")).Named("tile")

	code, err := ctx.Emit(Code(counter, " ", tile))
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"var<private> counter: u32 = 0u;",
		"var<workgroup> tile: array<f32, 64>;",
		"counter tile",
	}, "\n"), code)
}

func TestContext_RawDeclaration(t *testing.T) {
	ctx := strictContext()
	d := Declare("enable f16;")

	code, err := ctx.Emit(Code(d, "x", d))
	require.NoError(t, err)
	assert.Equal(t, "enable f16;\nx", code)
}

func TestContext_ResolveReferences(t *testing.T) {
	ctx := strictContext()
	assert.NoError(t, ctx.ResolveReferences(Ident().Named("x")))
}

func TestContext_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := NewContext(Options{
		Names:  NewStrictNameRegistry(),
		Logger: zap.New(core),
	})

	_, err := ctx.Emit(Const("1").Named("one"))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("assigned name").Len())
	assert.Equal(t, 1, logs.FilterMessage("added declaration").Len())
	assert.Equal(t, 1, logs.FilterMessage("emitted shader").Len())
}

func TestCode_Literals(t *testing.T) {
	ctx := strictContext()

	code, err := ctx.Emit(Code(1, " ", int32(-2), " ", uint32(3), " ", float32(4), " ",
		1.5, " ", true, " ", []any{"a", "b"}, " ", UsageReadonly))
	require.NoError(t, err)
	assert.Equal(t, "1 -2 3u 4.0 1.5 true ab readonly_storage", code)
}

func TestErrorMessageFormat(t *testing.T) {
	err := NewError(ErrNameCollision, `"x" is already taken`)
	assert.Equal(t, `resolve NameCollision: "x" is already taken`, err.Error())
	assert.Equal(t, "resolve Unnamed", NewError(ErrUnnamed, "").Error())
}

func TestContext_LabelsOverrideOnlyUnnamed(t *testing.T) {
	anon := Ident()
	named := Ident().Named("kept")
	ctx := NewContext(Options{
		Names:  NewStrictNameRegistry(),
		Labels: map[Resolvable]string{anon: "given", named: "ignored"},
	})

	code, err := ctx.Emit(Code(anon, " ", named))
	require.NoError(t, err)
	assert.Equal(t, "given kept", code)
	assert.Empty(t, anon.Label())
}
