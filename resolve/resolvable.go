// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

// Resolvable is anything that contributes text to a shader build:
// data types, code fragments, functions, constants, buffer usages.
//
// Resolvables are compared by identity. The same pointer reached twice
// within one build is resolved once and its text reused; two distinct
// pointers with identical content are resolved separately.
type Resolvable interface {
	Resolve(ctx Ctx) (string, error)
}

// Namable is implemented by resolvables that carry a user-facing label.
// The label is a naming hint for the NameRegistry.
type Namable interface {
	Label() string
}

// Labeler is a Namable whose label can be set after construction.
type Labeler interface {
	Namable
	SetLabel(label string)
}

// Referencer is implemented by items that can report the resolvables
// they refer to.
//
// Composite data types implement it and always fail with
// ErrRecursiveDataType: they are the deepest resolvable unit and never
// take part in further reference resolution.
type Referencer interface {
	ResolveReferences(ctx Ctx) error
}

// Usage describes how a bindable resource is accessed by a shader.
type Usage uint8

const (
	// UsageUniform binds the resource as a uniform buffer.
	UsageUniform Usage = iota

	// UsageReadonly binds the resource as a read-only storage buffer.
	UsageReadonly

	// UsageMutable binds the resource as a read-write storage buffer.
	UsageMutable
)

// String returns the usage name.
func (u Usage) String() string {
	switch u {
	case UsageUniform:
		return "uniform"
	case UsageReadonly:
		return "readonly_storage"
	case UsageMutable:
		return "mutable_storage"
	default:
		return "unknown"
	}
}

// AddressSpace returns the WGSL address space (with access mode) used to
// declare a variable bound with this usage.
func (u Usage) AddressSpace() string {
	switch u {
	case UsageReadonly:
		return "storage, read"
	case UsageMutable:
		return "storage, read_write"
	default:
		return "uniform"
	}
}

// Bindable is an externally owned resource referenced by a shader.
type Bindable interface {
	Resolvable
	Usage() Usage
}

// Ctx is the view of a resolution context handed to resolvables.
type Ctx interface {
	// Resolve returns the text for item, resolving it on first use.
	Resolve(item Resolvable) (string, error)

	// NameFor returns the identifier assigned to item in this build.
	NameFor(item Resolvable) (string, error)

	// AddDeclaration resolves decl and appends its text to the
	// module-scope declarations.
	AddDeclaration(decl Resolvable) error

	// AddBinding records b as used and returns its binding index.
	AddBinding(b Bindable) uint32

	// BindingGroup returns the bind group index of this build.
	BindingGroup() uint32
}
