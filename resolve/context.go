// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Options configures a resolution context.
type Options struct {
	// Names assigns identifiers. Defaults to a RandomNameRegistry.
	Names NameRegistry

	// BindingGroup is the @group index used for bindable declarations.
	BindingGroup uint32

	// Logger overrides the package logger for this context.
	Logger *zap.Logger

	// Labels supplies labels for unnamed Namable items in this context
	// only. The items themselves are left untouched.
	Labels map[Resolvable]string
}

// DefaultOptions returns options with a random name registry and group 0.
func DefaultOptions() Options {
	return Options{
		Names: NewRandomNameRegistry(),
	}
}

// Context orchestrates one build: it resolves a graph of items
// depth-first, deduplicates them by identity, collects module-scope
// declarations in dependency order and records used bindables.
//
// A Context is not safe for concurrent use and is meant to be discarded
// after Emit.
type Context struct {
	names  NameRegistry
	group  uint32
	log    *zap.Logger
	labels map[Resolvable]string

	arena        *arena
	declarations []string

	bindings     []Bindable
	bindingIndex map[Bindable]uint32
}

// NewContext creates a resolution context.
func NewContext(opts Options) *Context {
	if opts.Names == nil {
		opts.Names = NewRandomNameRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	return &Context{
		names:        opts.Names,
		group:        opts.BindingGroup,
		log:          log,
		labels:       opts.Labels,
		arena:        newArena(),
		bindingIndex: make(map[Bindable]uint32),
	}
}

// Resolve returns the text of item. The first call resolves the item
// (declaring its dependencies before it); later calls with the same item
// return the memoized text.
func (c *Context) Resolve(item Resolvable) (string, error) {
	if !identifiable(item) {
		return "", NewErrorf(ErrUnresolvable, "cannot resolve %T", item)
	}

	h := c.arena.getOrCreate(item)
	switch e := c.arena.get(h); e.state {
	case stateResolved:
		return e.text, nil
	case stateResolving:
		return "", NewErrorf(ErrCyclicDependency, "%s depends on itself", describe(item))
	}

	c.arena.get(h).state = stateResolving
	text, err := item.Resolve(c)
	if err != nil {
		c.arena.get(h).state = statePending
		return "", err
	}

	e := c.arena.get(h)
	e.text = text
	e.state = stateResolved
	return text, nil
}

// NameFor returns the identifier assigned to item, asking the name
// registry on first encounter.
func (c *Context) NameFor(item Resolvable) (string, error) {
	if !identifiable(item) {
		return "", NewErrorf(ErrUnresolvable, "cannot name %T", item)
	}

	h := c.arena.getOrCreate(item)
	if e := c.arena.get(h); e.named {
		return e.name, nil
	}

	var label string
	if n, ok := item.(Namable); ok {
		label = n.Label()
		if label == "" {
			label = c.labels[item]
		}
	}
	name, err := c.names.MakeUnique(label)
	if err != nil {
		return "", fmt.Errorf("naming %s: %w", describe(item), err)
	}

	e := c.arena.get(h)
	e.name = name
	e.named = true
	c.log.Debug("assigned name",
		zap.String("label", label),
		zap.String("name", name))
	return name, nil
}

// AddDeclaration resolves decl and appends its text to the declarations.
func (c *Context) AddDeclaration(decl Resolvable) error {
	text, err := c.Resolve(decl)
	if err != nil {
		return err
	}
	c.declarations = append(c.declarations, text)
	c.log.Debug("added declaration",
		zap.Int("index", len(c.declarations)-1),
		zap.Int("length", len(text)))
	return nil
}

// AddBinding records b as used. Bindables are indexed in first-encounter
// order; adding the same bindable again returns its existing index.
func (c *Context) AddBinding(b Bindable) uint32 {
	if idx, ok := c.bindingIndex[b]; ok {
		return idx
	}
	idx := uint32(len(c.bindings))
	c.bindings = append(c.bindings, b)
	c.bindingIndex[b] = idx
	c.log.Debug("registered binding",
		zap.Uint32("group", c.group),
		zap.Uint32("binding", idx),
		zap.Stringer("usage", b.Usage()))
	return idx
}

// Seen reports whether item has been named or resolved in this build.
func (c *Context) Seen(item Resolvable) bool {
	if !identifiable(item) {
		return false
	}
	_, ok := c.arena.lookup(item)
	return ok
}

// BindingGroup returns the bind group index of this build.
func (c *Context) BindingGroup() uint32 {
	return c.group
}

// UsedBindables returns the bindables referenced so far, in binding
// index order.
func (c *Context) UsedBindables() []Bindable {
	out := make([]Bindable, len(c.bindings))
	copy(out, c.bindings)
	return out
}

// Declarations returns the declarations emitted so far, in dependency order.
func (c *Context) Declarations() []string {
	out := make([]string, len(c.declarations))
	copy(out, c.declarations)
	return out
}

// ResolveReferences asks item for the resolvables it refers to.
// Items that do not implement Referencer have none.
func (c *Context) ResolveReferences(item Resolvable) error {
	r, ok := item.(Referencer)
	if !ok {
		return nil
	}
	return r.ResolveReferences(c)
}

// Emit resolves root and returns the final shader text: every
// declaration in first-emitted order followed by the root's own text.
func (c *Context) Emit(root Resolvable) (string, error) {
	text, err := c.Resolve(root)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, decl := range c.declarations {
		sb.WriteString(decl)
		sb.WriteByte('\n')
	}
	sb.WriteString(text)

	c.log.Debug("emitted shader",
		zap.Int("items", c.arena.count()),
		zap.Int("declarations", len(c.declarations)),
		zap.Int("bindings", len(c.bindings)))
	return sb.String(), nil
}

// describe returns a short description of item for error messages.
func describe(item Resolvable) string {
	if n, ok := item.(Namable); ok && n.Label() != "" {
		return fmt.Sprintf("%T %q", item, n.Label())
	}
	return fmt.Sprintf("%T", item)
}
