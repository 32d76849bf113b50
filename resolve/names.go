// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"strings"

	"github.com/google/uuid"
)

// NameRegistry assigns identifiers to the items of one build.
//
// A registry is handed to each Context explicitly. The Context asks it
// at most once per distinct item, so the registry only has to care about
// labels, not identities.
type NameRegistry interface {
	MakeUnique(label string) (string, error)
}

// RandomNameRegistry gives every item a fresh random suffix, regardless
// of its label. Equal labels never collide.
type RandomNameRegistry struct {
	// usedNames tracks names that have been generated.
	usedNames map[string]struct{}

	// suffix returns a new candidate suffix.
	suffix func() string
}

// NewRandomNameRegistry creates a registry drawing suffixes from random UUIDs.
func NewRandomNameRegistry() *RandomNameRegistry {
	return newRandomNameRegistry(randomSuffix)
}

func newRandomNameRegistry(suffix func() string) *RandomNameRegistry {
	return &RandomNameRegistry{
		usedNames: make(map[string]struct{}),
		suffix:    suffix,
	}
}

// randomSuffix returns 8 hex digits of a random UUID.
func randomSuffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}

// MakeUnique returns "<label>_<suffix>". Labels are sanitized first and
// an empty label becomes UnnamedIdentifier.
func (r *RandomNameRegistry) MakeUnique(label string) (string, error) {
	base := Sanitize(label)
	for strings.HasPrefix(base, "__") {
		base = base[1:]
	}
	if base == "_" {
		base = ""
	}
	base = Escape(base)

	for {
		candidate := base + "_" + r.suffix()
		if _, used := r.usedNames[candidate]; !used {
			r.usedNames[candidate] = struct{}{}
			return candidate, nil
		}
	}
}

// count returns the number of unique names handed out.
func (r *RandomNameRegistry) count() int {
	return len(r.usedNames)
}

// StrictNameRegistry uses labels verbatim. Two items asking for the same
// label is an error rather than being silently disambiguated.
type StrictNameRegistry struct {
	taken map[string]struct{}
}

// NewStrictNameRegistry creates a label-preserving registry.
func NewStrictNameRegistry() *StrictNameRegistry {
	return &StrictNameRegistry{
		taken: make(map[string]struct{}),
	}
}

// MakeUnique returns label with whitespace replaced by underscores.
func (r *StrictNameRegistry) MakeUnique(label string) (string, error) {
	if label == "" {
		return "", NewError(ErrUnnamed, "unnamed item found when using a strict name registry")
	}

	name := strings.Join(strings.Fields(label), "_")
	if IsReserved(name) {
		return "", NewErrorf(ErrReservedName, "%q is reserved in WGSL", name)
	}
	if !IsValidIdentifier(name) {
		return "", NewErrorf(ErrInvalidName, "%q is not a valid WGSL identifier", name)
	}
	if _, used := r.taken[name]; used {
		return "", NewErrorf(ErrNameCollision, "label %q is already taken", name)
	}

	r.taken[name] = struct{}{}
	return name, nil
}

