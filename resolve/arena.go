// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import "reflect"

// Handle references an item in the arena.
type Handle uint32

type entryState uint8

const (
	statePending entryState = iota
	stateResolving
	stateResolved
)

// entry is the per-build record of one resolvable.
type entry struct {
	item  Resolvable
	name  string
	named bool
	text  string
	state entryState
}

// arena deduplicates resolvables by identity.
// Unlike a content-keyed registry, two structurally identical items with
// different identities get different handles.
type arena struct {
	entries []entry
	index   map[Resolvable]Handle
}

func newArena() *arena {
	return &arena{
		entries: make([]entry, 0, 16),
		index:   make(map[Resolvable]Handle, 16),
	}
}

// getOrCreate returns the handle for item, appending a new entry on
// first sight.
func (a *arena) getOrCreate(item Resolvable) Handle {
	if h, ok := a.index[item]; ok {
		return h
	}

	h := Handle(len(a.entries))
	a.entries = append(a.entries, entry{item: item})
	a.index[item] = h
	return h
}

// lookup finds the handle of an item already in the arena.
func (a *arena) lookup(item Resolvable) (Handle, bool) {
	h, ok := a.index[item]
	return h, ok
}

// get returns the entry for a handle. The pointer is only valid until
// the next getOrCreate.
func (a *arena) get(h Handle) *entry {
	return &a.entries[h]
}

// count returns the number of distinct items seen.
func (a *arena) count() int {
	return len(a.entries)
}

// identifiable reports whether item can be used as an identity key.
func identifiable(item Resolvable) bool {
	if item == nil {
		return false
	}
	return reflect.TypeOf(item).Comparable()
}
