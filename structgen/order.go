// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import (
	"github.com/gogpu/naga/wgsl"
)

// dependencyOrder sorts structs so every struct follows the structs its
// members refer to. Independent structs keep their source order.
func dependencyOrder(structs []*wgsl.StructDecl) ([]*wgsl.StructDecl, error) {
	byName := make(map[string]*wgsl.StructDecl, len(structs))
	for _, s := range structs {
		byName[s.Name] = s
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(structs))
	out := make([]*wgsl.StructDecl, 0, len(structs))

	var visit func(s *wgsl.StructDecl) error
	visit = func(s *wgsl.StructDecl) error {
		switch state[s.Name] {
		case visiting:
			return &Error{Kind: ErrRecursiveDataType, Struct: s.Name, Message: "struct contains itself"}
		case done:
			return nil
		}
		state[s.Name] = visiting
		for _, m := range s.Members {
			for _, ref := range structRefs(m.Type, nil) {
				if dep, ok := byName[ref]; ok {
					if err := visit(dep); err != nil {
						return err
					}
				}
			}
		}
		state[s.Name] = done
		out = append(out, s)
		return nil
	}

	for _, s := range structs {
		if err := visit(s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// structRefs appends the plain type names t mentions.
func structRefs(t wgsl.Type, refs []string) []string {
	switch t := t.(type) {
	case *wgsl.NamedType:
		if len(t.TypeParams) == 0 {
			return append(refs, t.Name)
		}
		for _, p := range t.TypeParams {
			refs = structRefs(p, refs)
		}
	case *wgsl.ArrayType:
		return structRefs(t.Element, refs)
	}
	return refs
}
