// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import "strings"

// UnnamedIdentifier is the base used for items without a label.
const UnnamedIdentifier = "item"

// reservedKeywords contains the WGSL keywords and reserved words.
// https://www.w3.org/TR/WGSL/#keyword-summary
var reservedKeywords = map[string]struct{}{
	// =========================================================================
	// Keywords
	// =========================================================================
	"alias":        {},
	"break":        {},
	"case":         {},
	"const":        {},
	"const_assert": {},
	"continue":     {},
	"continuing":   {},
	"default":      {},
	"diagnostic":   {},
	"discard":      {},
	"else":         {},
	"enable":       {},
	"false":        {},
	"fn":           {},
	"for":          {},
	"if":           {},
	"let":          {},
	"loop":         {},
	"override":     {},
	"requires":     {},
	"return":       {},
	"struct":       {},
	"switch":       {},
	"true":         {},
	"var":          {},
	"while":        {},

	// =========================================================================
	// Reserved words
	// =========================================================================
	"NULL":             {},
	"Self":             {},
	"abstract":         {},
	"active":           {},
	"alignas":          {},
	"alignof":          {},
	"as":               {},
	"asm":              {},
	"asm_fragment":     {},
	"async":            {},
	"attribute":        {},
	"auto":             {},
	"await":            {},
	"become":           {},
	"binding_array":    {},
	"cast":             {},
	"catch":            {},
	"class":            {},
	"co_await":         {},
	"co_return":        {},
	"co_yield":         {},
	"coherent":         {},
	"column_major":     {},
	"common":           {},
	"compile":          {},
	"compile_fragment": {},
	"concept":          {},
	"const_cast":       {},
	"consteval":        {},
	"constexpr":        {},
	"constinit":        {},
	"crate":            {},
	"debugger":         {},
	"decltype":         {},
	"delete":           {},
	"demote":           {},
	"demote_to_helper": {},
	"do":               {},
	"dynamic_cast":     {},
	"enum":             {},
	"explicit":         {},
	"export":           {},
	"extends":          {},
	"extern":           {},
	"external":         {},
	"fallthrough":      {},
	"filter":           {},
	"final":            {},
	"finally":          {},
	"friend":           {},
	"from":             {},
	"fxgroup":          {},
	"get":              {},
	"goto":             {},
	"groupshared":      {},
	"highp":            {},
	"impl":             {},
	"implements":       {},
	"import":           {},
	"inline":           {},
	"instanceof":       {},
	"interface":        {},
	"layout":           {},
	"lowp":             {},
	"macro":            {},
	"macro_rules":      {},
	"match":            {},
	"mediump":          {},
	"meta":             {},
	"mod":              {},
	"module":           {},
	"move":             {},
	"mut":              {},
	"mutable":          {},
	"namespace":        {},
	"new":              {},
	"nil":              {},
	"noexcept":         {},
	"noinline":         {},
	"nointerpolation":  {},
	"noperspective":    {},
	"null":             {},
	"nullptr":          {},
	"of":               {},
	"operator":         {},
	"package":          {},
	"packoffset":       {},
	"partition":        {},
	"pass":             {},
	"patch":            {},
	"pixelfragment":    {},
	"precise":          {},
	"precision":        {},
	"premerge":         {},
	"priv":             {},
	"protected":        {},
	"pub":              {},
	"public":           {},
	"readonly":         {},
	"ref":              {},
	"regardless":       {},
	"register":         {},
	"reinterpret_cast": {},
	"require":          {},
	"resource":         {},
	"restrict":         {},
	"self":             {},
	"set":              {},
	"shared":           {},
	"sizeof":           {},
	"smooth":           {},
	"snorm":            {},
	"static":           {},
	"static_assert":    {},
	"static_cast":      {},
	"std":              {},
	"subroutine":       {},
	"super":            {},
	"target":           {},
	"template":         {},
	"this":             {},
	"thread_local":     {},
	"throw":            {},
	"trait":            {},
	"try":              {},
	"type":             {},
	"typedef":          {},
	"typeid":           {},
	"typename":         {},
	"typeof":           {},
	"union":            {},
	"unless":           {},
	"unorm":            {},
	"unsafe":           {},
	"unsized":          {},
	"use":              {},
	"using":            {},
	"varying":          {},
	"virtual":          {},
	"volatile":         {},
	"wgsl":             {},
	"where":            {},
	"with":             {},
	"writeonly":        {},
	"yield":            {},
}

// predeclaredTypes contains the type names a declaration must not shadow.
// Generated programmatically from the scalar suffixes.
var predeclaredTypes = func() map[string]struct{} {
	result := map[string]struct{}{
		"bool": {}, "f16": {}, "f32": {}, "i32": {}, "u32": {},
		"array": {}, "atomic": {}, "ptr": {}, "sampler": {}, "sampler_comparison": {},
	}

	for i := 2; i <= 4; i++ {
		vec := "vec" + string(rune('0'+i))
		result[vec] = struct{}{}
		for _, suffix := range []string{"f", "h", "i", "u"} {
			result[vec+suffix] = struct{}{}
		}
		for j := 2; j <= 4; j++ {
			mat := "mat" + string(rune('0'+i)) + "x" + string(rune('0'+j))
			result[mat] = struct{}{}
			result[mat+"f"] = struct{}{}
			result[mat+"h"] = struct{}{}
		}
	}

	return result
}()

// IsReserved checks if a name is a WGSL keyword, reserved word or
// predeclared type name.
func IsReserved(name string) bool {
	if _, ok := reservedKeywords[name]; ok {
		return true
	}
	if _, ok := predeclaredTypes[name]; ok {
		return true
	}
	return false
}

// IsValidIdentifier reports whether name is a valid WGSL identifier.
// Only the ASCII subset of identifier characters is accepted.
func IsValidIdentifier(name string) bool {
	if name == "" || name == "_" || strings.HasPrefix(name, "__") {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Sanitize turns a free-form label into an identifier candidate.
// Whitespace and other non-identifier characters become underscores.
func Sanitize(label string) string {
	if label == "" {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(label))
	for i, r := range label {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Escape returns a safe identifier base.
// If the name is reserved it's suffixed with an underscore; an empty
// name becomes UnnamedIdentifier.
func Escape(name string) string {
	if name == "" {
		return UnnamedIdentifier
	}
	if IsReserved(name) {
		return name + "_"
	}
	return name
}
