// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import (
	"github.com/gogpu/naga/wgsl"
)

// Parse parses WGSL source into a module. Semicolons after top-level
// declaration bodies (`struct S { ... };`) are accepted.
func Parse(source string) (*wgsl.Module, error) {
	tokens, err := wgsl.NewLexer(source).Tokenize()
	if err != nil {
		return nil, &Error{Kind: ErrParse, Message: err.Error()}
	}

	module, err := wgsl.NewParser(stripBodySemicolons(tokens)).Parse()
	if err != nil {
		return nil, &Error{Kind: ErrParse, Message: err.Error()}
	}
	return module, nil
}

// stripBodySemicolons drops `;` tokens that directly follow a `}`
// closing a top-level body.
func stripBodySemicolons(tokens []wgsl.Token) []wgsl.Token {
	out := make([]wgsl.Token, 0, len(tokens))
	depth := 0
	closed := false
	for _, tok := range tokens {
		switch tok.Kind {
		case wgsl.TokenLeftBrace:
			depth++
		case wgsl.TokenRightBrace:
			depth--
		case wgsl.TokenSemicolon:
			if closed && depth == 0 {
				closed = false
				continue
			}
		}
		closed = tok.Kind == wgsl.TokenRightBrace && depth == 0
		out = append(out, tok)
	}
	return out
}
