// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gogpu/naga"
	"go.uber.org/zap"

	"github.com/gogpu/tgpu/resolve"
)

// ErrInvalidShader is returned when generated WGSL fails to compile.
var ErrInvalidShader = errors.New("gpu: invalid shader")

// aliasPattern matches the predeclared vector and matrix aliases such as
// vec3f and mat4x4f.
var aliasPattern = regexp.MustCompile(`\b(?:vec[234]|mat[234]x[234])[fiuh]\b`)

var aliasComponents = map[byte]string{'f': "f32", 'i': "i32", 'u': "u32", 'h': "f16"}

// ExpandAliases rewrites predeclared aliases to their parameterized
// form: vec3f becomes vec3<f32> and mat4x4f becomes mat4x4<f32>.
func ExpandAliases(code string) string {
	return aliasPattern.ReplaceAllStringFunc(code, func(alias string) string {
		last := len(alias) - 1
		return alias[:last] + "<" + aliasComponents[alias[last]] + ">"
	})
}

// Validate parses, lowers and validates code with naga before it is
// handed to a device. Every validation problem is reported. Predeclared
// aliases are expanded first since the naga front end only understands
// the parameterized spelling.
func Validate(code string) error {
	code = ExpandAliases(code)
	ast, err := naga.Parse(code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	module, err := naga.LowerWithSource(ast, code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShader, err)
	}
	if len(problems) == 0 {
		return nil
	}

	errs := make([]error, len(problems))
	for i, p := range problems {
		errs[i] = p
	}
	resolve.Logger().Debug("shader validation failed", zap.Int("problems", len(problems)))
	return fmt.Errorf("%w: %w", ErrInvalidShader, errors.Join(errs...))
}
