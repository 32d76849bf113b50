// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

// CodeFragment is a piece of WGSL text interleaved with resolvables.
// Resolving the fragment resolves each part in order and concatenates
// the results.
type CodeFragment struct {
	parts []any
}

// Code builds a fragment from parts. Supported parts are strings,
// resolvables, nested []any slices, booleans, integers, floats and
// fmt.Stringer values.
func Code(parts ...any) *CodeFragment {
	return &CodeFragment{parts: parts}
}

// Parts returns the fragment parts.
func (f *CodeFragment) Parts() []any {
	return f.parts
}

// Resolve implements Resolvable.
func (f *CodeFragment) Resolve(ctx Ctx) (string, error) {
	var sb strings.Builder
	if err := writeParts(ctx, &sb, f.parts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeParts(ctx Ctx, sb *strings.Builder, parts []any) error {
	for _, part := range parts {
		if err := writePart(ctx, sb, part); err != nil {
			return err
		}
	}
	return nil
}

func writePart(ctx Ctx, sb *strings.Builder, part any) error {
	switch v := part.(type) {
	case nil:
	case string:
		sb.WriteString(v)
	case Resolvable:
		text, err := ctx.Resolve(v)
		if err != nil {
			return err
		}
		sb.WriteString(text)
	case []any:
		return writeParts(ctx, sb, v)
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case int:
		sb.WriteString(strconv.Itoa(v))
	case int32:
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	case int64:
		sb.WriteString(strconv.FormatInt(v, 10))
	case uint32:
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
		sb.WriteByte('u')
	case uint64:
		sb.WriteString(strconv.FormatUint(v, 10))
		sb.WriteByte('u')
	case float32:
		sb.WriteString(formatFloat(float64(v), 32))
	case float64:
		sb.WriteString(formatFloat(v, 64))
	case fmt.Stringer:
		sb.WriteString(v.String())
	default:
		return NewErrorf(ErrUnresolvable, "unsupported code part %T", part)
	}
	return nil
}

// formatFloat renders f so that WGSL reads it as a floating point literal.
func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
