// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package gpu connects built programs to wgpu: it derives bind group
// layouts from a Program's bindings, creates bind groups for the
// caller's buffers and uploads host values encoded with buffer schemas.
package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/gogpu/tgpu"
	"github.com/gogpu/tgpu/resolve"
)

// ErrMissingBuffer is returned when no GPU buffer backs a binding.
var ErrMissingBuffer = errors.New("gpu: no buffer for binding")

// BufferLookup returns the GPU allocation backing buf, or nil.
type BufferLookup func(buf *tgpu.Buffer) *wgpu.Buffer

// BindingType returns the wgpu buffer binding type of a usage.
func BindingType(u resolve.Usage) wgpu.BufferBindingType {
	switch u {
	case resolve.UsageReadonly:
		return wgpu.BufferBindingTypeReadOnlyStorage
	case resolve.UsageMutable:
		return wgpu.BufferBindingTypeStorage
	default:
		return wgpu.BufferBindingTypeUniform
	}
}

// BufferUsage returns the usage flags a buffer bound with u is created
// with. Every buffer is a copy destination so WriteBuffer can fill it.
func BufferUsage(u resolve.Usage) wgpu.BufferUsage {
	switch u {
	case resolve.UsageUniform:
		return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	case resolve.UsageMutable:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc
	default:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	}
}

// LayoutEntries returns one layout entry per program binding.
func LayoutEntries(p *tgpu.Program, visibility wgpu.ShaderStage) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, len(p.Bindings))
	for i, b := range p.Bindings {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    b.Index,
			Visibility: visibility,
		}
		entry.Buffer.Type = BindingType(b.Usage)
		if b.Buffer != nil {
			entry.Buffer.MinBindingSize = uint64(b.Buffer.Size())
		}
		entries[i] = entry
	}
	return entries
}

// LayoutDescriptor returns the bind group layout descriptor of p.
func LayoutDescriptor(p *tgpu.Program, label string, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   label,
		Entries: LayoutEntries(p, visibility),
	}
}

// GroupEntries returns the bind group entries of p, looking up the GPU
// buffer behind every binding.
func GroupEntries(p *tgpu.Program, lookup BufferLookup) ([]wgpu.BindGroupEntry, error) {
	entries := make([]wgpu.BindGroupEntry, len(p.Bindings))
	for i, b := range p.Bindings {
		var buf *wgpu.Buffer
		if b.Buffer != nil {
			buf = lookup(b.Buffer)
		}
		if buf == nil {
			return nil, fmt.Errorf("%w %d (%s)", ErrMissingBuffer, b.Index, b.Usage)
		}
		entries[i] = wgpu.BindGroupEntry{
			Binding: b.Index,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}
	}
	return entries, nil
}

// CreateShaderModule compiles the program's WGSL on device.
func CreateShaderModule(device *wgpu.Device, label string, p *tgpu.Program) (*wgpu.ShaderModule, error) {
	return device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Code,
		},
	})
}

// CreateBuffer allocates a GPU buffer sized and flagged for buf bound
// with usage u.
func CreateBuffer(device *wgpu.Device, buf *tgpu.Buffer, u resolve.Usage) (*wgpu.Buffer, error) {
	return device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: buf.Label(),
		Size:  uint64(buf.Size()),
		Usage: BufferUsage(u),
	})
}

// CreateBindGroup creates the bind group layout of p and a bind group
// binding the buffers returned by lookup.
func CreateBindGroup(device *wgpu.Device, p *tgpu.Program, label string, visibility wgpu.ShaderStage, lookup BufferLookup) (*wgpu.BindGroupLayout, *wgpu.BindGroup, error) {
	entries, err := GroupEntries(p, lookup)
	if err != nil {
		return nil, nil, err
	}

	desc := LayoutDescriptor(p, label+" Layout", visibility)
	layout, err := device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, nil, fmt.Errorf("gpu: bind group layout for group %d: %w", p.Group, err)
	}

	group, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		layout.Release()
		return nil, nil, fmt.Errorf("gpu: bind group %d: %w", p.Group, err)
	}

	resolve.Logger().Debug("created bind group",
		zap.String("label", label),
		zap.Uint32("group", p.Group),
		zap.Int("entries", len(entries)))
	return layout, group, nil
}

// WriteBuffer encodes v with buf's schema and uploads it to dst.
func WriteBuffer(queue *wgpu.Queue, dst *wgpu.Buffer, buf *tgpu.Buffer, v any) error {
	p, err := buf.Encode(v)
	if err != nil {
		return err
	}
	queue.WriteBuffer(dst, 0, p)
	return nil
}
