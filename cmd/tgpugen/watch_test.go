// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWatcher(t *testing.T, jobs []Job) *watcher {
	t.Helper()
	w, err := newWatcher(jobs, &bytes.Buffer{}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWatcherIgnoresUnrelatedEvents(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "particles.wgsl", particleSource)
	jobs, err := jobsFromArgs([]string{in}, filepath.Join(dir, "out.ts"), "ts", "", "")
	require.NoError(t, err)

	w := newTestWatcher(t, jobs)
	abs, err := filepath.Abs(in)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, w.inputs())

	now := time.Now()
	w.handle(fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, now)
	w.handle(fsnotify.Event{Name: abs, Op: fsnotify.Chmod}, now)
	assert.Empty(t, w.pending)

	w.handle(fsnotify.Event{Name: abs, Op: fsnotify.Write}, now)
	assert.Contains(t, w.pending, abs)
}

func TestWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "particles.wgsl", particleSource)
	out := filepath.Join(dir, "out.ts")
	jobs, err := jobsFromArgs([]string{in}, out, "ts", "", "")
	require.NoError(t, err)

	w := newTestWatcher(t, jobs)
	abs, err := filepath.Abs(in)
	require.NoError(t, err)

	changed := time.Now()
	w.handle(fsnotify.Event{Name: abs, Op: fsnotify.Write}, changed)

	w.flush(context.Background(), changed.Add(w.debounce/2))
	assert.NoFileExists(t, out)
	assert.Contains(t, w.pending, abs)

	w.flush(context.Background(), changed.Add(w.debounce))
	assert.FileExists(t, out)
	assert.Empty(t, w.pending)
}

func TestWatcherRegeneratesOnChange(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "particles.wgsl", particleSource)
	out := filepath.Join(dir, "out.ts")
	jobs, err := jobsFromArgs([]string{in}, out, "ts", "", "")
	require.NoError(t, err)

	w := newTestWatcher(t, jobs)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	updated := particleSource + "\nstruct Emitter {\n  rate: f32,\n};\n"
	require.NoError(t, os.WriteFile(in, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		code, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(code), "const Emitter = d.struct({")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherMissingDirectory(t *testing.T) {
	jobs := []Job{{Input: filepath.Join(t.TempDir(), "missing", "a.wgsl"), Dialect: "ts"}}
	_, err := newWatcher(jobs, &bytes.Buffer{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error watching")
}
