// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// watcher regenerates the jobs of an input whenever the input changes.
// Directories are watched rather than files so editors that save by
// rename keep triggering events.
type watcher struct {
	fs       *fsnotify.Watcher
	jobs     map[string][]Job
	stdout   io.Writer
	log      *zap.Logger
	debounce time.Duration
	pending  map[string]time.Time
}

func newWatcher(jobs []Job, stdout io.Writer, log *zap.Logger) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}

	w := &watcher{
		fs:       fs,
		jobs:     make(map[string][]Job),
		stdout:   stdout,
		log:      log,
		debounce: defaultDebounce,
		pending:  make(map[string]time.Time),
	}

	dirs := make(map[string]bool)
	for _, job := range jobs {
		path, err := filepath.Abs(job.Input)
		if err != nil {
			fs.Close()
			return nil, err
		}
		w.jobs[path] = append(w.jobs[path], job)
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			fs.Close()
			return nil, fmt.Errorf("error watching %s: %w", dir, err)
		}
		log.Debug("watching directory", zap.String("dir", dir))
	}
	return w, nil
}

// Close stops watching.
func (w *watcher) Close() error {
	return w.fs.Close()
}

// inputs returns the watched input paths in sorted order.
func (w *watcher) inputs() []string {
	paths := make([]string, 0, len(w.jobs))
	for path := range w.jobs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// run handles events until ctx is done. Generation failures are logged
// and watching continues.
func (w *watcher) run(ctx context.Context) error {
	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event, time.Now())
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", zap.Error(err))
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

// handle records a change to a watched input.
func (w *watcher) handle(event fsnotify.Event, now time.Time) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path := filepath.Clean(event.Name)
	if _, ok := w.jobs[path]; !ok {
		return
	}
	w.pending[path] = now
}

// flush regenerates inputs that have been quiet for the debounce period.
func (w *watcher) flush(ctx context.Context, now time.Time) {
	for path, changed := range w.pending {
		if now.Sub(changed) < w.debounce {
			continue
		}
		delete(w.pending, path)
		if err := run(ctx, w.jobs[path], w.stdout, w.log); err != nil {
			w.log.Error("regeneration failed", zap.String("input", path), zap.Error(err))
		}
	}
}
