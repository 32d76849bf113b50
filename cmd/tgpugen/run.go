// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/tgpu/structgen"
)

// run generates all jobs concurrently. Jobs without an output file are
// written to stdout in job order once every job has succeeded.
func run(ctx context.Context, jobs []Job, stdout io.Writer, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]string, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			code, err := generate(job)
			if err != nil {
				return err
			}
			if job.Output == "" {
				results[i] = code
				return nil
			}
			if err := writeFile(job.Output, code); err != nil {
				return err
			}
			log.Info("generated",
				zap.String("input", job.Input),
				zap.String("output", job.Output),
				zap.Int("bytes", len(code)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, code := range results {
		if code == "" {
			continue
		}
		if _, err := io.WriteString(stdout, code); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}
	return nil
}

// generate produces the complete output file of one job.
func generate(job Job) (string, error) {
	opts, err := job.options()
	if err != nil {
		return "", err
	}

	source, err := os.ReadFile(job.Input)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}

	module, err := structgen.Parse(string(source))
	if err != nil {
		return "", fmt.Errorf("%s: %w", job.Input, err)
	}
	code, err := structgen.File(module, opts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", job.Input, err)
	}

	if opts.Dialect == structgen.DialectGo {
		formatted, err := format.Source([]byte(code))
		if err != nil {
			return "", fmt.Errorf("%s: formatting generated code: %w", job.Input, err)
		}
		code = string(formatted)
	}
	return code, nil
}

func writeFile(path, code string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}
