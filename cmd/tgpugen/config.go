// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/tgpu/structgen"
)

// Config is the YAML job file:
//
//	jobs:
//	  - input: shaders/boids.wgsl
//	    output: gen/boids.go
//	    dialect: go
//	    package: gen
type Config struct {
	Jobs []Job `yaml:"jobs"`
}

// Job generates one input file.
type Job struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Dialect   string `yaml:"dialect"`
	Package   string `yaml:"package"`
	Namespace string `yaml:"namespace"`
}

// options converts the job settings to generator options.
func (j Job) options() (structgen.Options, error) {
	name := j.Dialect
	if name == "" {
		name = "ts"
	}
	d, typed, err := structgen.ParseDialect(name)
	if err != nil {
		return structgen.Options{}, fmt.Errorf("%s: %w", j.Input, err)
	}
	return structgen.Options{
		Dialect:   d,
		Typed:     typed,
		Namespace: j.Namespace,
		Package:   j.Package,
	}, nil
}

func loadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Inputs are relative to the config file.
	base := filepath.Dir(path)
	for i, j := range cfg.Jobs {
		if j.Input == "" {
			return nil, fmt.Errorf("config %s: job %d has no input", path, i)
		}
		if !filepath.IsAbs(j.Input) {
			cfg.Jobs[i].Input = filepath.Join(base, j.Input)
		}
		if j.Output != "" && !filepath.IsAbs(j.Output) {
			cfg.Jobs[i].Output = filepath.Join(base, j.Output)
		}
	}
	return cfg, nil
}

// jobsFromArgs builds one job per input. With several inputs, out names
// a directory receiving <input base name>.<dialect extension>.
func jobsFromArgs(inputs []string, out, dialect, pkg, namespace string) ([]Job, error) {
	if _, _, err := structgen.ParseDialect(dialect); err != nil {
		return nil, err
	}

	jobs := make([]Job, len(inputs))
	for i, in := range inputs {
		j := Job{
			Input:     in,
			Output:    out,
			Dialect:   dialect,
			Package:   pkg,
			Namespace: namespace,
		}
		if out != "" && len(inputs) > 1 {
			name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
			j.Output = filepath.Join(out, name+extension(dialect))
		}
		jobs[i] = j
	}
	return jobs, nil
}

func extension(dialect string) string {
	switch dialect {
	case "go":
		return ".go"
	case "js":
		return ".js"
	default:
		return ".ts"
	}
}
