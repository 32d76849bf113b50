// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command tgpugen generates schema definitions from WGSL struct
// declarations.
//
// Usage:
//
//	tgpugen [flags] <input.wgsl>...
//
// Examples:
//
//	tgpugen shader.wgsl                          # TypeScript to stdout
//	tgpugen --dialect go --package shaders -o shaders/structs.go shader.wgsl
//	tgpugen --dialect js -o gen/ a.wgsl b.wgsl   # one file per input
//	tgpugen --config tgpugen.yaml                # jobs from a config file
//	tgpugen --watch -o gen/ a.wgsl b.wgsl        # regenerate on change
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gogpu/tgpu/structgen"
)

var (
	output     string
	dialect    string
	pkg        string
	namespace  string
	configPath string
	verbose    bool
	watch      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tgpugen [flags] <input.wgsl>...",
	Short: "Generate typed schema definitions from WGSL structs",
	Long: `tgpugen reads WGSL sources and emits the struct declarations they
contain as schema constructors: Go code using package data, or
JavaScript/TypeScript for TypeGPU.

Structs ending in a runtime-sized array become generator functions
taking the array length.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		structgen.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var jobs []Job
		if configPath != "" {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			jobs = cfg.Jobs
		}

		argJobs, err := jobsFromArgs(args, output, dialect, pkg, namespace)
		if err != nil {
			return err
		}
		jobs = append(jobs, argJobs...)
		if len(jobs) == 0 {
			return fmt.Errorf("no input files (pass .wgsl files or --config)")
		}

		if !watch {
			return run(cmd.Context(), jobs, cmd.OutOrStdout(), logger)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := run(ctx, jobs, cmd.OutOrStdout(), logger); err != nil {
			logger.Error("generation failed", zap.Error(err))
		}
		w, err := newWatcher(jobs, cmd.OutOrStdout(), logger)
		if err != nil {
			return err
		}
		defer w.Close()
		logger.Info("watching for changes", zap.Strings("inputs", w.inputs()))
		return w.run(ctx)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&output, "out", "o", "", "output file, or directory with several inputs (default: stdout)")
	rootCmd.Flags().StringVar(&dialect, "dialect", "ts", "output dialect: go, js or ts")
	rootCmd.Flags().StringVar(&pkg, "package", "shaders", "Go package name")
	rootCmd.Flags().StringVar(&namespace, "namespace", "", "schema namespace identifier (default: d for js/ts, data for go)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML file listing generation jobs")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate whenever an input changes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
