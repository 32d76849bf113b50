// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package structgen

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the structgen logger, a no-op logger unless SetLogger
// was called.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the structgen logger.
func SetLogger(l *zap.Logger) {
	logger = l
}
