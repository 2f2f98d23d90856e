// Package diag provides structural inspection of Alkahest buffers for
// debugging: dumping a buffer's inline/heap split and walking its
// region boundaries. It is never imported by the hot Serializer/
// Deserializer path (writer.go, reader.go) — only by cmd/alkdump and
// whatever caller code opts into it.
package diag

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's logger, a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs l as the package logger. Call before any Dump*
// function to capture its structural log output.
func SetLogger(l *zap.Logger) {
	logger = l
}
