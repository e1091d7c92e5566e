package log

import (
	"sync"
	"sync/atomic"
)

// The process-wide default logger, created lazily on first use or installed
// by Init.
var (
	defaultLogger atomic.Pointer[Logger]
	defaultMu     sync.Mutex
)

// Init configures the default logger. It replaces any existing default,
// closing it first, and installs the shutdown signal handlers. Call it once
// at startup, before other goroutines log.
func Init(cfg Config) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if old := defaultLogger.Load(); old != nil {
		old.Close()
	}
	l := New(cfg)
	l.installSignalHandlers()
	defaultLogger.Store(l)
	return l
}

// Default returns the default logger, creating it with default
// configuration when nothing called Init.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := New(Config{})
	l.installSignalHandlers()
	defaultLogger.Store(l)
	return l
}

// Close drains and stops the default logger.
func Close() {
	if l := defaultLogger.Load(); l != nil {
		l.Close()
	}
}

// Debug logs msg at debug level on the default logger.
func Debug(msg string) { Default().Debug(msg) }

// Info logs msg at info level on the default logger.
func Info(msg string) { Default().Info(msg) }

// Warning logs msg at warning level on the default logger.
func Warning(msg string) { Default().Warning(msg) }

// Error logs msg at error level on the default logger.
func Error(msg string) { Default().Error(msg) }

// Fatal logs msg at fatal level on the default logger and terminates the
// process.
func Fatal(msg string) { Default().Fatal(msg) }
