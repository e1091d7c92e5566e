package log

import (
	"path/filepath"
	"strings"
)

// Config defines the logger configuration parameters. The zero value of any
// field selects its default; out-of-range values are clamped, not rejected.
type Config struct {
	Dir           string // directory for log files, created if missing; default "logs"
	FileName      string // base name of the log file; default "<executable>.log"
	MinLevel      Level  // records below this level are dropped by the producer
	MaxFileSize   int64  // size at which the current file rotates; default 256 MiB
	MaxFileNum    int    // max files retained (base + .1 .. .N-1); default 8
	MaxBufferSize int    // soft cap on the ingest buffer; default 32 MiB, floor 1 MiB
	ToStderr      bool   // also write flushed records to stderr

	// Disk space management. Zero disables the corresponding check.
	MaxTotalSize int64 // max bytes the log ladder may occupy on disk
	MinDiskFree  int64 // min free bytes required on the log filesystem
}

// Default configuration values.
const (
	defaultDir        = "logs"
	defaultFileSize   = 256 << 20
	defaultFileNum    = 8
	defaultBufferSize = 32 << 20
	minBufferSize     = 1 << 20
)

// withDefaults returns cfg with defaults merged in and floors applied.
func (c Config) withDefaults() Config {
	c.Dir = filepath.Clean(getConfigValue(defaultDir, strings.ReplaceAll(c.Dir, "\\", "/")))
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = defaultFileSize
	}
	if c.MaxFileNum <= 0 {
		c.MaxFileNum = defaultFileNum
	}
	if c.MaxBufferSize < minBufferSize {
		c.MaxBufferSize = getConfigValue(defaultBufferSize, c.MaxBufferSize)
		if c.MaxBufferSize < minBufferSize {
			c.MaxBufferSize = minBufferSize
		}
	}
	if c.MinLevel < LevelDebug {
		c.MinLevel = LevelDebug
	}
	if c.MinLevel > LevelFatal {
		c.MinLevel = LevelFatal
	}
	if c.MaxTotalSize < 0 {
		c.MaxTotalSize = 0
	}
	if c.MinDiskFree < 0 {
		c.MinDiskFree = 0
	}
	return c
}

// getConfigValue returns defaultVal if cfgVal equals the zero value for
// type T, otherwise returns cfgVal. Used for merging configuration values
// with their defaults.
func getConfigValue[T comparable](defaultVal, cfgVal T) T {
	var zero T
	if cfgVal == zero {
		return defaultVal
	}
	return cfgVal
}
