package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// exename returns the base name of the current executable, with a trailing
// ".exe" stripped.
func exename() string {
	p, err := os.Executable()
	if err != nil {
		return "log"
	}
	return strings.TrimSuffix(filepath.Base(p), ".exe")
}

// fsize returns the size of the file at path, or 0 if it does not exist.
func fsize(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// logPath returns the active file path for normal or fatal output.
func (l *Logger) logPath(fatal bool) string {
	var name string
	switch {
	case fatal:
		name = l.exe + ".fatal"
	case l.cfg.FileName != "":
		name = l.cfg.FileName
	default:
		name = l.exe + ".log"
	}
	return filepath.Join(l.cfg.Dir, name)
}

// openLogFile opens the active file in append mode, rotating the ladder
// first when the file has reached the size limit:
// path -> path.1, path.1 -> path.2, ... The oldest file falls off the end
// when the ladder is full. Reports whether the file is open.
func (l *Logger) openLogFile(fatal bool) bool {
	path := l.logPath(fatal)

	if fsize(path) >= l.cfg.MaxFileSize {
		paths := []string{path}
		for i := 1; i < l.cfg.MaxFileNum; i++ {
			p := fmt.Sprintf("%s.%d", path, i)
			paths = append(paths, p)
			if !exists(p) {
				break
			}
		}

		if len(paths) == l.cfg.MaxFileNum {
			os.Remove(paths[len(paths)-1])
		}

		for i := len(paths) - 1; i > 0; i-- {
			os.Rename(paths[i-1], paths[i])
		}
	}

	if !exists(l.cfg.Dir) {
		os.MkdirAll(l.cfg.Dir, 0755)
	}

	l.checkDiskSpace(path)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		stderrf("log: can't open log file: %s: %v\n", path, err)
		return false
	}

	l.file = f
	l.filePath = path
	l.fileSize = fsize(path)
	return true
}

func stderrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
