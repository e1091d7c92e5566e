package log

import (
	"sync"

	"github.com/TingfengGu/cocoyaxi/fastream"
)

// Level is the severity of a log record.
type Level int

// Log levels in increasing severity. Fatal records terminate the process
// after being written.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

// levelSigil is the single-byte level marker that leads every record.
var levelSigil = [...]byte{'D', 'I', 'W', 'E', 'F'}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "unknown"
}

// recordPool recycles record buffers across producer calls.
var recordPool = sync.Pool{
	New: func() any { return fastream.New(256) },
}

// NewRecord returns a buffer primed with the record header: the level sigil
// followed by a 13-byte timestamp placeholder and the separating space. The
// caller appends the payload, terminates it with '\n' and hands the record
// to Push, which stamps the placeholder with the cached time.
func NewRecord(level Level) *fastream.Buffer {
	b := recordPool.Get().(*fastream.Buffer)
	b.Clear()
	b.AppendByte(levelSigil[level])
	b.AppendString("0000 00:00:00")
	b.AppendByte(' ')
	return b
}

// freeRecord returns a record buffer to the pool. Oversized buffers are
// dropped so one huge record does not pin memory.
func freeRecord(b *fastream.Buffer) {
	if b.Cap() <= 16<<10 {
		recordPool.Put(b)
	}
}

// log formats msg as a record and pushes it at the given level.
func (l *Logger) log(level Level, msg string) {
	if level < l.cfg.MinLevel {
		return
	}
	b := NewRecord(level)
	b.AppendString(msg)
	b.AppendByte('\n')
	l.Push(b, level)
	freeRecord(b)
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string) { l.log(LevelDebug, msg) }

// Info logs msg at info level.
func (l *Logger) Info(msg string) { l.log(LevelInfo, msg) }

// Warning logs msg at warning level.
func (l *Logger) Warning(msg string) { l.log(LevelWarning, msg) }

// Error logs msg at error level.
func (l *Logger) Error(msg string) { l.log(LevelError, msg) }

// Fatal logs msg at fatal level, flushes the logger, writes the fatal file
// and terminates the process.
func (l *Logger) Fatal(msg string) { l.log(LevelFatal, msg) }
