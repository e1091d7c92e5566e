package log

import (
	"os"
	"time"

	"github.com/TingfengGu/cocoyaxi/fastream"
)

// flushInterval is the maximum latency from a quiet append to a flush.
// Producers that push the ingest buffer past half capacity signal the
// flusher immediately instead of waiting out the tick.
const flushInterval = 128 * time.Millisecond

// run is the flusher loop. It is the only goroutine that touches the file
// handle. On each tick it refreshes the cached timestamp, swaps the ingest
// buffer for its local flush buffer under the mutex, and writes outside it.
func (l *Logger) run() {
	flush := fastream.New(256 * 1024)

	for l.stop.Load() == stateRunning {
		l.wait(flushInterval)
		if l.stop.Load() != stateRunning {
			break
		}

		updated := l.logTime.update()

		l.mu.Lock()
		if updated != nil {
			copy(l.timeStr[:], updated)
		}
		if !l.ingest.Empty() {
			l.ingest.Swap(flush)
		}
		l.mu.Unlock()

		if !flush.Empty() {
			if l.write(flush) {
				flush.Clear()
			} else {
				l.requeue(flush)
			}
		}
	}

	l.stop.Store(stateDrained)
	close(l.done)
}

// wait blocks until the flusher is signaled or the timeout elapses,
// reporting whether it was signaled.
func (l *Logger) wait(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-l.event:
		return true
	case <-t.C:
		return false
	}
}

// write drains fs to the log file, opening it on demand, then applies the
// rotation check. It reports false when no file could be opened, so the
// caller can keep the records buffered until the next attempt succeeds.
// A failed write of an open file is reported but not retried.
func (l *Logger) write(fs *fastream.Buffer) bool {
	opened := l.file != nil || l.openLogFile(false)
	if opened {
		if _, err := l.file.Write(fs.Bytes()); err != nil {
			stderrf("log: write %s: %v\n", l.filePath, err)
		} else {
			l.fileSize += int64(fs.Len())
		}
	}
	l.rotate()
	if l.cfg.ToStderr {
		os.Stderr.Write(fs.Bytes())
	}
	return opened
}

// requeue puts an unwritten batch back in front of whatever producers have
// appended since the swap, preserving record order.
func (l *Logger) requeue(flush *fastream.Buffer) {
	l.mu.Lock()
	if !l.ingest.Empty() {
		flush.Append(l.ingest.Bytes())
	}
	l.ingest.Swap(flush)
	l.mu.Unlock()
	flush.Clear()
}

// rotate closes the current file once it reaches the size limit, or when it
// disappeared underneath us; the next write reopens and rotates the ladder.
func (l *Logger) rotate() {
	if l.file == nil {
		return
	}
	if !exists(l.filePath) || l.fileSize >= l.cfg.MaxFileSize {
		l.file.Close()
		l.file = nil
		l.fileSize = 0
	}
}
