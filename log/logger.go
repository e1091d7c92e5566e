package log

import (
	"bytes"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/TingfengGu/cocoyaxi/fastream"
)

// Flusher stop states.
const (
	stateRunning  = 0
	stateStopping = 1
	stateDrained  = 2 // the flusher has exited and will not touch the file again
)

// overflowMark prefixes the ingest buffer after overflow containment so the
// discard point is visible in the flushed stream.
const overflowMark = "......\n"

// Logger is an asynchronous level logger. Producers append records to a
// shared ingest buffer under a mutex; a single background flusher drains the
// buffer to the log file, rotating it by size.
type Logger struct {
	cfg Config

	mu      sync.Mutex
	ingest  *fastream.Buffer
	timeStr [timeLen]byte

	event chan struct{}
	stop  atomic.Int32
	done  chan struct{}

	logTime *logTime

	// file state, owned by the flusher while it runs
	file     *os.File
	filePath string
	fileSize int64

	dropped atomic.Uint64
	exe     string
	exit    func(int)
	started bool
}

// New creates a logger and starts its flusher.
func New(cfg Config) *Logger {
	l := newLogger(cfg)
	l.start()
	return l
}

// newLogger builds a logger without starting the flusher.
func newLogger(cfg Config) *Logger {
	l := &Logger{
		cfg:     cfg.withDefaults(),
		ingest:  fastream.New(256 * 1024),
		event:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		logTime: newLogTime(),
		exe:     exename(),
		exit:    os.Exit,
	}
	copy(l.timeStr[:], l.logTime.get())
	return l
}

func (l *Logger) start() {
	l.started = true
	go l.run()
}

// Push enqueues a record. The record layout is
// <sigil><13-byte timestamp><payload>\n; bytes 1..13 are overwritten with
// the cached time string. Records below the configured level are discarded;
// fatal records bypass the queue entirely.
func (l *Logger) Push(rec *fastream.Buffer, level Level) {
	if level < l.cfg.MinLevel {
		return
	}
	if level >= LevelFatal {
		l.pushFatal(rec)
		return
	}

	l.mu.Lock()
	copy(rec.Bytes()[1:1+timeLen], l.timeStr[:])

	if l.ingest.Len() >= l.cfg.MaxBufferSize {
		l.containOverflow()
	}

	l.ingest.Append(rec.Bytes())
	signal := l.ingest.Len() > l.ingest.Cap()/2
	l.mu.Unlock()

	if signal {
		l.signal()
	}
}

// containOverflow discards the older half of the ingest buffer, retaining
// records from the first newline at or past size/2+7 and marking the cut.
// Called with the mutex held. The search offset accounts for the mark that
// replaces the discarded bytes.
func (l *Logger) containOverflow() {
	data := l.ingest.Bytes()
	half := len(data)/2 + len(overflowMark)
	if half >= len(data) {
		half = len(data) - 1
	}

	idx := bytes.IndexByte(data[half:], '\n')
	if idx < 0 {
		// one unterminated giant record; nothing to retain
		l.dropped.Add(uint64(len(data)))
		l.ingest.Clear()
		l.ingest.AppendString(overflowMark)
		return
	}

	p := half + idx
	retained := len(data) - p - 1
	droppedBytes := len(data) - retained
	stderrf("log: buffer is full, drop %d bytes\n", droppedBytes)
	l.dropped.Add(uint64(droppedBytes))

	copy(data, overflowMark)
	copy(data[len(overflowMark):], data[p+1:])
	l.ingest.Resize(retained + len(overflowMark))
}

// pushFatal drains and stops the flusher, writes the record to the log file
// and stderr, appends it with a stack trace to the fatal file and
// terminates the process.
func (l *Logger) pushFatal(rec *fastream.Buffer) {
	l.Close()

	copy(rec.Bytes()[1:1+timeLen], l.logTime.get())
	l.write(rec)
	if !l.cfg.ToStderr {
		os.Stderr.Write(rec.Bytes())
	}

	if l.openLogFile(true) {
		l.file.Write(rec.Bytes())
		buf := make([]byte, 64<<10)
		n := runtime.Stack(buf, false)
		l.file.Write(buf[:n])
		l.file.Close()
		l.file = nil
	}

	l.exit(1)
}

// Close stops the flusher and drains any buffered records. Safe to call
// more than once; only the first call does the work.
func (l *Logger) Close() {
	if !l.stop.CompareAndSwap(stateRunning, stateStopping) {
		return
	}
	l.signal()
	if l.started {
		<-l.done
	} else {
		l.stop.Store(stateDrained)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.ingest.Empty() {
		l.write(l.ingest)
		l.ingest.Clear()
	}
}

// safeStop is the signal-driven variant of Close. It cannot join the
// flusher, so it spins in 8 ms ticks until the flusher publishes that it
// has drained, then flushes the residue.
func (l *Logger) safeStop() {
	if !l.stop.CompareAndSwap(stateRunning, stateStopping) {
		return
	}

	for l.stop.Load() != stateDrained {
		time.Sleep(8 * time.Millisecond)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.ingest.Empty() {
		l.write(l.ingest)
		l.ingest.Clear()
	}
}

// Dropped returns the total bytes discarded by overflow containment and
// disk-guard drops.
func (l *Logger) Dropped() uint64 {
	return l.dropped.Load()
}

// signal wakes the flusher without blocking.
func (l *Logger) signal() {
	select {
	case l.event <- struct{}{}:
	default:
	}
}
