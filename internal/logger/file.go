package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	maxLogSize      = 10 * 1024 * 1024 // 10MB
	logBufferSize   = 32 * 1024        // 32KB
	maxLogRotations = 5
	logQueueSize    = 1000

	// LogFileName is the name of the log file inside the log directory
	LogFileName = "search.log"
)

// FileLogger writes levelled messages to a rotated log file.
// Messages are queued and written by a background goroutine; debug, info and
// warning messages are dropped when the queue is full, errors wait for room.
type FileLogger struct {
	level  Level
	path   string
	file   *os.File
	writer *bufio.Writer
	queue  chan string
	done   chan struct{}

	mu     sync.RWMutex // guards closed against sends on a closed queue
	closed bool
}

// NewFileLogger opens <dir>/search.log for appending, rotating it first if it
// has grown past 10MB.
func NewFileLogger(dir string, level Level) (*FileLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, LogFileName)
	rotateLogFile(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &FileLogger{
		level:  level,
		path:   logPath,
		file:   file,
		writer: bufio.NewWriterSize(file, logBufferSize),
		queue:  make(chan string, logQueueSize),
		done:   make(chan struct{}),
	}

	fmt.Fprintf(l.writer, "\n=== Log started at %s ===\n", time.Now().Format("2006-01-02 15:04:05"))
	l.writer.Flush()

	go l.process()
	return l, nil
}

// Path returns the log file location
func (l *FileLogger) Path() string {
	return l.path
}

// process drains the queue, flushing whenever it runs empty
func (l *FileLogger) process() {
	defer close(l.done)
	for msg := range l.queue {
		l.writer.WriteString(msg)
		if len(l.queue) == 0 {
			l.writer.Flush()
		}
	}
	l.writer.Flush()
}

// rotateLogFile shifts search.log -> search.log.1 -> ... when it is too large
func rotateLogFile(logPath string) {
	fi, err := os.Stat(logPath)
	if err != nil || fi.Size() <= maxLogSize {
		return
	}
	for i := maxLogRotations - 1; i > 0; i-- {
		os.Rename(fmt.Sprintf("%s.%d", logPath, i), fmt.Sprintf("%s.%d", logPath, i+1))
	}
	os.Rename(logPath, logPath+".1")
}

func (l *FileLogger) enqueue(level Level, format string, args []interface{}) {
	if level < l.level {
		return
	}

	msg := fmt.Sprintf("%s [%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), level, fmt.Sprintf(format, args...))

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}

	if level >= ERROR {
		l.queue <- msg
		return
	}
	select {
	case l.queue <- msg:
	default:
		// queue full, drop
	}
}

func (l *FileLogger) LogDebug(format string, args ...interface{}) {
	l.enqueue(DEBUG, format, args)
}

func (l *FileLogger) LogInfo(format string, args ...interface{}) {
	l.enqueue(INFO, format, args)
}

func (l *FileLogger) LogWarning(format string, args ...interface{}) {
	l.enqueue(WARNING, format, args)
}

func (l *FileLogger) LogError(format string, args ...interface{}) {
	l.enqueue(ERROR, format, args)
}

// Close flushes pending messages and closes the file. Messages logged after
// Close are discarded.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.queue)
	l.mu.Unlock()

	<-l.done

	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

var (
	defaultLogger Sink
	defaultOnce   sync.Once
)

// Default returns the process-wide logger, writing to
// $TMPDIR/dirhist-logs/search.log. If the file cannot be opened, messages
// are discarded.
func Default() Sink {
	defaultOnce.Do(func() {
		l, err := NewFileLogger(DefaultDir(), INFO)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			defaultLogger = Nop{}
			return
		}
		defaultLogger = l
	})
	return defaultLogger
}

// DefaultDir is the directory used by Default
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "dirhist-logs")
}

// CloseDefault flushes the process-wide logger if it was ever opened
func CloseDefault() {
	if l, ok := Default().(*FileLogger); ok {
		if err := l.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}
}
