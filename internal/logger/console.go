package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer.
// Levels are coloured when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	level       Level
	colorOutput bool
	mu          sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger. A nil writer discards all messages.
func NewConsoleLogger(w io.Writer, level Level) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		level:       level,
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that should receive colours.
// NO_COLOR disables colours through color.NoColor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (cl *ConsoleLogger) LogDebug(format string, args ...interface{}) {
	cl.logWithLevel(DEBUG, format, args)
}

func (cl *ConsoleLogger) LogInfo(format string, args ...interface{}) {
	cl.logWithLevel(INFO, format, args)
}

func (cl *ConsoleLogger) LogWarning(format string, args ...interface{}) {
	cl.logWithLevel(WARNING, format, args)
}

func (cl *ConsoleLogger) LogError(format string, args ...interface{}) {
	cl.logWithLevel(ERROR, format, args)
}

func (cl *ConsoleLogger) logWithLevel(level Level, format string, args []interface{}) {
	if cl.writer == nil || level < cl.level {
		return
	}

	label := level.String()
	if cl.colorOutput {
		label = levelColor(level).Sprint(label)
	}
	line := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), label, fmt.Sprintf(format, args...))

	cl.mu.Lock()
	defer cl.mu.Unlock()
	io.WriteString(cl.writer, line)
}

func levelColor(level Level) *color.Color {
	switch level {
	case DEBUG:
		return color.New(color.FgCyan)
	case INFO:
		return color.New(color.FgBlue)
	case WARNING:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
