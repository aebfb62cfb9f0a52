// Package logger provides the levelled loggers used by dirhist: a rotated
// file logger, a coloured console logger, and helpers to combine them.
package logger

import (
	"strings"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a config or flag value to a Level.
// "trace" is treated as debug; empty or unknown values default to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// ValidLevel reports whether s names a known level
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// Sink is implemented by every logger in this package
type Sink interface {
	LogDebug(format string, args ...interface{})
	LogInfo(format string, args ...interface{})
	LogWarning(format string, args ...interface{})
	LogError(format string, args ...interface{})
}

// Nop discards everything
type Nop struct{}

func (Nop) LogDebug(string, ...interface{})   {}
func (Nop) LogInfo(string, ...interface{})    {}
func (Nop) LogWarning(string, ...interface{}) {}
func (Nop) LogError(string, ...interface{})   {}

// Multi sends every message to each of its sinks in order
type Multi []Sink

func (m Multi) LogDebug(format string, args ...interface{}) {
	for _, s := range m {
		s.LogDebug(format, args...)
	}
}

func (m Multi) LogInfo(format string, args ...interface{}) {
	for _, s := range m {
		s.LogInfo(format, args...)
	}
}

func (m Multi) LogWarning(format string, args ...interface{}) {
	for _, s := range m {
		s.LogWarning(format, args...)
	}
}

func (m Multi) LogError(format string, args ...interface{}) {
	for _, s := range m {
		s.LogError(format, args...)
	}
}
