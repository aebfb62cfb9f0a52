package search

import (
	"regexp"
	"sort"
)

// Status is the lifecycle state of an Engine
type Status int32

const (
	StatusReady Status = iota
	StatusSearching
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusSearching:
		return "searching"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// RootKey is the result key for matches found directly inside the root directory
const RootKey = "/"

// Request is the immutable input of a search
type Request struct {
	Root    string         // Root directory, normalized
	Pattern *regexp.Regexp // Compiled filename pattern
}

// Result maps a directory (relative to the root, slash separated) to the
// number of matching files directly inside it. Directories without matches
// have no entry.
type Result map[string]int

// Clone returns an independent copy of r
func (r Result) Clone() Result {
	out := make(Result, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the directory keys in ascending order
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the number of matched files across all directories
func (r Result) Total() int {
	total := 0
	for _, v := range r {
		total += v
	}
	return total
}

// Logger receives traversal and observer failures along with progress messages.
// *logger.FileLogger, *logger.ConsoleLogger and logger.Multi implement it.
type Logger interface {
	LogDebug(format string, args ...interface{})
	LogInfo(format string, args ...interface{})
	LogWarning(format string, args ...interface{})
	LogError(format string, args ...interface{})
}

// Options contains engine settings
type Options struct {
	IgnoreCase     bool     // Compile the pattern case-insensitively
	FollowSymlinks bool     // Descend into symlinked directories
	ExcludeDirs    []string // Directory base names that are never descended into
	Logger         Logger   // Defaults to the shared file logger
}
