package search

import (
	"fmt"
	"os"
	"regexp"
)

// Matches reports whether the pattern occurs anywhere in name.
// name is a base filename, never a path. A nil pattern matches everything.
func Matches(name string, pattern *regexp.Regexp) bool {
	if pattern == nil {
		return true
	}
	return pattern.MatchString(name)
}

// compilePattern compiles a filename pattern
func compilePattern(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

// NewRequest validates root and pattern and returns a ready to use Request.
// Both failures are reported as *ConfigError.
func NewRequest(root, pattern string, ignoreCase bool) (Request, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Request{}, &ConfigError{Field: "root", Value: root, Kind: ErrInvalidRoot, Err: err}
	}
	if !info.IsDir() {
		return Request{}, &ConfigError{
			Field: "root",
			Value: root,
			Kind:  ErrInvalidRoot,
			Err:   fmt.Errorf("not a directory"),
		}
	}

	re, err := compilePattern(pattern, ignoreCase)
	if err != nil {
		return Request{}, &ConfigError{Field: "pattern", Value: pattern, Kind: ErrInvalidPattern, Err: err}
	}

	return Request{Root: normalizeRoot(root), Pattern: re}, nil
}
