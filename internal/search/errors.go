package search

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRoot    = errors.New("invalid root directory")
	ErrInvalidPattern = errors.New("invalid pattern")
)

// ConfigError is returned by New and NewRequest when the root directory or
// the pattern cannot be used. It is the only error a caller ever sees; faults
// during a search are logged and reflected as missing counts.
type ConfigError struct {
	Field string // "root" or "pattern"
	Value string
	Kind  error // ErrInvalidRoot or ErrInvalidPattern
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %q", e.Kind, e.Value)
	}
	return fmt.Sprintf("%v %q: %v", e.Kind, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// TraversalError describes a directory that could not be listed, or an entry
// that could not be classified, during a search.
type TraversalError struct {
	Dir string
	Op  string // "list" or "stat"
	Err error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Dir, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

// ObserverError records a panic raised by a subscribed callback.
type ObserverError struct {
	Subscription Subscription
	Value        interface{}
	Stack        []byte
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("observer %d panicked: %v", e.Subscription, e.Value)
}
