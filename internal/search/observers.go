package search

import (
	"runtime/debug"
	"sync"
)

// Subscription identifies a single Subscribe call. The zero value never
// identifies a live subscription.
type Subscription uint64

type observer struct {
	id Subscription
	fn func()
}

// observerRegistry is an ordered list of result-changed callbacks
type observerRegistry struct {
	mu      sync.RWMutex
	lastID  Subscription
	entries []observer
}

func (r *observerRegistry) subscribe(fn func()) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	r.entries = append(r.entries, observer{id: r.lastID, fn: fn})
	return r.lastID
}

// unsubscribe removes the entry for id and reports whether one existed
func (r *observerRegistry) unsubscribe(id Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.entries {
		if o.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (r *observerRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// notifyAll calls every callback in subscription order on the calling goroutine.
// Callbacks run outside the lock so they may subscribe or unsubscribe.
// A panicking callback is handed to onPanic and the rest still run.
func (r *observerRegistry) notifyAll(onPanic func(*ObserverError)) {
	r.mu.RLock()
	entries := make([]observer, len(r.entries))
	copy(entries, r.entries)
	r.mu.RUnlock()

	for _, o := range entries {
		if o.fn == nil {
			continue
		}
		r.call(o, onPanic)
	}
}

func (r *observerRegistry) call(o observer, onPanic func(*ObserverError)) {
	defer func() {
		if v := recover(); v != nil && onPanic != nil {
			onPanic(&ObserverError{Subscription: o.id, Value: v, Stack: debug.Stack()})
		}
	}()
	o.fn()
}
