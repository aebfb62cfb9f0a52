package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"dirhist/internal/logger"
)

// Engine counts files whose names match a pattern, per directory, beneath a root.
//
// Search runs one traversal at a time; a second concurrent Search waits for
// the first to finish. Result, Cancel, Status, Subscribe and Unsubscribe never
// wait for a running traversal.
type Engine struct {
	req     Request
	log     Logger
	fs      dirReader
	follow  bool
	exclude map[string]bool

	searchMu  sync.Mutex
	status    atomic.Int32
	store     *resultStore
	observers observerRegistry
}

// New validates root and pattern and returns an engine bound to them.
// The returned error is always a *ConfigError.
func New(root, pattern string, opts Options) (*Engine, error) {
	req, err := NewRequest(root, pattern, opts.IgnoreCase)
	if err != nil {
		return nil, err
	}
	return NewEngine(req, opts), nil
}

// NewEngine returns an engine for an already built request. The root is not
// checked: a missing root yields an empty result and a logged TraversalError.
func NewEngine(req Request, opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	exclude := make(map[string]bool, len(opts.ExcludeDirs))
	for _, dir := range opts.ExcludeDirs {
		exclude[dir] = true
	}

	req.Root = normalizeRoot(req.Root)

	return &Engine{
		req:     req,
		log:     log,
		fs:      osDirReader{},
		follow:  opts.FollowSymlinks,
		exclude: exclude,
		store:   newResultStore(),
	}
}

// Request returns the root and pattern the engine searches with
func (e *Engine) Request() Request {
	return e.req
}

// Status returns the current lifecycle state
func (e *Engine) Status() Status {
	return Status(e.status.Load())
}

// Search clears the previous result, walks the tree and returns the counts.
//
// Observers are notified once after the reset and once per match. The walk
// stops at the next directory boundary after Cancel is called or ctx is done,
// leaving the counts gathered so far. Search never fails: unreadable
// directories are logged and contribute nothing.
//
// Observers must not call Search on the same engine; it would deadlock.
func (e *Engine) Search(ctx context.Context) Result {
	e.searchMu.Lock()
	defer e.searchMu.Unlock()

	e.status.Store(int32(StatusSearching))
	e.store.reset()
	e.notify()

	e.log.LogInfo("Search started: root=%s pattern=%s", e.req.Root, e.req.Pattern)
	start := time.Now()

	e.walk(ctx, e.req.Root)

	result := e.store.snapshot()
	if e.status.CompareAndSwap(int32(StatusSearching), int32(StatusReady)) {
		e.log.LogInfo("Search completed in %v: %d matches in %d directories",
			time.Since(start), result.Total(), len(result))
	} else {
		e.log.LogInfo("Search cancelled after %v: %d matches in %d directories",
			time.Since(start), result.Total(), len(result))
	}
	return result
}

// Result returns the counts gathered so far. It is empty before the first search.
func (e *Engine) Result() Result {
	return e.store.snapshot()
}

// Cancel stops a running search at its next directory boundary.
// It has no effect when no search is running.
func (e *Engine) Cancel() {
	if e.status.CompareAndSwap(int32(StatusSearching), int32(StatusCancelled)) {
		e.log.LogInfo("Search cancellation requested")
	}
}

// Subscribe registers fn to be called whenever the result changes.
// The same function may be subscribed more than once; each subscription is
// called separately.
func (e *Engine) Subscribe(fn func()) Subscription {
	return e.observers.subscribe(fn)
}

// Unsubscribe removes a subscription. Unknown or already removed
// subscriptions are ignored.
func (e *Engine) Unsubscribe(sub Subscription) {
	if !e.observers.unsubscribe(sub) {
		e.log.LogDebug("Unsubscribe of unknown subscription %d ignored", sub)
	}
}

func (e *Engine) notify() {
	e.observers.notifyAll(func(err *ObserverError) {
		e.log.LogError("%v\n%s", err, err.Stack)
	})
}
