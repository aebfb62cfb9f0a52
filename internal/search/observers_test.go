package search

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_CalledOnResetAndEveryMatch(t *testing.T) {
	root := makeTree(t, "t1", "a/t2", "a/t3", "a/x", "b/c/t4")
	engine, _ := newTestEngine(t, root, "^t")

	var calls atomic.Int32
	engine.Subscribe(func() { calls.Add(1) })

	result := engine.Search(context.Background())

	assert.Equal(t, 4, result.Total())
	assert.Equal(t, int32(1+result.Total()), calls.Load())
}

func TestSubscribe_ObserverSeesGrowingResult(t *testing.T) {
	root := makeTree(t, "a/t1", "a/t2", "b/t3")
	engine, _ := newTestEngine(t, root, "^t")

	var totals []int
	engine.Subscribe(func() { totals = append(totals, engine.Result().Total()) })

	engine.Search(context.Background())

	assert.Equal(t, []int{0, 1, 2, 3}, totals)
}

func TestUnsubscribe_BeforeSearch(t *testing.T) {
	root := makeTree(t, "t1", "a/t2")
	engine, _ := newTestEngine(t, root, "^t")

	var calls atomic.Int32
	sub := engine.Subscribe(func() { calls.Add(1) })
	engine.Unsubscribe(sub)

	engine.Search(context.Background())

	assert.Zero(t, calls.Load())
}

func TestUnsubscribe_TwiceIsSafe(t *testing.T) {
	root := makeTree(t, "t1")
	engine, _ := newTestEngine(t, root, "^t")

	sub := engine.Subscribe(func() {})
	engine.Unsubscribe(sub)
	assert.NotPanics(t, func() {
		engine.Unsubscribe(sub)
		engine.Unsubscribe(Subscription(0))
		engine.Unsubscribe(Subscription(999))
	})
	assert.Zero(t, engine.observers.len())
}

func TestSubscribe_SameFunctionTwice(t *testing.T) {
	root := makeTree(t, "t1", "t2")
	engine, _ := newTestEngine(t, root, "^t")

	var calls atomic.Int32
	fn := func() { calls.Add(1) }
	first := engine.Subscribe(fn)
	second := engine.Subscribe(fn)
	require.NotEqual(t, first, second)

	engine.Search(context.Background())
	assert.Equal(t, int32(2*3), calls.Load())

	// removing one subscription leaves the other in place
	engine.Unsubscribe(first)
	calls.Store(0)
	engine.Search(context.Background())
	assert.Equal(t, int32(3), calls.Load())
}

func TestSubscribe_PanickingObserverIsIsolated(t *testing.T) {
	root := makeTree(t, "t1", "a/t2", "a/t3")
	engine, log := newTestEngine(t, root, "^t")

	var before, after atomic.Int32
	engine.Subscribe(func() { before.Add(1) })
	engine.Subscribe(func() { panic("boom") })
	engine.Subscribe(func() { after.Add(1) })

	result := engine.Search(context.Background())

	assert.Equal(t, Result{RootKey: 1, "a": 2}, result)
	assert.Equal(t, StatusReady, engine.Status())
	assert.Equal(t, int32(4), before.Load())
	assert.Equal(t, int32(4), after.Load())
	assert.Len(t, log.Errors(), 4)
	assert.True(t, log.hasError("observer 2 panicked: boom"))
}

func TestObserverRegistry_Order(t *testing.T) {
	var r observerRegistry
	var order []int

	a := r.subscribe(func() { order = append(order, 1) })
	r.subscribe(func() { order = append(order, 2) })
	r.subscribe(func() { order = append(order, 3) })
	r.subscribe(nil)

	r.notifyAll(nil)
	assert.Equal(t, []int{1, 2, 3}, order)

	assert.True(t, r.unsubscribe(a))
	assert.False(t, r.unsubscribe(a))

	order = nil
	r.notifyAll(nil)
	assert.Equal(t, []int{2, 3}, order)
	assert.Equal(t, 3, r.len())
}

func TestObserverRegistry_CallbackMayModifyRegistry(t *testing.T) {
	var r observerRegistry
	var inner atomic.Int32

	var self Subscription
	self = r.subscribe(func() {
		r.unsubscribe(self)
		r.subscribe(func() { inner.Add(1) })
	})

	r.notifyAll(nil)
	assert.Zero(t, inner.Load(), "entries added during a notification wait for the next one")

	r.notifyAll(nil)
	assert.Equal(t, int32(1), inner.Load())
	assert.Equal(t, 1, r.len())
}

func TestObserverRegistry_PanicReported(t *testing.T) {
	var r observerRegistry
	sub := r.subscribe(func() { panic("bad observer") })

	var got *ObserverError
	r.notifyAll(func(err *ObserverError) { got = err })

	require.NotNil(t, got)
	assert.Equal(t, sub, got.Subscription)
	assert.Equal(t, "bad observer", got.Value)
	assert.NotEmpty(t, got.Stack)
	assert.Contains(t, got.Error(), "panicked")
}
