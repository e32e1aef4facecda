package query

import (
	"sync"
	"sync/atomic"
)

// Binding is the lifecycle guard for one attach/detach cycle of an observing
// context. Every state publication checks Live; a publication attempted after
// Detach is silently dropped, not queued. Detach suppresses publication only:
// a successful execution still writes through to the cache for the next
// observer.
type Binding struct {
	live      atomic.Bool
	cleanupMu sync.Mutex
	cleanups  []func()
}

func newBinding() *Binding {
	b := &Binding{}
	b.live.Store(true)
	return b
}

// Live reports whether the observing context is still attached.
func (b *Binding) Live() bool {
	return b.live.Load()
}

// OnDetach registers a teardown function to run when the binding detaches.
// Functions run in reverse registration order. Registering after detach runs
// the function immediately.
func (b *Binding) OnDetach(fn func()) {
	b.cleanupMu.Lock()
	if !b.live.Load() {
		b.cleanupMu.Unlock()
		fn()
		return
	}
	b.cleanups = append(b.cleanups, fn)
	b.cleanupMu.Unlock()
}

// Detach tears down the binding. Safe to call on every exit path: the first
// call wins, later calls are no-ops, and cleanup functions run exactly once.
func (b *Binding) Detach() {
	if !b.live.CompareAndSwap(true, false) {
		return
	}

	b.cleanupMu.Lock()
	cleanups := b.cleanups
	b.cleanups = nil
	b.cleanupMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
