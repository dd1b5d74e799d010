// Package pool implements the Object Pool (spec.md §5): a per-worker
// free list for Font Run instances, amortizing allocation across
// re-layouts. The teacher has no pooling of any kind — fontrun.Run
// instances there are allocated fresh on every Layout call — so this
// package is new code, grounded on stdlib sync.Pool per spec.md §9's
// design note ("object pooling for FRs can be replaced with arena
// allocation... the public behavior is identical"); no third-party
// pooling library appears anywhere in the retrieval pack (see
// DESIGN.md), so sync.Pool is the justified stdlib leaf here.
package pool

import "sync"

// Resettable is implemented by pooled values that need to clear their
// contents before reuse (spec.md §5: "checking out a run resets it via a
// cleaner").
type Resettable interface {
	Reset()
}

// Pool recycles *T instances. It is not shared across threads (spec.md
// §5: "pools are never shared across threads") — callers create one Pool
// per worker goroutine.
type Pool[T any] struct {
	sp  sync.Pool
	new func() *T
}

// New creates a Pool whose Get calls newFn when the free list is empty.
func New[T any](newFn func() *T) *Pool[T] {
	p := &Pool[T]{new: newFn}
	p.sp.New = func() any { return newFn() }
	return p
}

// Get checks out a value, resetting it first if it implements Resettable.
func (p *Pool[T]) Get() *T {
	v := p.sp.Get().(*T)
	if r, ok := any(v).(Resettable); ok {
		r.Reset()
	}
	return v
}

// Put returns a value to the pool for reuse.
func (p *Pool[T]) Put(v *T) {
	p.sp.Put(v)
}
