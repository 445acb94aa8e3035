package pool

import "sync"

// dynamicPool adapts sync.Pool to Pool[T]: unbounded, garbage-collectible,
// no blocking.
type dynamicPool[T any] struct {
	p sync.Pool
}

// NewDynamic returns a Pool[T] backed by sync.Pool. Values not currently
// checked out may be reclaimed by the garbage collector between Put and
// Get; newFn must be safe to call concurrently.
func NewDynamic[T any](newFn func() T) Pool[T] {
	return &dynamicPool[T]{p: sync.Pool{New: func() interface{} { return newFn() }}}
}

func (d *dynamicPool[T]) Get() T { return d.p.Get().(T) }

func (d *dynamicPool[T]) Put(v T) { d.p.Put(v) }
