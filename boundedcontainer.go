package pmr

import "sync"

// boundedContainer is the waiting skeleton shared by BoundedFIFO and
// OrderedReorderQueue: one mutex, two condition variables (one for
// producers blocked on push, one for consumers blocked on pop), a closed
// flag, and four policy hooks. The containers differ only in their hooks;
// this type is never exported.
//
// Grounded on original_source's SyncBoundedContainer base class, which
// factors the same push/pop/close skeleton behind virtual
// insert_into_container / remove_from_container / container_can_accept /
// container_can_yield / container_is_empty methods.
type boundedContainer[T any] struct {
	mu        sync.Mutex
	canAccept *sync.Cond
	canRemove *sync.Cond
	closed    bool

	// accept reports whether item may be inserted without waiting.
	accept func(item T) bool
	// yield reports whether the container currently has something poppable.
	yield func() bool
	// insert adds item to the underlying structure. Called with mu held.
	insert func(item T)
	// remove takes the poppable element out of the underlying structure.
	// Called with mu held; only called when yield() is true.
	remove func() T
}

func newBoundedContainer[T any]() *boundedContainer[T] {
	c := &boundedContainer[T]{}
	c.canAccept = sync.NewCond(&c.mu)
	c.canRemove = sync.NewCond(&c.mu)
	return c
}

// push blocks while accept(item) is false and the container is open. It
// returns ErrClosedOnPush if the container is closed before admission.
func (c *boundedContainer[T]) push(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.accept(item) && !c.closed {
		c.canAccept.Wait()
	}
	if c.closed {
		return ErrClosedOnPush
	}
	c.insert(item)
	c.canRemove.Signal()
	return nil
}

// pop blocks while yield() is false and the container is open. Once the
// container is closed, pop stops waiting: it still returns any element
// that is immediately poppable, but otherwise returns ok == false rather
// than wait for an element that a latched producer failure may mean will
// never arrive (see OrderedReorderQueue's handling of a fatal Map error,
// which closes the queue without having pushed every submitted index).
// In the ordinary, error-free shutdown path every index is pushed before
// close, so "empty" and "nothing left to yield" coincide and draining
// proceeds to completion as spec.md describes.
func (c *boundedContainer[T]) pop() (item T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.yield() {
		if c.closed {
			var zero T
			return zero, false
		}
		c.canRemove.Wait()
	}
	item = c.remove()
	c.canAccept.Signal()
	return item, true
}

// close marks the container closed and wakes every waiter on both sides.
// Idempotent.
func (c *boundedContainer[T]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.canAccept.Broadcast()
	c.canRemove.Broadcast()
}

// isClosed reports whether close has been called.
func (c *boundedContainer[T]) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
