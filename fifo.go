package pmr

import "github.com/gammazero/deque"

// boundedFIFO is the pipeline's input queue: a bounded, closable,
// first-in-first-out buffer of inputEnvelope[I] values. Every worker pops
// from the same boundedFIFO, so ordering among workers is not the FIFO's
// job — only admission control and shutdown are.
//
// Grounded on the teacher's fifo.go, which wraps a ring buffer behind the
// same push/pop/close shape; backed here by gammazero/deque rather than a
// hand-rolled ring, the way petenewcomb-psg-go backs its in-flight task
// queue.
type boundedFIFO[T any] struct {
	*boundedContainer[T]
	capacity int
	buf      deque.Deque[T]
}

// newBoundedFIFO creates a FIFO that blocks pushers once capacity items are
// buffered and unpopped.
func newBoundedFIFO[T any](capacity int) *boundedFIFO[T] {
	f := &boundedFIFO[T]{capacity: capacity}
	f.boundedContainer = newBoundedContainer[T]()
	f.accept = func(T) bool { return f.buf.Len() < f.capacity }
	f.yield = func() bool { return f.buf.Len() > 0 }
	f.insert = func(item T) { f.buf.PushBack(item) }
	f.remove = func() T { return f.buf.PopFront() }
	return f
}
