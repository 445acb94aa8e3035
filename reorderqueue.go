package pmr

import (
	"cmp"

	"github.com/addrummond/heap"

	"github.com/fenwick-io/pmr/pool"
)

// slot is the heap element backing OrderedReorderQueue: a mapped output
// tagged with the submission index it must be replayed at. Recycled through
// a pool.Pool so that a long-running pipeline does not churn one heap
// allocation per submitted item.
type slot[T any] struct {
	idx   uint64
	value T
}

// Cmp orders slots by ascending index, giving addrummond/heap a min-heap
// over submission order.
func (s *slot[T]) Cmp(other *slot[T]) int {
	return cmp.Compare(s.idx, other.idx)
}

// orderedReorderQueue restores submission order across outputs that arrive
// from workers out of order. It admits an item either when there is free
// capacity, or when the item would become the new head — i.e. its index is
// lower than the index currently at the root of the heap. The second clause
// is the deadlock-avoidance rule: without it, a full queue whose head is
// stuck waiting on a slow worker could never admit the very item the reducer
// is blocked on, and the pipeline would wedge with every worker slot full of
// outputs the queue refuses to take.
//
// Grounded on original_source's SyncBoundedPriorityQueue, whose accept
// predicate is pq.size() < max_size || item.first < pq.top().first.
type orderedReorderQueue[T any] struct {
	*boundedContainer[*slot[T]]
	capacity int
	heap     heap.Heap[slot[T], heap.Min]
	size     int // items currently in heap; tracked manually alongside it
	slots    pool.Pool[*slot[T]]
	next     uint64
}

func newOrderedReorderQueue[T any](capacity int, startIndex uint64) *orderedReorderQueue[T] {
	q := &orderedReorderQueue[T]{
		capacity: capacity,
		next:     startIndex,
		slots:    pool.NewDynamic(func() *slot[T] { return &slot[T]{} }),
	}
	q.boundedContainer = newBoundedContainer[*slot[T]]()

	q.accept = func(item *slot[T]) bool {
		if q.size < q.capacity {
			return true
		}
		top, ok := heap.Peek(&q.heap)
		return ok && item.idx < top.idx
	}
	q.yield = func() bool {
		top, ok := heap.Peek(&q.heap)
		return ok && top.idx == q.next
	}
	q.insert = func(item *slot[T]) {
		heap.PushOrderable(&q.heap, *item)
		q.size++
		q.slots.Put(item)
	}
	q.remove = func() *slot[T] {
		top, _ := heap.PopOrderable(&q.heap)
		if top.idx != q.next {
			panic("pmr: reorder queue popped an index other than the watermark")
		}
		q.size--
		q.next++
		out := q.slots.Get()
		out.idx, out.value = top.idx, top.value
		return out
	}
	return q
}

// push enqueues value at idx, waiting while the admission rule above is not
// satisfied and the queue is open.
func (q *orderedReorderQueue[T]) push(idx uint64, value T) error {
	item := q.slots.Get()
	item.idx, item.value = idx, value
	return q.boundedContainer.push(item)
}

// pop returns the next slot in submission order once it has arrived,
// recycling the slot after copying its contents out. ok is false once the
// queue is closed and nothing further is poppable — including the case
// where a fatal Map failure permanently skipped an index, leaving a gap pop
// would otherwise wait on forever.
func (q *orderedReorderQueue[T]) pop() (idx uint64, value T, ok bool) {
	s, ok := q.boundedContainer.pop()
	if !ok {
		var zero T
		return 0, zero, false
	}
	idx, value = s.idx, s.value
	q.slots.Put(s)
	return idx, value, true
}
