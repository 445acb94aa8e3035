package pmr

import (
	"context"
	"sync"
	"sync/atomic"
)

// Pipeline runs a bounded, ordered, parallel map-reduce: values pushed in
// through Submit are mapped concurrently across a fixed worker pool and
// handed to a single Reducer strictly in submission order.
//
// Grounded on the teacher's Workers façade and original_source's
// Dispatcher<I, O> template, which couples the same two collaborators
// through the same bounded queue, bounded priority queue, worker-thread
// pool, and single consumer thread.
type Pipeline[I, O any] struct {
	fifo    *boundedFIFO[inputEnvelope[I]]
	reorder *orderedReorderQueue[O]
	workers *workerPool[I, O]
	reducer *reducerLoop[O]
	metrics *pipelineMetrics

	nextSubmit atomic.Uint64

	// pending tracks SubmitContext calls whose push to fifo has not yet
	// completed. Close waits on it before closing fifo, so a push abandoned
	// by a canceled ctx still either lands in the pipeline or is dropped
	// only once the pipeline has genuinely finished accepting work — never
	// silently, behind a caller who already moved on after a timeout.
	pending sync.WaitGroup

	closeOnce sync.Once
	closeErr  error

	failOnce sync.Once
	failed   error
}

// New constructs a Pipeline with the given Mapper and Reducer. Both must be
// non-nil. The returned Pipeline must eventually be closed with Close.
func New[I, O any](mapper Mapper[I, O], reducer Reducer[O], opts ...Option) (*Pipeline[I, O], error) {
	if mapper == nil || reducer == nil {
		return nil, ErrInvalidArgument
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	p := &Pipeline[I, O]{
		fifo:    newBoundedFIFO[inputEnvelope[I]](cfg.fifoCapacity),
		reorder: newOrderedReorderQueue[O](cfg.reorderCapacity, 0),
		metrics: newPipelineMetrics(cfg.metrics),
	}
	p.workers = newWorkerPool(mapper, p.fifo, p.reorder, p.metrics, p.fail)
	p.reducer = newReducerLoop(reducer, p.reorder, p.metrics, p.fail)

	ctx := context.Background()
	p.workers.start(ctx, cfg.workers)
	p.reducer.start(ctx)

	return p, nil
}

// Submit enqueues value for mapping, in the order Submit is called. It
// blocks while the input queue is full and returns ErrClosedOnSubmit once
// Close has been called or a collaborator failure has latched.
func (p *Pipeline[I, O]) Submit(value I) error {
	return p.SubmitContext(context.Background(), value)
}

// SubmitContext is Submit with a caller-supplied context. A canceled ctx
// unblocks a Submit waiting on a full queue and returns ctx.Err(); it does
// not cancel work already handed to a Mapper. The underlying push is not
// abandoned when ctx wins the race: Close blocks until every such push has
// resolved, one way or the other, so a slow admission can never turn into a
// silently dropped index once the caller has stopped waiting on it.
func (p *Pipeline[I, O]) SubmitContext(ctx context.Context, value I) error {
	idx := p.nextSubmit.Add(1) - 1

	p.pending.Add(1)
	done := make(chan error, 1)
	go func() {
		defer p.pending.Done()
		err := p.fifo.push(inputEnvelope[I]{idx: idx, value: value})
		if err == nil {
			p.metrics.submitted.Add(1)
			p.metrics.inflight.Add(1)
			p.metrics.fifoDepth.Add(1)
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return ErrClosedOnSubmit
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fail latches the first collaborator error and closes both containers, so
// that every worker blocked pushing to a saturated reorder queue and every
// pusher blocked on a full input queue unblocks immediately instead of
// waiting on a run that has already failed.
func (p *Pipeline[I, O]) fail(err error) {
	p.failOnce.Do(func() {
		p.failed = err
		p.fifo.close()
		p.reorder.close()
	})
}

// Close runs the pipeline's four-phase shutdown: close the input queue,
// join every worker, close the reorder queue, join the reducer. It is
// idempotent and returns the first latched Map or Reduce failure, or nil if
// no collaborator failed. Close first waits for
// every SubmitContext call still racing a push against its context to
// resolve, so closing the input queue never orphans an already-sequenced
// index.
func (p *Pipeline[I, O]) Close() error {
	p.closeOnce.Do(func() {
		p.pending.Wait()
		p.fifo.close()
		p.workers.join()
		p.reorder.close()
		p.reducer.join()
		p.closeErr = p.failed
	})
	return p.closeErr
}
