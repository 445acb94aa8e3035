package pmr

import (
	"context"
	"sync"
)

// reducerLoop drains the reorder queue on a single goroutine and hands each
// output to the Reducer strictly in submission order. A Reduce error is
// fatal: it is latched via fail and the loop returns immediately, so the
// reduce stream for the run is considered incomplete from that point on.
//
// Grounded on original_source's single consumer thread reading the
// SyncBoundedPriorityQueue in dispatcher.hpp and feeding FileCollector.
type reducerLoop[O any] struct {
	reducer Reducer[O]
	in      *orderedReorderQueue[O]
	metrics *pipelineMetrics
	fail    func(error)

	wg sync.WaitGroup
}

func newReducerLoop[O any](reducer Reducer[O], in *orderedReorderQueue[O], metrics *pipelineMetrics, fail func(error)) *reducerLoop[O] {
	return &reducerLoop[O]{reducer: reducer, in: in, metrics: metrics, fail: fail}
}

func (r *reducerLoop[O]) start(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.loop(ctx)
	}()
}

func (r *reducerLoop[O]) loop(ctx context.Context) {
	for {
		idx, value, ok := r.in.pop()
		if !ok {
			return
		}
		r.metrics.reorderDepth.Add(-1)

		stop := r.metrics.startReduceTimer()
		err := r.reducer.Reduce(ctx, value)
		stop()

		if err != nil {
			r.metrics.reduceErrors.Add(1)
			r.fail(wrapReduceError(idx, err))
			return
		}
		r.metrics.reduced.Add(1)
		r.metrics.inflight.Add(-1)
	}
}

func (r *reducerLoop[O]) join() {
	r.wg.Wait()
}
