package pmr

import (
	"context"
	"sync"
)

// workerPool runs a fixed number of long-running goroutines, each pulling
// inputEnvelopes off the input FIFO, calling Map, and pushing the result
// onto the reorder queue at the envelope's original index.
//
// Grounded on original_source's mapper_threads loop in dispatcher.hpp,
// which spawns a fixed number of persistent threads rather than
// dispatching a goroutine per item; the teacher's pool package models a
// bounded set of reusable objects, not bounded concurrent execution, so it
// is not used here — see DESIGN.md.
type workerPool[I, O any] struct {
	mapper  Mapper[I, O]
	in      *boundedFIFO[inputEnvelope[I]]
	out     *orderedReorderQueue[O]
	metrics *pipelineMetrics
	fail    func(error)

	wg sync.WaitGroup
}

func newWorkerPool[I, O any](mapper Mapper[I, O], in *boundedFIFO[inputEnvelope[I]], out *orderedReorderQueue[O], metrics *pipelineMetrics, fail func(error)) *workerPool[I, O] {
	return &workerPool[I, O]{mapper: mapper, in: in, out: out, metrics: metrics, fail: fail}
}

// start launches n worker goroutines, each running loop until in is closed.
func (w *workerPool[I, O]) start(ctx context.Context, n int) {
	w.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer w.wg.Done()
			w.loop(ctx)
		}()
	}
}

// loop pops envelopes until the input FIFO is drained and closed, mapping
// each one and forwarding the result to the reorder queue at its original
// index. A Map error is fatal: it is latched via fail and the loop exits
// without pushing the failed index, leaving a permanent gap the reorder
// queue's pop detects as "nothing further will ever arrive" once it is
// itself closed during shutdown.
func (w *workerPool[I, O]) loop(ctx context.Context) {
	for {
		env, ok := w.in.pop()
		if !ok {
			return
		}
		w.metrics.fifoDepth.Add(-1)

		stop := w.metrics.startMapTimer()
		out, err := w.mapper.Map(ctx, env.value)
		stop()

		if err != nil {
			w.metrics.mapErrors.Add(1)
			w.fail(wrapMapError(env.idx, err))
			return
		}
		w.metrics.mapped.Add(1)

		if pushErr := w.out.push(env.idx, out); pushErr != nil {
			// The reorder queue was closed by a concurrent failure or by
			// shutdown; this worker's output is simply dropped.
			return
		}
		w.metrics.reorderDepth.Add(1)
	}
}

// join waits for every worker goroutine to return.
func (w *workerPool[I, O]) join() {
	w.wg.Wait()
}
