// Package pmr provides an ordered parallel map-reduce pipeline: a stream of
// inputs is mapped concurrently across a fixed pool of workers and reduced
// by a single sink, strictly in submission order, regardless of how the
// workers finish.
//
// Construction
//
//	p, err := pmr.New[int, string](mapper, reducer, pmr.WithWorkers(8))
//
// Unless overridden, the following defaults apply:
//   - Workers: runtime.NumCPU()
//   - FIFOCapacity: Workers + 1
//   - ReorderCapacity: Workers + 1
//   - MetricsProvider: a no-op provider
//
// Lifecycle
//
// Submit pushes values onto the pipeline in the order it is called; Close
// runs the four-phase shutdown described in the package's design notes:
// close the input queue, join the workers, close the reorder queue, join
// the reducer. Close is idempotent and safe to call from a deferred
// statement; a pipeline that is never closed leaks its worker and reducer
// goroutines.
//
// Ordering
//
// The reducer always observes mapped outputs in the order their inputs were
// submitted, even though map latency is unbounded and workers finish out of
// order. This is the pipeline's central guarantee; see OrderedReorderQueue
// for the mechanism.
//
// Failure
//
// A Map or Reduce failure is fatal to the run: it is latched, both internal
// containers are closed, every goroutine is joined, and the error surfaces
// from Close. There are no retries and no partial-failure skip semantics;
// the mapper must be total over its declared input set.
package pmr
