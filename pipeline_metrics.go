package pmr

import (
	"time"

	"github.com/fenwick-io/pmr/metrics"
)

// pipelineMetrics holds the instruments a Pipeline reports through. It is
// wired only at the façade, worker pool, and reducer level; boundedFIFO and
// orderedReorderQueue never reference metrics directly, so the same
// containers could back a future pipeline variant with no metrics
// dependency at all.
type pipelineMetrics struct {
	submitted     metrics.Counter
	mapped        metrics.Counter
	mapErrors     metrics.Counter
	reduced       metrics.Counter
	reduceErrors  metrics.Counter
	mapLatency    metrics.Histogram
	reduceLatency metrics.Histogram
	inflight      metrics.UpDownCounter
	fifoDepth     metrics.UpDownCounter
	reorderDepth  metrics.UpDownCounter
}

func newPipelineMetrics(p metrics.Provider) *pipelineMetrics {
	return &pipelineMetrics{
		submitted:     p.Counter("pmr_submitted_total", metrics.WithDescription("inputs submitted"), metrics.WithUnit("1")),
		mapped:        p.Counter("pmr_mapped_total", metrics.WithDescription("inputs mapped successfully"), metrics.WithUnit("1")),
		mapErrors:     p.Counter("pmr_map_errors_total", metrics.WithDescription("mapper failures"), metrics.WithUnit("1")),
		reduced:       p.Counter("pmr_reduced_total", metrics.WithDescription("outputs reduced"), metrics.WithUnit("1")),
		reduceErrors:  p.Counter("pmr_reduce_errors_total", metrics.WithDescription("reducer failures"), metrics.WithUnit("1")),
		mapLatency:    p.Histogram("pmr_map_latency_seconds", metrics.WithDescription("Map call duration"), metrics.WithUnit("seconds")),
		reduceLatency: p.Histogram("pmr_reduce_latency_seconds", metrics.WithDescription("Reduce call duration"), metrics.WithUnit("seconds")),
		inflight:      p.UpDownCounter("pmr_inflight", metrics.WithDescription("inputs submitted but not yet reduced"), metrics.WithUnit("1")),
		fifoDepth:     p.UpDownCounter("pmr_fifo_depth", metrics.WithDescription("items buffered in the input queue"), metrics.WithUnit("1")),
		reorderDepth:  p.UpDownCounter("pmr_reorder_depth", metrics.WithDescription("items buffered in the reorder queue"), metrics.WithUnit("1")),
	}
}

// startMapTimer returns a stop function that records elapsed seconds into
// mapLatency when called.
func (m *pipelineMetrics) startMapTimer() func() {
	start := time.Now()
	return func() {
		m.mapLatency.Record(time.Since(start).Seconds())
	}
}

// startReduceTimer returns a stop function that records elapsed seconds
// into reduceLatency when called.
func (m *pipelineMetrics) startReduceTimer() func() {
	start := time.Now()
	return func() {
		m.reduceLatency.Record(time.Since(start).Seconds())
	}
}
