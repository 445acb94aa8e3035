package pmr

import (
	"runtime"

	"github.com/fenwick-io/pmr/metrics"
)

// config holds a Pipeline's resolved construction parameters. Populated by
// defaultConfig and then mutated in order by the Options passed to New.
type config struct {
	workers         int
	fifoCapacity    int
	reorderCapacity int
	metrics         metrics.Provider
}

// Option configures a Pipeline at construction time. Grounded on the
// teacher's functional-options pattern in options.go/config.go.
type Option func(*config) error

// defaultConfig returns the configuration New starts from before applying
// Options: one worker per logical CPU, and FIFO/reorder capacities one
// larger than the worker count, so that every worker can have an item
// in flight with one more queued behind it.
func defaultConfig() config {
	n := runtime.NumCPU()
	return config{
		workers:         n,
		fifoCapacity:    n + 1,
		reorderCapacity: n + 1,
		metrics:         metrics.NewNoopProvider(),
	}
}

// WithWorkers sets the number of persistent mapper goroutines. n must be
// positive.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return ErrInvalidArgument
		}
		c.workers = n
		return nil
	}
}

// WithFIFOCapacity sets the input queue's capacity. capacity must be
// positive.
func WithFIFOCapacity(capacity int) Option {
	return func(c *config) error {
		if capacity <= 0 {
			return ErrInvalidArgument
		}
		c.fifoCapacity = capacity
		return nil
	}
}

// WithReorderCapacity sets the reorder queue's capacity. capacity must be
// positive. A capacity smaller than the worker count is legal but increases
// the chance that a worker blocks on push while waiting for a slow
// predecessor to vacate the queue's head.
func WithReorderCapacity(capacity int) Option {
	return func(c *config) error {
		if capacity <= 0 {
			return ErrInvalidArgument
		}
		c.reorderCapacity = capacity
		return nil
	}
}

// WithMetricsProvider sets the metrics.Provider the Pipeline reports
// through. provider must not be nil.
func WithMetricsProvider(provider metrics.Provider) Option {
	return func(c *config) error {
		if provider == nil {
			return ErrInvalidArgument
		}
		c.metrics = provider
		return nil
	}
}

func validate(c *config) error {
	if c.workers <= 0 || c.fifoCapacity <= 0 || c.reorderCapacity <= 0 {
		return ErrInvalidArgument
	}
	return nil
}
