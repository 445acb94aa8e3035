package pmr

import "context"

// Mapper transforms one submitted input into one mapped output. Map is
// called concurrently from every worker goroutine and must be safe for
// concurrent use; a Mapper holding shared mutable state is responsible for
// its own synchronization.
//
// Mirrors original_source's Mapper<I, O> abstract class, generalized to a Go
// interface parameterized on the pipeline's type arguments rather than
// dispatched through a class hierarchy.
type Mapper[I, O any] interface {
	Map(ctx context.Context, input I) (O, error)
}

// Reducer consumes mapped outputs strictly in submission order. Reduce is
// called from a single goroutine; a Reducer never needs to synchronize
// against itself, only against anything else it shares state with outside
// the pipeline.
//
// Mirrors original_source's Reducer<O> abstract class and its concrete
// FileCollector<SimpleBuffer<char>> specialization.
type Reducer[O any] interface {
	Reduce(ctx context.Context, output O) error
}

// MapperFunc adapts a plain function to Mapper.
type MapperFunc[I, O any] func(ctx context.Context, input I) (O, error)

// Map calls f.
func (f MapperFunc[I, O]) Map(ctx context.Context, input I) (O, error) { return f(ctx, input) }

// ReducerFunc adapts a plain function to Reducer.
type ReducerFunc[O any] func(ctx context.Context, output O) error

// Reduce calls f.
func (f ReducerFunc[O]) Reduce(ctx context.Context, output O) error { return f(ctx, output) }
