package pmr

// inputEnvelope pairs a submission index with the value a worker will map.
// Owned by the FIFO from push to pop, then by the worker during Map.
type inputEnvelope[I any] struct {
	idx   uint64
	value I
}
