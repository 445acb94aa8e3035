package pmr

import "errors"

// Namespace prefixes every sentinel error's message, matching the
// teacher library's convention of a package-qualified error namespace.
const Namespace = "pmr"

var (
	// ErrInvalidArgument is returned by New for a zero worker count, a
	// zero capacity explicitly requested via an option, or a nil
	// collaborator.
	ErrInvalidArgument = errors.New(Namespace + ": invalid argument")

	// ErrClosedOnSubmit is returned by Submit/SubmitContext once Close has
	// been called, or once a latched collaborator failure has begun
	// closing the pipeline.
	ErrClosedOnSubmit = errors.New(Namespace + ": submit after close")

	// ErrClosedOnPush is returned by a container's push when the
	// container closes while a caller is composing BoundedFIFO or
	// OrderedReorderQueue directly, outside of the Pipeline façade.
	ErrClosedOnPush = errors.New(Namespace + ": push after container close")

	// ErrMapFailure wraps an error returned by a Mapper. Fatal: it
	// terminates the run.
	ErrMapFailure = errors.New(Namespace + ": map failed")

	// ErrReduceFailure wraps an error returned by a Reducer. Fatal: it
	// stops the reducer goroutine.
	ErrReduceFailure = errors.New(Namespace + ": reduce failed")
)
