package pmr

import (
	"strconv"

	"github.com/ygrebnov/errorc"
)

// wrapMapError tags a Mapper failure with the submission index it occurred
// at, the way the teacher's error_tagging.go attaches structured context to
// a sentinel error rather than formatting it into the message string.
func wrapMapError(idx uint64, cause error) error {
	return errorc.With(ErrMapFailure,
		errorc.String("index", strconv.FormatUint(idx, 10)),
		errorc.String("cause", cause.Error()),
	)
}

// wrapReduceError tags a Reducer failure with the submission index of the
// output that failed to reduce.
func wrapReduceError(idx uint64, cause error) error {
	return errorc.With(ErrReduceFailure,
		errorc.String("index", strconv.FormatUint(idx, 10)),
		errorc.String("cause", cause.Error()),
	)
}
