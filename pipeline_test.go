package pmr_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fenwick-io/pmr"
)

// doubler maps an int to its double, sleeping a small random amount to
// force outputs to complete out of submission order.
type doubler struct{}

func (doubler) Map(_ context.Context, n int) (int, error) {
	time.Sleep(time.Duration(rand.Intn(2)) * time.Millisecond)
	return n * 2, nil
}

// recordingReducer appends every reduced value to a slice, in the order
// Reduce is called, guarded by a mutex since tests read it after Close.
type recordingReducer struct {
	mu  sync.Mutex
	got []int
}

func (r *recordingReducer) Reduce(_ context.Context, v int) error {
	r.mu.Lock()
	r.got = append(r.got, v)
	r.mu.Unlock()
	return nil
}

func (r *recordingReducer) values() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.got))
	copy(out, r.got)
	return out
}

func TestPipeline_PreservesSubmissionOrder(t *testing.T) {
	t.Parallel()

	const n = 500
	red := &recordingReducer{}
	p, err := pmr.New[int, int](doubler{}, red, pmr.WithWorkers(16))
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		require.NoError(t, p.Submit(i))
	}
	require.NoError(t, p.Close())

	got := red.values()
	require.Len(t, got, n)
	for i, v := range got {
		require.Equal(t, i*2, v, "output at position %d out of order", i)
	}
}

func TestPipeline_SingleWorkerIsStillOrdered(t *testing.T) {
	t.Parallel()

	const n = 50
	red := &recordingReducer{}
	p, err := pmr.New[int, int](doubler{}, red, pmr.WithWorkers(1))
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		require.NoError(t, p.Submit(i))
	}
	require.NoError(t, p.Close())

	got := red.values()
	require.Len(t, got, n)
	for i, v := range got {
		require.Equal(t, i*2, v)
	}
}

func TestPipeline_CloseIsIdempotent(t *testing.T) {
	t.Parallel()

	red := &recordingReducer{}
	p, err := pmr.New[int, int](doubler{}, red)
	require.NoError(t, err)

	require.NoError(t, p.Submit(1))
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestPipeline_SubmitAfterCloseFails(t *testing.T) {
	t.Parallel()

	red := &recordingReducer{}
	p, err := pmr.New[int, int](doubler{}, red)
	require.NoError(t, err)
	require.NoError(t, p.Close())

	err = p.Submit(1)
	require.ErrorIs(t, err, pmr.ErrClosedOnSubmit)
}

var errBoom = errors.New("boom")

type failingMapper struct{ failAt int }

func (f failingMapper) Map(_ context.Context, n int) (int, error) {
	if n == f.failAt {
		return 0, errBoom
	}
	return n, nil
}

func TestPipeline_MapFailureIsFatalAndSurfacesFromClose(t *testing.T) {
	t.Parallel()

	red := &recordingReducer{}
	p, err := pmr.New[int, int](failingMapper{failAt: 5}, red, pmr.WithWorkers(4))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_ = p.Submit(i) // some submits past the fatal index may be rejected
	}

	err = p.Close()
	require.Error(t, err)
	require.ErrorIs(t, err, pmr.ErrMapFailure)
}

type failingReducer struct {
	failAt int
}

func (f *failingReducer) Reduce(_ context.Context, v int) error {
	if v == f.failAt {
		return errBoom
	}
	return nil
}

func TestPipeline_ReduceFailureIsFatalAndSurfacesFromClose(t *testing.T) {
	t.Parallel()

	p, err := pmr.New[int, int](doubler{}, &failingReducer{failAt: 10}, pmr.WithWorkers(4))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		_ = p.Submit(i)
	}

	err = p.Close()
	require.Error(t, err)
	require.ErrorIs(t, err, pmr.ErrReduceFailure)
}

func TestPipeline_InvalidArgumentsRejected(t *testing.T) {
	t.Parallel()

	red := &recordingReducer{}

	_, err := pmr.New[int, int](nil, red)
	require.ErrorIs(t, err, pmr.ErrInvalidArgument)

	_, err = pmr.New[int, int](doubler{}, nil)
	require.ErrorIs(t, err, pmr.ErrInvalidArgument)

	_, err = pmr.New[int, int](doubler{}, red, pmr.WithWorkers(0))
	require.ErrorIs(t, err, pmr.ErrInvalidArgument)

	_, err = pmr.New[int, int](doubler{}, red, pmr.WithFIFOCapacity(-1))
	require.ErrorIs(t, err, pmr.ErrInvalidArgument)
}

type blockingMapper struct{ release chan struct{} }

func (m blockingMapper) Map(_ context.Context, n int) (int, error) {
	<-m.release
	return n, nil
}

func TestPipeline_SubmitContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	red := &recordingReducer{}
	p, err := pmr.New[int, int](blockingMapper{release: release}, red, pmr.WithWorkers(1), pmr.WithFIFOCapacity(1))
	require.NoError(t, err)
	t.Cleanup(func() {
		close(release)
		_ = p.Close()
	})

	// The single worker picks this one up and blocks in Map until release
	// is closed, so the FIFO's one slot is occupied by the next Submit.
	require.NoError(t, p.Submit(0))
	require.NoError(t, p.Submit(1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = p.SubmitContext(ctx, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func ExamplePipeline() {
	red := pmr.ReducerFunc[string](func(_ context.Context, s string) error {
		fmt.Println(s)
		return nil
	})
	mapper := pmr.MapperFunc[int, string](func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("value-%d", n), nil
	})

	p, err := pmr.New[int, string](mapper, red, pmr.WithWorkers(4))
	if err != nil {
		panic(err)
	}
	for i := 0; i < 5; i++ {
		if err := p.Submit(i); err != nil {
			panic(err)
		}
	}
	if err := p.Close(); err != nil {
		panic(err)
	}
	// Output:
	// value-0
	// value-1
	// value-2
	// value-3
	// value-4
}
