package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/activerecord/pkg/async"
)

func TestGo(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(context.Context) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return "done", nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, "done", res)
		assert.True(t, f.IsComplete())
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			return 0, boom
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("skips fn when context already canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Go(ctx, func(context.Context) (int, error) {
			called.Store(true)
			return 1, nil
		})

		res, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, res)
		assert.False(t, called.Load())
	})
}

func TestAsync(t *testing.T) {
	t.Parallel()

	f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 42, res)
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	f := async.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	_, err := f.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, f.IsComplete())
}

func TestResolved(t *testing.T) {
	t.Parallel()

	f := async.Resolved("ok", nil)
	assert.True(t, f.IsComplete())

	select {
	case <-f.Done():
	default:
		t.Fatal("done channel must be closed")
	}

	res, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}

func TestJoin(t *testing.T) {
	t.Parallel()

	t.Run("keeps order", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		futures := []*async.Future[int]{
			async.Go(ctx, func(context.Context) (int, error) {
				time.Sleep(30 * time.Millisecond)
				return 1, nil
			}),
			async.Go(ctx, func(context.Context) (int, error) { return 2, nil }),
			async.Go(ctx, func(context.Context) (int, error) {
				time.Sleep(10 * time.Millisecond)
				return 3, nil
			}),
		}

		res, err := async.Join(futures...)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, res)
	})

	t.Run("waits for all and joins errors", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		errA := errors.New("a")
		errB := errors.New("b")

		var finished atomic.Int32
		futures := []*async.Future[int]{
			async.Go(ctx, func(context.Context) (int, error) {
				finished.Add(1)
				return 0, errA
			}),
			async.Go(ctx, func(context.Context) (int, error) {
				time.Sleep(20 * time.Millisecond)
				finished.Add(1)
				return 7, nil
			}),
			async.Go(ctx, func(context.Context) (int, error) {
				finished.Add(1)
				return 0, errB
			}),
		}

		res, err := async.Join(futures...)
		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Equal(t, 7, res[1])
		assert.Equal(t, int32(3), finished.Load())
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		res, err := async.Join[int]()
		require.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	res, err := async.WaitAll(
		async.Resolved(1, nil),
		async.Resolved(0, boom),
		async.Resolved(3, nil),
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 0, 0}, res)
}
