package workerpool

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolRunsSubmittedJobs(t *testing.T) {
	p := New(Config{Workers: 4})
	defer p.Close()

	var count atomic.Int64
	for i := 0; i < 50; i++ {
		err := p.Submit(context.Background(), JobFunc(func(ctx context.Context) {
			count.Add(1)
		}))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool { return count.Load() == 50 }, time.Second, time.Millisecond)
}

func TestPoolSurvivesPanickingJob(t *testing.T) {
	var panics atomic.Int64
	p := New(Config{Workers: 2, PanicHandler: func(r any) { panics.Add(1) }})
	defer p.Close()

	require.NoError(t, p.Submit(context.Background(), JobFunc(func(ctx context.Context) {
		panic("boom")
	})))

	var ran atomic.Bool
	require.NoError(t, p.Submit(context.Background(), JobFunc(func(ctx context.Context) {
		ran.Store(true)
	})))

	require.Eventually(t, func() bool { return ran.Load() }, time.Second, time.Millisecond)
	require.Equal(t, int64(1), panics.Load())
}

func TestCloseRejectsNewWork(t *testing.T) {
	p := New(Config{Workers: 1})
	require.NoError(t, p.Close())
	err := p.Submit(context.Background(), JobFunc(func(ctx context.Context) {}))
	require.ErrorIs(t, err, ErrPoolClosed)
}
