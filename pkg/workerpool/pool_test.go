package workerpool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_SubmitReturnsTaskError(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	boom := errors.New("boom")
	err := p.Submit(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = p.Submit(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestPool_SubmitAsyncExecutes(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	var ran atomic.Int64
	for i := 0; i < 3; i++ {
		require.NoError(t, p.SubmitAsync(context.Background(), func(context.Context) error {
			ran.Add(1)
			return nil
		}))
	}

	assert.Eventually(t, func() bool {
		return ran.Load() == 3
	}, time.Second, 5*time.Millisecond)
}

func TestPool_SubmitAsyncWhenFull(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)

	gate := make(chan struct{})
	block := func(context.Context) error {
		<-gate
		return nil
	}

	// Occupy the single worker, then fill the queue.
	require.NoError(t, p.SubmitAsync(context.Background(), block))
	assert.Eventually(t, func() bool {
		return p.ActiveCount() == 1
	}, time.Second, time.Millisecond)
	require.NoError(t, p.SubmitAsync(context.Background(), block))

	err := p.SubmitAsync(context.Background(), block)
	assert.ErrorIs(t, err, ErrWorkerPoolFull)

	close(gate)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	require.NoError(t, p.Shutdown(context.Background()))

	err := p.SubmitAsync(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)

	err = p.Submit(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)
}

// Submissions racing Shutdown must land in the queue or get
// ErrWorkerPoolClosed, never panic on a send to the closed channel.
func TestPool_SubmitAsyncDuringShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 4, QueueSize: 16}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				err := p.SubmitAsync(context.Background(), func(context.Context) error { return nil })
				if errors.Is(err, ErrWorkerPoolClosed) {
					return
				}
			}
		}()
	}

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, p.Shutdown(context.Background()))
	wg.Wait()
}
