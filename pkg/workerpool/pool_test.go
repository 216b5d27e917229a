package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/pkg/workerpool"
)

func TestSubmitAndExecute(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 100
	var count atomic.Int64

	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		err := pool.SubmitWait(func() {
			defer wg.Done()
			count.Add(1)
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.Equal(t, int64(n), count.Load())
}

func TestErrPoolFull(t *testing.T) {
	// Size-1 pool whose only worker is blocked.
	pool := workerpool.New(1)
	defer pool.Shutdown()

	blocker := make(chan struct{})
	submitted := make(chan struct{})

	_ = pool.SubmitWait(func() {
		close(submitted)
		<-blocker
	})
	<-submitted

	// Fill the 2-slot queue (buffer = 2× worker count).
	_ = pool.Submit(func() {})
	_ = pool.Submit(func() {})

	err := pool.Submit(func() {})
	assert.ErrorIs(t, err, workerpool.ErrPoolFull)

	close(blocker)
}

func TestErrPoolClosed(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	err := pool.Submit(func() {})
	assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
}

func TestPanicRecovery(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)

	_ = pool.SubmitWait(func() {
		defer wg.Done()
		panic("intentional panic")
	})

	wg.Wait()

	// Pool must still accept new tasks after recovering.
	normal := make(chan struct{})
	_ = pool.SubmitWait(func() { close(normal) })

	select {
	case <-normal:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not recover from panic")
	}
}
