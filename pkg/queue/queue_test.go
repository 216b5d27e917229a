package queue_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/pkg/queue"
)

var processed atomic.Int32

type receiptJob struct {
	OrderID uint `json:"order_id"`
}

func (j *receiptJob) Handle() error {
	processed.Add(1)
	return nil
}

func init() {
	queue.StartWorkers(context.Background(), 2)
	queue.Register("*queue_test.receiptJob", func() queue.Job { return &receiptJob{} })
}

func TestDispatchAndProcess(t *testing.T) {
	before := processed.Load()
	require.NoError(t, queue.Dispatch(&receiptJob{OrderID: 7}))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if processed.Load() > before {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("job was never processed")
}

func TestDispatchConcurrent(t *testing.T) {
	before := processed.Load()

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			queue.Dispatch(&receiptJob{OrderID: 1}) //nolint:errcheck
		}()
	}
	wg.Wait()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if processed.Load() >= before+20 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, processed.Load(), before+20)
}

func TestMemoryDriverRespectsContext(t *testing.T) {
	d := queue.NewMemoryDriver()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := d.Pop(ctx)
	assert.Error(t, err)
}
