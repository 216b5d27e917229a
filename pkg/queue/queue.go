// Package queue provides background job processing.
//
// Usage:
//
//	// Define a job
//	type ReceiptEmailJob struct { OrderID uint }
//	func (j ReceiptEmailJob) Handle() error { ... }
//
//	// Register once at boot, then dispatch
//	queue.Register("ReceiptEmailJob", func() queue.Job { return &ReceiptEmailJob{} })
//	queue.Dispatch(ReceiptEmailJob{OrderID: 1})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ucqdev/cuahquick/pkg/logger"
	"github.com/ucqdev/cuahquick/pkg/metrics"
	"github.com/ucqdev/cuahquick/pkg/workerpool"
)

// Job is the interface every queued job must satisfy.
type Job interface {
	// Handle executes the job. Return a non-nil error to signal failure.
	Handle() error
}

// Driver is the queue storage backend.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// Manager is the central queue hub. Jobs are popped off the driver and run
// on a bounded worker pool, so a flood of slow jobs cannot exhaust
// goroutines.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job // type name → constructor
	pool     *workerpool.Pool
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the underlying queue driver (e.g. Redis).
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetMaxRetry sets how many times a failing job is retried.
func SetMaxRetry(n int) { defaultManager.maxRetry = n }

// Register makes a job type available for deserialization by name.
// Call this once at boot for every job type you define.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

type jobEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatch pushes job onto the default queue immediately.
func Dispatch(job Job) error {
	return defaultManager.push(job)
}

// DispatchAfter pushes job onto the queue after a delay.
func DispatchAfter(job Job, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

func (m *Manager) push(job Job) error {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}

	env, err := json.Marshal(jobEnvelope{Type: typeName, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()

	return d.Push(env)
}

// StartWorkers launches a consumer loop backed by a pool of n workers.
// Runs until ctx is cancelled; Stop drains in-flight jobs.
func StartWorkers(ctx context.Context, n int) {
	defaultManager.mu.Lock()
	defaultManager.pool = workerpool.New(n)
	defaultManager.mu.Unlock()

	go defaultManager.consume(ctx)
	logger.Info("queue: workers started", "count", n)
}

// Stop waits for in-flight jobs to finish. Call after cancelling the
// context passed to StartWorkers.
func Stop() {
	defaultManager.mu.RLock()
	pool := defaultManager.pool
	defaultManager.mu.RUnlock()

	if pool != nil {
		pool.Shutdown()
	}
}

func (m *Manager) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m.mu.RLock()
		d := m.driver
		pool := m.pool
		m.mu.RUnlock()

		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}

		payload := raw
		if err := pool.SubmitWait(func() { m.process(payload) }); err != nil {
			return // pool closed, shutting down
		}
	}
}

func (m *Manager) process(raw []byte) {
	var env jobEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	m.runWithRetry(job, env.Type)
}

func (m *Manager) runWithRetry(job Job, typeName string) {
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		if err := job.Handle(); err != nil {
			lastErr = err
			logger.Warn("queue: job failed, retrying",
				"type", typeName, "attempt", attempt, "error", err)
			time.Sleep(time.Duration(attempt) * time.Second) // backoff
			continue
		}
		logger.Info("queue: job processed", "type", typeName)
		metrics.RecordQueueJob(typeName, "success", start)
		return
	}

	// All retries exhausted — persist the failure.
	m.persistFailed(job, typeName, lastErr, m.maxRetry)
	metrics.RecordQueueJob(typeName, "failed", start)
	logger.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}
