// Package schedule provides a lightweight interval task scheduler.
//
// Usage:
//
//	schedule.EveryMinute().Name("refresh-gauge").Run(refreshPendingOrders)
//	schedule.Every(5).Minutes().Run(syncData)
//	schedule.Daily().WithoutOverlapping().Run(pruneFailedJobs)
//
//	// Start the scheduler in the background (call once at boot):
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ucqdev/cuahquick/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

// entry represents a single scheduled job.
type entry struct {
	id        string
	interval  time.Duration
	task      Task
	lastRun   time.Time
	running   bool // overlap guard
	noOverlap bool
	mu        sync.Mutex
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// EveryMinute schedules the task to run every 60 seconds.
func EveryMinute() *Schedule { return Every(1).Minutes() }

// Every starts a fluent builder with n units.
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

// Hourly schedules the task to run every hour.
func Hourly() *Schedule { return Every(1).Hours() }

// Daily schedules the task to run every 24 hours.
func Daily() *Schedule { return Every(24).Hours() }

type freqBuilder struct{ n int }

func (f *freqBuilder) Seconds() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Second}}
}
func (f *freqBuilder) Minutes() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Minute}}
}
func (f *freqBuilder) Hours() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * time.Hour}}
}
func (f *freqBuilder) Days() *Schedule {
	return &Schedule{e: &entry{interval: time.Duration(f.n) * 24 * time.Hour}}
}

// WithoutOverlapping prevents a new run if the previous one is still executing.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name gives the entry a human-readable identifier for logging.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task and adds it to the global scheduler registry.
// Call Start() to begin dispatching.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	regMu.Lock()
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start begins the scheduler loop in the background.
// It ticks every second and dispatches due tasks.
func Start(ctx context.Context) {
	go run(ctx)
	logger.Info("schedule: scheduler started")
}

func run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := make([]*entry, len(entries))
			copy(current, entries)
			regMu.Unlock()

			for _, e := range current {
				if isDue(e, now) {
					dispatch(e)
				}
			}
		}
	}
}

func isDue(e *entry, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastRun.IsZero() {
		return true // first run
	}
	return now.Sub(e.lastRun) >= e.interval
}

func dispatch(e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
		}()

		e.task()
	}()
}

// List returns all currently registered entries (for CLI display).
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, e.interval))
	}
	return out
}
