package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ucqdev/cuahquick/app/jobs"
	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/internal/server"
	"github.com/ucqdev/cuahquick/pkg/cache"
	"github.com/ucqdev/cuahquick/pkg/database"
	"github.com/ucqdev/cuahquick/pkg/logger"
	"github.com/ucqdev/cuahquick/pkg/queue"
	"github.com/ucqdev/cuahquick/pkg/schedule"
)

var queueWorkersFlag int

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 0, "number of concurrent workers")
}

// bootWorker brings up everything a standalone worker process needs.
func bootWorker() error {
	if err := config.Load(); err != nil {
		return err
	}
	logger.Boot()
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache disabled", "error", err)
	}
	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	jobs.RegisterAll()
	return nil
}

// cuahquick queue:work — consume jobs outside the API process.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorker(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = config.QueueWorkers()
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		queue.Stop()
		fmt.Println("Queue worker stopped.")
		return nil
	},
}

// cuahquick schedule:run — run the task scheduler standalone.
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorker(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		server.RegisterSchedules()

		tasks := schedule.List()
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks registered.")
			return nil
		}
		for _, name := range tasks {
			fmt.Println(" -", name)
		}

		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)
		return nil
	},
}
