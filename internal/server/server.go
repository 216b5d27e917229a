// Package server boots the application and runs the HTTP server until a
// shutdown signal arrives.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ucqdev/cuahquick/app/jobs"
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/app/notifications"
	"github.com/ucqdev/cuahquick/app/repositories"
	"github.com/ucqdev/cuahquick/app/services"
	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/internal/kernel"
	"github.com/ucqdev/cuahquick/pkg/cache"
	"github.com/ucqdev/cuahquick/pkg/database"
	"github.com/ucqdev/cuahquick/pkg/event"
	"github.com/ucqdev/cuahquick/pkg/logger"
	"github.com/ucqdev/cuahquick/pkg/notification"
	"github.com/ucqdev/cuahquick/pkg/queue"
	"github.com/ucqdev/cuahquick/pkg/schedule"
	"github.com/ucqdev/cuahquick/pkg/storage"
	"github.com/ucqdev/cuahquick/pkg/ws"
)

const shutdownTimeout = 15 * time.Second

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
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
	storage.Connect()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.QueueDriver() == "redis" && cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.UseDB(database.DB)
	jobs.RegisterAll()
	queue.StartWorkers(ctx, config.QueueWorkers())

	httpKernel := kernel.NewHTTPKernel()
	registerListeners(httpKernel.Feed())
	RegisterSchedules()
	go schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cuahquick listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	cancel() // stops scheduler and queue consumption
	queue.Stop()
	event.Flush()
	cache.Close()
	if err := database.Close(); err != nil {
		logger.Error("database close", "error", err)
	}
	logger.Shutdown()

	return nil
}

// registerListeners connects domain events to their side effects: the
// receipt email, the shop webhook, and the live websocket feed.
func registerListeners(feed *ws.Hub) {
	event.Listen("order.created", func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		if err := queue.Dispatch(&jobs.ReceiptEmail{OrderID: order.ID}); err != nil {
			logger.Error("dispatch receipt email", "order_id", order.ID, "error", err)
		}
		if config.ShopWebhook() != "" {
			notification.SendAsync("", notifications.OrderPlaced{Order: order})
		}
		broadcast(feed, "order.created", order)
	})

	event.Listen("order.status_changed", func(payload interface{}) {
		change, ok := payload.(services.StatusChange)
		if !ok {
			return
		}
		if owner, err := repositories.NewUserRepository().FindByID(change.Order.UserID); err == nil {
			notification.SendAsync(owner.Email, notifications.OrderStatusChanged{Order: change.Order})
		}
		broadcast(feed, "order.status_changed", change.Order)
	})
}

func broadcast(feed *ws.Hub, eventName string, order models.Order) {
	msg, err := json.Marshal(map[string]interface{}{
		"event": eventName,
		"order": order,
	})
	if err != nil {
		return
	}
	feed.Broadcast <- msg
}

// RegisterSchedules sets up the recurring maintenance tasks. Also called
// by the standalone schedule:run command.
func RegisterSchedules() {
	orderService := services.NewOrderService()

	schedule.EveryMinute().
		Name("refresh-pending-gauge").
		Run(orderService.RefreshPendingGauge)

	retention := time.Duration(config.FailedJobRetentionDays()) * 24 * time.Hour
	schedule.Daily().
		Name("prune-failed-jobs").
		WithoutOverlapping().
		Run(func() {
			pruned, err := queue.PruneFailed(retention)
			if err != nil {
				logger.Error("prune failed jobs", "error", err)
				return
			}
			if pruned > 0 {
				logger.Info("pruned failed jobs", "count", pruned)
			}
		})
}
