// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: middleware stores a
// per-request logger (pre-tagged with the request_id) in the context, so
// every log line from a handler is automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", order.ID)
//	// → time=... level=INFO msg="order created" request_id=a1b2c3d4 order_id=7
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/ucqdev/cuahquick/config"
)

// L is the process-wide base logger.
var L *slog.Logger

var mongoSink *MongoHandler

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		// Structured JSON for log aggregators.
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		// Human-readable for dev.
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Boot attaches the optional MongoDB audit sink when LOG_MONGO_URI is set.
// Call once after config.Load; a sink failure degrades to stdout-only.
func Boot() {
	uri := config.LogMongoURI()
	if uri == "" {
		return
	}

	h, err := NewMongoHandler(uri, "cuahquick", "logs")
	if err != nil {
		L.Warn("logger: mongo sink disabled", "error", err)
		return
	}

	mongoSink = h
	L = slog.New(NewMultiHandler(baseHandler(), h))
	slog.SetDefault(L)
}

// Shutdown flushes and closes the Mongo sink, if one was booted.
func Shutdown() {
	if mongoSink != nil {
		mongoSink.Close()
		mongoSink = nil
	}
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the request-logging middleware; rarely needed elsewhere.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
