// Package kernel assembles the HTTP handler: global middleware, the
// metrics endpoint, and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/ucqdev/cuahquick/app/routes"
	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/pkg/metrics"
	"github.com/ucqdev/cuahquick/pkg/middleware"
	"github.com/ucqdev/cuahquick/pkg/reqid"
	"github.com/ucqdev/cuahquick/pkg/router"
	"github.com/ucqdev/cuahquick/pkg/ws"
)

// HTTPKernel owns the router and the live order feed hub.
type HTTPKernel struct {
	router *router.Router
	feed   *ws.Hub
}

// NewHTTPKernel builds the full middleware stack and mounts the routes.
//
// Stack, outermost first: metrics (accurate total latency), recovery
// (catch panics before they kill the goroutine), request ID, logger,
// CORS, rate limiter.
func NewHTTPKernel() *HTTPKernel {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(config.RateLimitPerMinute(), time.Minute))

	// Prometheus scrape endpoint. No auth, no rate limit.
	r.Handle("/metrics", metrics.Handler())

	feed := routes.RegisterAPI(r)

	return &HTTPKernel{router: r, feed: feed}
}

// Handler returns the assembled http.Handler.
func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Feed returns the live order feed hub.
func (k *HTTPKernel) Feed() *ws.Hub {
	return k.feed
}

// Routes lists the registered routes for the route:list command.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}
