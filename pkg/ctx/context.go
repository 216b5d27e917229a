// Package ctx provides a pooled request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for params, binding and JSON
// responses:
//
//	func ShowOrder(c *ctx.Context) {
//	    id := c.Param("id")
//	    c.Success(order)
//	}
//
//	router.Get("/orders/{id}", "orders.show", ctx.Wrap(ShowOrder))
package ctx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/bind"
	"github.com/ucqdev/cuahquick/pkg/logger"
	"github.com/ucqdev/cuahquick/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair and provides a helper API.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int // written status code (0 = not written yet)
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter (e.g. "/orders/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a numeric path parameter. Returns 0 when missing or
// not a number.
func (c *Context) ParamUint(key string) uint {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// DefaultQuery returns a query-string value, or def if it is empty.
func (c *Context) DefaultQuery(key, def string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return def
}

// QueryInt parses a query-string value as int, falling back to def.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// ClientIP returns the real client IP, respecting X-Forwarded-For.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.SplitN(fwd, ",", 2)[0]
	}
	ip := c.R.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Set stores a value in the per-request key-value store.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

// Get retrieves a value from the per-request store.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it automatically sends a 422 response and returns false.
// On JSON decode error it sends a 400 and returns false.
// Returns true only when dest is valid and ready to use.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ShouldBindJSON decodes the JSON body into dest and runs validation.
// Unlike BindJSON, it does NOT write a response — the caller handles errors.
func (c *Context) ShouldBindJSON(dest any) (map[string]string, error) {
	return bind.JSON(c.R, dest)
}

// Status writes just the HTTP status code with an empty body.
func (c *Context) Status(code int) {
	c.status = code
	c.W.WriteHeader(code)
}

// JSON writes a JSON response with the given status code.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON envelope: {"status":200,"data":...}
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON envelope.
func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.JSON(code, envelope{Status: code, Message: message})
}

// AppError maps a typed apperr value to its JSON envelope, carrying the
// stable error code in the errors field.
func (c *Context) AppError(err error) {
	e := apperr.From(err)
	if e == apperr.ErrInternal {
		// The caller gets the generic message; the detail goes to the log.
		logger.WithCtx(c.R.Context()).Error("internal error", "error", err)
	}
	c.JSON(e.Status, envelope{
		Status:  e.Status,
		Message: e.Message,
		Errors:  map[string]string{"code": e.Code},
	})
}

// ValidationError sends a 422 Unprocessable Entity with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// String writes a plain-text response.
func (c *Context) String(code int, format string, args ...any) {
	c.W.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.W.WriteHeader(code)
	c.status = code
	fmt.Fprintf(c.W, format, args...)
}

// WrittenStatus returns the HTTP status code that was written to the response,
// or 0 if no response has been written yet.
func (c *Context) WrittenStatus() int { return c.status }

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}
