package ctx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/logger"
)

func TestParamAndSuccess(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/{id}", Wrap(func(c *Context) {
		c.Success(map[string]any{"id": c.Param("id")})
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/7", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "7", data["id"])
}

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/orders/{id}", Wrap(func(c *Context) {
		c.Success(c.ParamUint("id"))
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(0), body["data"])
}

func TestBindJSONValidationFailure(t *testing.T) {
	type input struct {
		Email string `json:"email" validate:"required,email"`
	}

	h := Wrap(func(c *Context) {
		var in input
		if !c.BindJSON(&in) {
			return
		}
		c.Success(in)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBindJSONMalformedBody(t *testing.T) {
	h := Wrap(func(c *Context) {
		var in map[string]any
		if !c.BindJSON(&in) {
			return
		}
		c.Success(in)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppErrorEnvelope(t *testing.T) {
	h := Wrap(func(c *Context) {
		c.AppError(apperr.ErrOrderNotFound)
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "OrderNotFound", errs["code"])
}

func TestAppErrorLogsInternalDetail(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.L
	logger.L = slog.New(slog.NewTextHandler(&buf, nil))
	defer func() { logger.L = prev }()

	h := Wrap(func(c *Context) {
		c.AppError(errors.New("pq: connection reset by peer"))
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// Caller sees only the generic envelope.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "InternalError", errs["code"])
	assert.NotContains(t, rec.Body.String(), "connection reset")

	// The driver detail lands in the log.
	assert.Contains(t, buf.String(), "connection reset by peer")

	// Taxonomy errors are expected flow, not internal failures.
	buf.Reset()
	h = Wrap(func(c *Context) {
		c.AppError(apperr.ErrOrderNotFound)
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, buf.String())
}

func TestStoreIsResetBetweenRequests(t *testing.T) {
	var second bool
	h := Wrap(func(c *Context) {
		if second {
			_, ok := c.Get("leftover")
			assert.False(t, ok)
		} else {
			c.Set("leftover", true)
		}
		c.Status(http.StatusNoContent)
	})

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	second = true
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
