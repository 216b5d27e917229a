// Package testkit provides helpers for HTTP handler tests: an in-memory
// database, request firing, and JSON envelope decoding.
//
// Usage:
//
//	db := testkit.SetupDB(t, &models.User{}, &models.Order{})
//	rec := testkit.Do(handler, testkit.JSONRequest(http.MethodPost, "/api/register", body))
//	env := testkit.DecodeEnvelope(t, rec)
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ucqdev/cuahquick/pkg/database"
)

var dbSeq atomic.Int64

// SetupDB opens a fresh in-memory SQLite database, migrates the given
// models, and installs it as the shared database handle for the duration
// of the test.
func SetupDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	// A named in-memory database with shared cache: every pooled
	// connection sees the same schema, and each test gets its own name.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("testkit: open sqlite: %v", err)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("testkit: migrate: %v", err)
		}
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		database.DB = prev
	})

	return db
}

// JSONRequest builds an *http.Request with a JSON-encoded body and the
// usual content headers. body may be nil.
func JSONRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body) //nolint:errcheck
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

// Authed sets a Bearer token on req and returns it, for chaining.
func Authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// Do fires req against handler and returns the recorder.
func Do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// Envelope mirrors the JSON response shape written by pkg/response and
// pkg/ctx.
type Envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// DecodeEnvelope unmarshals the recorded response body.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("testkit: decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

// ErrorCode extracts the stable error code from an error envelope.
// Returns "" when the response carries no code.
func ErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	env := DecodeEnvelope(t, rec)
	if len(env.Errors) == 0 {
		return ""
	}
	var errs map[string]string
	if err := json.Unmarshal(env.Errors, &errs); err != nil {
		return ""
	}
	return errs["code"]
}

// DecodeData unmarshals the envelope's data field into dest.
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	env := DecodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("testkit: decode data: %v (data: %s)", err, string(env.Data))
	}
}
