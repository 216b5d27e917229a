package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/pkg/auth"
	"github.com/ucqdev/cuahquick/config"
)

func protected() http.Handler {
	return Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromCtx(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("X-Role", claims.Role)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Authorization token is required.", body["message"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "MissingToken", errs["code"])
}

func TestAuthInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired token.", body["message"])
}

func TestAuthExpiredToken(t *testing.T) {
	now := time.Now()
	claims := auth.Claims{
		UserID: 9,
		Role:   "shop",
		Email:  "cafeteria@ucq.edu.mx",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.JWTSecret()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correctly signed but stale: same body as any other bad token.
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid or expired token.", body["message"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "InvalidToken", errs["code"])
}

func TestAuthValidTokenExposesClaims(t *testing.T) {
	tok, err := auth.GenerateToken(9, "shop", "cafeteria@ucq.edu.mx")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/shop/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	protected().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "shop", rec.Header().Get("X-Role"))
}

func TestClaimsAccessorsDefaultValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, uint(0), UserIDFromCtx(req.Context()))
	assert.Equal(t, "", RoleFromCtx(req.Context()))
}
