package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucqdev/cuahquick/pkg/auth"
	"github.com/ucqdev/cuahquick/pkg/middleware"
)

func shopOnly() http.Handler {
	h := HasRole("shop")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return middleware.Auth(h)
}

func TestClientRoleForbidden(t *testing.T) {
	tok, err := auth.GenerateToken(3, "client", "ana.ruiz240189@ucq.edu.mx")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/shop/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	shopOnly().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestShopRoleAllowed(t *testing.T) {
	tok, err := auth.GenerateToken(8, "shop", "cafeteria@ucq.edu.mx")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/shop/orders", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	shopOnly().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnauthenticatedForbiddenBeforeRoleCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	shopOnly().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shop/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
