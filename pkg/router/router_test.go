package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamedRouteURL(t *testing.T) {
	r := New()
	r.Get("/api/shop/orders/{id}", "shop.orders.show", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	url, err := r.URL("shop.orders.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/shop/orders/7", url)

	_, err = r.URL("shop.orders.show", nil)
	assert.Error(t, err)

	_, err = r.URL("missing.route", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	api := r.Group("/api", mw("outer"))
	shop := api.Group("/shop", mw("inner"))
	shop.Get("/orders", "shop.orders", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/shop/orders", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Post("/api/login", "auth.login", func(w http.ResponseWriter, _ *http.Request) {})
	r.Get("/api/menu", "menu.index", func(w http.ResponseWriter, _ *http.Request) {})

	routes := r.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/api/login", routes[0].Path)
	assert.Equal(t, http.MethodPost, routes[0].Method)
	assert.Equal(t, "menu.index", routes[1].Name)
}
