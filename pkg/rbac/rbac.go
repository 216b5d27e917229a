// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/middleware"
	"github.com/ucqdev/cuahquick/pkg/response"
)

// HasRole returns middleware that allows access only to users whose role is
// in the given set. Requires middleware.Auth to have already run, so the
// claims are in context; an authenticated user with the wrong role gets 403.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed[middleware.RoleFromCtx(r.Context())] {
				response.AppError(w, apperr.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
