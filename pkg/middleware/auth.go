package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/auth"
	"github.com/ucqdev/cuahquick/pkg/logger"
	"github.com/ucqdev/cuahquick/pkg/response"
)

type claimsKey struct{}

// Auth validates the Bearer token and stores the verified claims in the
// request context. A missing header and an invalid (or expired) token are
// both rejected with 401; the body does not say which validation failed,
// only the server log does.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AppError(w, apperr.ErrMissingToken)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := auth.ValidateToken(token)
		if err != nil {
			logger.WithCtx(r.Context()).Warn("token rejected", "error", err.Error())
			response.AppError(w, apperr.ErrInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromCtx returns the verified claims stored by Auth.
func ClaimsFromCtx(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// UserIDFromCtx returns the authenticated user's ID, or 0 when unauthenticated.
func UserIDFromCtx(ctx context.Context) uint {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.UserID
	}
	return 0
}

// RoleFromCtx returns the authenticated user's role, or "" when unauthenticated.
func RoleFromCtx(ctx context.Context) string {
	if claims, ok := ClaimsFromCtx(ctx); ok {
		return claims.Role
	}
	return ""
}
