// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/baharkarakas/blog-backend/internal/api/httpx"
	"github.com/baharkarakas/blog-backend/internal/auth"
	"github.com/baharkarakas/blog-backend/internal/logger"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	TV TokenVerifier
}

func NewAuthMiddleware(tv TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{TV: tv}
}

// Auth requires "Authorization: Bearer <jwt>" and puts the caller into the
// request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if len(ah) < len("Bearer ") || !strings.EqualFold(ah[:len("Bearer ")], "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "INVALID_TOKEN", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.TV.Verify(token)
		if err != nil {
			logger.FromContext(r.Context()).Debug("token rejected", "err", err)
			httpx.WriteError(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token", nil)
			return
		}
		ctx := WithUser(r.Context(), UserCtx{UserID: claims.UserID, Email: claims.Subject, Name: claims.Name})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
