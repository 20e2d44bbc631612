// internal/handlers/middleware/auth.go
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
	"github.com/stocktrackhq/stocktrack-be/internal/pkg/logger"
)

type principalContextKey struct{}

// PrincipalFromContext returns the authenticated principal set by
// Authenticate, if any.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(domain.Principal)
	return p, ok
}

// Authenticate verifies the bearer access token and stores the resulting
// principal in the request context. Requests without a valid token are
// rejected with 401.
func Authenticate(tokens ports.TokenManager, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				unauthorized(w, "Authentication required")
				return
			}

			principal, err := tokens.VerifyAccess(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				l.DebugContext(r.Context(), "token verification failed",
					slog.String("error", err.Error()))
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, *principal)
			ctx = context.WithValue(ctx, logger.ContextKeyUserID, strconv.FormatInt(principal.UserID, 10))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated requests whose principal is not an
// admin. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			unauthorized(w, "Authentication required")
			return
		}
		if !principal.IsAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"Not authorized"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
