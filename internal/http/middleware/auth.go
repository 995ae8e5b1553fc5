// Package middleware holds the HTTP middlewares: bearer-token
// authentication, role guards and the login rate limiter.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shoppinh/jp-order-BE/internal/domain"
	"github.com/shoppinh/jp-order-BE/internal/http/response"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// TokenValidator resolves a raw bearer token to its user.
type TokenValidator interface {
	Validate(ctx context.Context, rawToken string) (*domain.User, error)
}

// CurrentUser returns the authenticated user stored by Authenticate, or nil.
func CurrentUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			user, err := validator.Validate(r.Context(), token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles allows only users whose role key is in the list. It must run
// after Authenticate.
func RequireRoles(roleKeys ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roleKeys))
	for _, key := range roleKeys {
		allowed[key] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				response.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				response.Error(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
