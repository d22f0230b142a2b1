package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/freshmarket/marketplace/internal/user/domain"
	"github.com/freshmarket/marketplace/pkg/auth"
)

type contextKey string

const userKey contextKey = "user"

// Gate resolves bearer tokens to live user records and enforces roles.
// Every authenticated route goes through Authenticate; admin routes compose
// RequireAdmin on top, never a separate code path.
type Gate struct {
	repo domain.UserRepository
}

// NewGate creates an access control gate backed by the user directory
func NewGate(repo domain.UserRepository) *Gate {
	return &Gate{repo: repo}
}

// Authenticate validates the bearer token and loads the user record.
// Missing header, malformed token and unknown subject are all 401.
// IsActive is deliberately not checked here; it is enforced at login only.
func (g *Gate) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := g.repo.FindByID(claims.UserID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin composes on Authenticate and rejects non-admin users
func (g *Gate) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return g.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the authenticated user stored by the gate
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// ContextWithUser injects a user into the context; used by tests
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
