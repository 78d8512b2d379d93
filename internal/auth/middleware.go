package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BradenHooton/barangay/internal/models"
	pkghttp "github.com/BradenHooton/barangay/pkg/http"
)

type contextKey string

// AdminContextKey is the key for storing admin session claims in context
const AdminContextKey contextKey = "admin"

// UserLookup fetches the current state of an account.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// sessionToken reads the token from the admin_session cookie, falling back to a Bearer header.
func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(AdminSessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireAdminSession rejects requests without a valid admin session. The
// account is re-read so a demoted admin loses access before the token expires.
func RequireAdminSession(tm *TokenManager, users UserLookup, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				pkghttp.WriteUnauthorized(w, "Admin login required")
				return
			}

			claims, err := tm.ValidateAdminSession(token)
			if err != nil {
				pkghttp.WriteUnauthorized(w, "Admin session invalid or expired")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, models.ErrNotFound) {
					pkghttp.WriteUnauthorized(w, "Admin not found")
					return
				}
				logger.Error("failed to load admin for session", slog.Int64("user_id", claims.UserID), slog.Any("error", err))
				pkghttp.WriteInternalError(w, "Server error")
				return
			}

			if !user.IsAdmin() {
				pkghttp.WriteForbidden(w, "Admin role required")
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAdminSession attaches admin claims when the request carries a valid
// session for a current admin. Requests without one pass through unchanged.
func OptionalAdminSession(tm *TokenManager, users UserLookup, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tm.ValidateAdminSession(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if !errors.Is(err, models.ErrNotFound) {
					logger.Error("failed to load admin for session", slog.Int64("user_id", claims.UserID), slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			if !user.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), AdminContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminFromContext returns the session claims set by RequireAdminSession, or nil.
func GetAdminFromContext(ctx context.Context) *models.TokenClaims {
	claims, ok := ctx.Value(AdminContextKey).(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
