// Package middlewarectx contains the HTTP middleware that guards the
// API: bearer token validation and rate limiting.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/daii-team/school-scheduler/internal/http/response"
	"github.com/daii-team/school-scheduler/internal/lib/jwt"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
)

// Key is the context key type for request-scoped identity values.
type Key string

const (
	// UserID is the context key for the authenticated user id.
	UserID Key = "userId"
	// Email is the context key for the authenticated user email.
	Email Key = "email"
	// Level is the context key for the authenticated access level.
	Level Key = "level"
)

// Service validates a session token and returns its claims.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error)
}

// JWTMiddleware checks the Authorization header for a bearer token.
//
// A valid token puts the user id, email and level into the request
// context; a missing or invalid one answers 401 with the matching
// Portuguese message.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Token não fornecido"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Token inválido ou expirado"))
				return
			}
			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, Email, claims.Email)
			ctx = context.WithValue(ctx, Level, claims.Level)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
