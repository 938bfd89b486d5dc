// Package protected implements the authenticated check endpoint. It
// echoes the identity that the token middleware put into the context.
package protected

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/daii-team/school-scheduler/internal/http/middlewarectx"
)

// Handler answers GET /users/protected.
type Handler struct {
	log *slog.Logger
}

// New creates the protected route handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.protected"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, _ := r.Context().Value(middlewarectx.UserID).(string)
	email, _ := r.Context().Value(middlewarectx.Email).(string)
	level, _ := r.Context().Value(middlewarectx.Level).(string)

	log.Info("protected route accessed", slog.String("userId", userID))
	render.JSON(w, r, map[string]any{
		"message": "Você acessou uma rota protegida",
		"user": map[string]string{
			"userId": userID,
			"email":  email,
			"level":  level,
		},
	})
}
