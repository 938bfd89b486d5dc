// Package login implements the credential check and token issuance
// handler.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/http/response"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
)

// Request carries the login credentials. The password arrives in the
// legacy "pwd" field.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"pwd" validate:"required"`
}

// Service is the login business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Handler answers POST /users/login.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New creates the login handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Email e senha são obrigatórios"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Email e senha são obrigatórios"))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		appErr := apperror.From(err, "Erro ao realizar login")
		log.Error("login failed", sl.Err(err))
		render.Status(r, appErr.StatusCode())
		render.JSON(w, r, response.FromAppError(appErr))
		return
	}

	log.Info("login success", slog.String("email", req.Email))
	render.JSON(w, r, response.LoggedIn{
		Message: "Login bem-sucedido",
		Token:   token,
	})
}
