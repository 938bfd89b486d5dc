// Package register implements the account registration handler.
package register

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
	"github.com/daii-team/school-scheduler/internal/services/auth"
)

// Request carries the registration fields. The password arrives in the
// legacy "pwd" field.
type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"pwd" validate:"required"`
	Level    string `json:"level"`
	Status   string `json:"status"`
}

// Service is the registration business logic.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (string, error)
}

// Handler answers POST /users/register.
type Handler struct {
	log      *slog.Logger
	auth     Service
	validate *validator.Validate
}

// New creates the registration handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:      log,
		auth:     auth,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Campos obrigatórios não preenchidos"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid, err := h.auth.Register(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Level:    req.Level,
		Status:   req.Status,
	})
	if err != nil {
		appErr := apperror.From(err, "Erro ao cadastrar usuário")
		log.Error("registration failed", sl.Err(err))
		render.Status(r, appErr.StatusCode())
		render.JSON(w, r, response.FromAppError(appErr))
		return
	}

	log.Info("user registered", slog.String("uid", uid))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Registered{
		Message: "Usuário cadastrado com sucesso",
		UserID:  uid,
	})
}
