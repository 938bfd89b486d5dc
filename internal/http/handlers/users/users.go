// Package users implements the account management endpoints. Account
// creation lives in the registration handler; the endpoints here list,
// read, search, update and delete existing accounts.
package users

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/http/response"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Service is the account business logic.
type Service interface {
	List(ctx context.Context) ([]*models.User, error)
	Read(ctx context.Context, uid string) (*models.User, error)
	Search(ctx context.Context, username string) ([]*models.User, error)
	Update(ctx context.Context, uid string, user models.User) (*models.User, error)
	Delete(ctx context.Context, uid string) (int64, error)
}

// UpdateRequest carries the mutable account fields.
type UpdateRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Level    string `json:"level" validate:"required"`
	Status   string `json:"status" validate:"required"`
}

// Handler serves the /users routes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates the account handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, fallback string) {
	appErr := apperror.From(err, fallback)
	log.Error("request failed", sl.Err(err))
	render.Status(r, appErr.StatusCode())
	render.JSON(w, r, response.FromAppError(appErr))
}

// List answers GET /users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.list")

	users, err := h.service.List(r.Context())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao listar usuários")
		return
	}
	render.JSON(w, r, users)
}

// Read answers GET /users/{id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.read")

	user, err := h.service.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar usuário")
		return
	}
	render.JSON(w, r, user)
}

// Search answers GET /users/username/{username}.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.search")

	users, err := h.service.Search(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar usuários")
		return
	}
	render.JSON(w, r, users)
}

// Update answers PUT /users/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.update")

	var req UpdateRequest
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

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), models.User{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Level:    req.Level,
		Status:   req.Status,
	})
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao atualizar usuário")
		return
	}
	render.JSON(w, r, updated)
}

// Delete answers DELETE /users/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.delete")

	id := chi.URLParam(r, "id")
	affected, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao remover usuário")
		return
	}
	if affected == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Usuário não encontrado"))
		return
	}
	render.JSON(w, r, response.Deleted{ID: id, Message: "Usuário removido com sucesso"})
}
