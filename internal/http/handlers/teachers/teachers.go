// Package teachers implements the teacher registry endpoints.
package teachers

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

// Service is the teacher registry business logic.
type Service interface {
	Create(ctx context.Context, t models.Teacher) (string, error)
	Read(ctx context.Context, id string) (*models.Teacher, error)
	List(ctx context.Context) ([]*models.Teacher, error)
	Update(ctx context.Context, id string, t models.Teacher) (*models.Teacher, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Request carries the teacher fields.
type Request struct {
	Name              string `json:"name" validate:"required"`
	SchoolDisciplines string `json:"school_disciplines" validate:"required"`
	Contact           string `json:"contact" validate:"required"`
	PhoneNumber       string `json:"phone_number" validate:"required"`
	Status            string `json:"status" validate:"required"`
}

// Handler serves the /teachers routes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates the teacher handler.
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

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*Request, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Campos obrigatórios não preenchidos"))
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return nil, false
	}
	return &req, true
}

func (r *Request) toModel() models.Teacher {
	return models.Teacher{
		Name:              r.Name,
		SchoolDisciplines: r.SchoolDisciplines,
		Contact:           r.Contact,
		PhoneNumber:       r.PhoneNumber,
		Status:            r.Status,
	}
}

// Create answers POST /teachers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.teachers.create")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	id, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao cadastrar professor")
		return
	}
	log.Info("teacher created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"id": id, "message": "Professor cadastrado com sucesso"})
}

// Read answers GET /teachers/{id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.teachers.read")

	t, err := h.service.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar professor")
		return
	}
	render.JSON(w, r, t)
}

// List answers GET /teachers.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.teachers.list")

	list, err := h.service.List(r.Context())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao listar professores")
		return
	}
	render.JSON(w, r, list)
}

// Update answers PUT /teachers/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.teachers.update")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao atualizar professor")
		return
	}
	render.JSON(w, r, updated)
}

// Delete answers DELETE /teachers/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.teachers.delete")

	id := chi.URLParam(r, "id")
	affected, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao remover professor")
		return
	}
	if affected == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Professor não encontrado"))
		return
	}
	render.JSON(w, r, response.Deleted{ID: id, Message: "Professor removido com sucesso"})
}
