// Package students implements the student registry endpoints.
package students

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

// Service is the student registry business logic.
type Service interface {
	Create(ctx context.Context, st models.Student) (string, error)
	Read(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, id string, st models.Student) (*models.Student, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Request carries the student fields, with the wire names the first
// version of the system established.
type Request struct {
	Name         string `json:"nome" validate:"required"`
	Age          int    `json:"idade" validate:"required"`
	Guardians    string `json:"parentes" validate:"required"`
	PhoneNumber  string `json:"numero_de_telefone" validate:"required"`
	SpecialNeeds string `json:"necessidades_especiais"`
	Status       string `json:"status" validate:"required"`
}

// Handler serves the /students routes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates the student handler.
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

func (r *Request) toModel() models.Student {
	return models.Student{
		Name:         r.Name,
		Age:          r.Age,
		Guardians:    r.Guardians,
		PhoneNumber:  r.PhoneNumber,
		SpecialNeeds: r.SpecialNeeds,
		Status:       r.Status,
	}
}

// Create answers POST /students.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.students.create")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	id, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao cadastrar aluno")
		return
	}
	log.Info("student created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"id": id, "message": "Aluno cadastrado com sucesso"})
}

// Read answers GET /students/{id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.students.read")

	st, err := h.service.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar aluno")
		return
	}
	render.JSON(w, r, st)
}

// List answers GET /students.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.students.list")

	list, err := h.service.List(r.Context())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao listar alunos")
		return
	}
	render.JSON(w, r, list)
}

// Update answers PUT /students/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.students.update")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao atualizar aluno")
		return
	}
	render.JSON(w, r, updated)
}

// Delete answers DELETE /students/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.students.delete")

	id := chi.URLParam(r, "id")
	affected, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao remover aluno")
		return
	}
	if affected == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Aluno não encontrado"))
		return
	}
	render.JSON(w, r, response.Deleted{ID: id, Message: "Aluno removido com sucesso"})
}
