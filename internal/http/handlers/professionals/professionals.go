// Package professionals implements the clinic professional registry
// endpoints.
package professionals

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

// Service is the professional registry business logic.
type Service interface {
	Create(ctx context.Context, p models.Professional) (string, error)
	Read(ctx context.Context, id string) (*models.Professional, error)
	List(ctx context.Context) ([]*models.Professional, error)
	Update(ctx context.Context, id string, p models.Professional) (*models.Professional, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Request carries the professional fields.
type Request struct {
	Name        string `json:"name" validate:"required"`
	Age         int    `json:"age" validate:"required"`
	Specialty   string `json:"specialty" validate:"required"`
	Contact     string `json:"contact" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// Handler serves the /professionals routes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates the professional handler.
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

func (r *Request) toModel() models.Professional {
	return models.Professional{
		Name:        r.Name,
		Age:         r.Age,
		Specialty:   r.Specialty,
		Contact:     r.Contact,
		PhoneNumber: r.PhoneNumber,
		Status:      r.Status,
	}
}

// Create answers POST /professionals.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.professionals.create")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	id, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao cadastrar profissional")
		return
	}
	log.Info("professional created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"id": id, "message": "Profissional cadastrado com sucesso"})
}

// Read answers GET /professionals/{id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.professionals.read")

	p, err := h.service.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar profissional")
		return
	}
	render.JSON(w, r, p)
}

// List answers GET /professionals.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.professionals.list")

	list, err := h.service.List(r.Context())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao listar profissionais")
		return
	}
	render.JSON(w, r, list)
}

// Update answers PUT /professionals/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.professionals.update")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao atualizar profissional")
		return
	}
	render.JSON(w, r, updated)
}

// Delete answers DELETE /professionals/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.professionals.delete")

	id := chi.URLParam(r, "id")
	affected, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao remover profissional")
		return
	}
	if affected == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Profissional não encontrado"))
		return
	}
	render.JSON(w, r, response.Deleted{ID: id, Message: "Profissional removido com sucesso"})
}
