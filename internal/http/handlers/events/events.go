// Package events implements the school calendar endpoints.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/http/response"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Service is the calendar business logic.
type Service interface {
	Create(ctx context.Context, e models.Event) (string, error)
	Read(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]*models.Event, error)
	Search(ctx context.Context, name string) ([]*models.Event, error)
	Update(ctx context.Context, id string, e models.Event) (*models.Event, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Request carries the event fields. Status is optional and defaults to
// active.
type Request struct {
	Description string    `json:"description" validate:"required"`
	Comments    string    `json:"comments"`
	Date        time.Time `json:"date" validate:"required"`
	Status      string    `json:"status"`
}

// Handler serves the /events routes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates the calendar handler.
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

func (r *Request) toModel() models.Event {
	return models.Event{
		Description: r.Description,
		Comments:    r.Comments,
		Date:        r.Date,
		Status:      r.Status,
	}
}

// Create answers POST /events.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.events.create")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	id, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao cadastrar evento")
		return
	}
	log.Info("event created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"id": id, "message": "Evento cadastrado com sucesso"})
}

// Read answers GET /events/{id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.events.read")

	e, err := h.service.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar evento")
		return
	}
	render.JSON(w, r, e)
}

// List answers GET /events.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.events.list")

	list, err := h.service.List(r.Context())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao listar eventos")
		return
	}
	render.JSON(w, r, list)
}

// Search answers GET /events/name/{name}.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.events.search")

	list, err := h.service.Search(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar eventos")
		return
	}
	render.JSON(w, r, list)
}

// Update answers PUT /events/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.events.update")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao atualizar evento")
		return
	}
	render.JSON(w, r, updated)
}

// Delete answers DELETE /events/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.events.delete")

	id := chi.URLParam(r, "id")
	affected, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao remover evento")
		return
	}
	if affected == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Evento não encontrado"))
		return
	}
	render.JSON(w, r, response.Deleted{ID: id, Message: "Evento removido com sucesso"})
}
