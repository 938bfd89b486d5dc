// Package appointments implements the clinic appointment endpoints.
package appointments

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

// Service is the appointment business logic.
type Service interface {
	Create(ctx context.Context, a models.Appointment) (string, error)
	Read(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context) ([]*models.Appointment, error)
	Update(ctx context.Context, id string, a models.Appointment) (*models.Appointment, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Request carries the appointment fields.
type Request struct {
	Specialty    string    `json:"specialty" validate:"required"`
	Comments     string    `json:"comments"`
	Date         time.Time `json:"date" validate:"required"`
	Student      string    `json:"student" validate:"required"`
	Professional string    `json:"professional" validate:"required"`
}

// Handler serves the /appointments routes.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates the appointment handler.
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

func (r *Request) toModel() models.Appointment {
	return models.Appointment{
		Specialty:    r.Specialty,
		Comments:     r.Comments,
		Date:         r.Date,
		Student:      r.Student,
		Professional: r.Professional,
	}
}

// Create answers POST /appointments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.appointments.create")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	id, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao cadastrar agendamento")
		return
	}
	log.Info("appointment created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"id": id, "message": "Agendamento cadastrado com sucesso"})
}

// Read answers GET /appointments/{id}.
func (h *Handler) Read(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.appointments.read")

	a, err := h.service.Read(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao buscar agendamento")
		return
	}
	render.JSON(w, r, a)
}

// List answers GET /appointments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.appointments.list")

	list, err := h.service.List(r.Context())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao listar agendamentos")
		return
	}
	render.JSON(w, r, list)
}

// Update answers PUT /appointments/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.appointments.update")

	req, ok := h.decode(w, r, log)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req.toModel())
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao atualizar agendamento")
		return
	}
	render.JSON(w, r, updated)
}

// Delete answers DELETE /appointments/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.appointments.delete")

	id := chi.URLParam(r, "id")
	affected, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.renderError(w, r, log, err, "Erro ao remover agendamento")
		return
	}
	if affected == 0 {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Agendamento não encontrado"))
		return
	}
	render.JSON(w, r, response.Deleted{ID: id, Message: "Agendamento removido com sucesso"})
}
