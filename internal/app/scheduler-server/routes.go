// Package schedulerserver wires the HTTP server of the scheduling
// service: API routes, pages and metrics.
package schedulerserver

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/daii-team/school-scheduler/internal/http/handlers/appointments"
	"github.com/daii-team/school-scheduler/internal/http/handlers/auth/login"
	"github.com/daii-team/school-scheduler/internal/http/handlers/auth/protected"
	"github.com/daii-team/school-scheduler/internal/http/handlers/auth/register"
	"github.com/daii-team/school-scheduler/internal/http/handlers/events"
	"github.com/daii-team/school-scheduler/internal/http/handlers/professionals"
	"github.com/daii-team/school-scheduler/internal/http/handlers/students"
	"github.com/daii-team/school-scheduler/internal/http/handlers/teachers"
	"github.com/daii-team/school-scheduler/internal/http/handlers/users"
	"github.com/daii-team/school-scheduler/internal/http/middlewarectx"
	appointmentsvc "github.com/daii-team/school-scheduler/internal/services/appointments"
	"github.com/daii-team/school-scheduler/internal/services/auth"
	eventsvc "github.com/daii-team/school-scheduler/internal/services/events"
	professionalsvc "github.com/daii-team/school-scheduler/internal/services/professionals"
	studentsvc "github.com/daii-team/school-scheduler/internal/services/students"
	teachersvc "github.com/daii-team/school-scheduler/internal/services/teachers"
	usersvc "github.com/daii-team/school-scheduler/internal/services/users"
	"github.com/daii-team/school-scheduler/internal/web"
)

// Services carries every business service the routes need.
type Services struct {
	Auth          *auth.Service
	Users         *usersvc.Service
	Students      *studentsvc.Service
	Teachers      *teachersvc.Service
	Professionals *professionalsvc.Service
	Events        *eventsvc.Service
	Appointments  *appointmentsvc.Service
}

// RegisterRoutes registers the API, the pages and the metrics endpoint.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc Services, pages *web.Server) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	usersHandler := users.New(logger, svc.Users)
	studentsHandler := students.New(logger, svc.Students)
	teachersHandler := teachers.New(logger, svc.Teachers)
	professionalsHandler := professionals.New(logger, svc.Professionals)
	eventsHandler := events.New(logger, svc.Events)
	appointmentsHandler := appointments.New(logger, svc.Appointments)

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
			r.With(middlewarectx.JWTMiddleware(svc.Auth, logger)).
				Get("/protected", protected.New(logger).ServeHTTP)
			r.Get("/", usersHandler.List)
			r.Get("/{id}", usersHandler.Read)
			r.Get("/username/{username}", usersHandler.Search)
			r.Put("/{id}", usersHandler.Update)
			r.Delete("/{id}", usersHandler.Delete)
		})

		r.Route("/students", func(r chi.Router) {
			r.Get("/", studentsHandler.List)
			r.Get("/{id}", studentsHandler.Read)
			r.Post("/", studentsHandler.Create)
			r.Put("/{id}", studentsHandler.Update)
			r.Delete("/{id}", studentsHandler.Delete)
		})

		r.Route("/teachers", func(r chi.Router) {
			r.Get("/", teachersHandler.List)
			r.Get("/{id}", teachersHandler.Read)
			r.Post("/", teachersHandler.Create)
			r.Put("/{id}", teachersHandler.Update)
			r.Delete("/{id}", teachersHandler.Delete)
		})

		r.Route("/professionals", func(r chi.Router) {
			r.Get("/", professionalsHandler.List)
			r.Get("/{id}", professionalsHandler.Read)
			r.Post("/", professionalsHandler.Create)
			r.Put("/{id}", professionalsHandler.Update)
			r.Delete("/{id}", professionalsHandler.Delete)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventsHandler.List)
			r.Get("/{id}", eventsHandler.Read)
			r.Get("/name/{name}", eventsHandler.Search)
			r.Post("/", eventsHandler.Create)
			r.Put("/{id}", eventsHandler.Update)
			r.Delete("/{id}", eventsHandler.Delete)
		})

		r.Route("/appointments", func(r chi.Router) {
			r.Get("/", appointmentsHandler.List)
			r.Get("/{id}", appointmentsHandler.Read)
			r.Post("/", appointmentsHandler.Create)
			r.Put("/{id}", appointmentsHandler.Update)
			r.Delete("/{id}", appointmentsHandler.Delete)
		})
	})

	r.Group(pages.Routes)

	r.Handle("/metrics", promhttp.Handler())
}
