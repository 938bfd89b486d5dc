package schedulerserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/daii-team/school-scheduler/internal/cache"
	"github.com/daii-team/school-scheduler/internal/config"
	"github.com/daii-team/school-scheduler/internal/lib/jwt"
	"github.com/daii-team/school-scheduler/internal/migrations"
	"github.com/daii-team/school-scheduler/internal/services/auth"
	appointmentsvc "github.com/daii-team/school-scheduler/internal/services/appointments"
	eventsvc "github.com/daii-team/school-scheduler/internal/services/events"
	professionalsvc "github.com/daii-team/school-scheduler/internal/services/professionals"
	studentsvc "github.com/daii-team/school-scheduler/internal/services/students"
	teachersvc "github.com/daii-team/school-scheduler/internal/services/teachers"
	usersvc "github.com/daii-team/school-scheduler/internal/services/users"
	"github.com/daii-team/school-scheduler/internal/storage/repository"
	"github.com/daii-team/school-scheduler/internal/web"
)

// App is the assembled HTTP service: storage, cache, services and the
// listener.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New connects the dependencies, runs the migrations and builds the
// server.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	svc := Services{
		Auth:          auth.New(db, jwtMaker),
		Users:         usersvc.New(db, logger),
		Students:      studentsvc.New(db, cacheRedis, logger),
		Teachers:      teachersvc.New(db, cacheRedis, logger),
		Professionals: professionalsvc.New(db, cacheRedis, logger),
		Events:        eventsvc.New(db, cacheRedis, logger),
		Appointments:  appointmentsvc.New(db, cacheRedis, logger),
	}

	pages, err := web.New(svc.Auth, logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, svc, pages)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("error", closeErr))
		}
		return err
	}
}
