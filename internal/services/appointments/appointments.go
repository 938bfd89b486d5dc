// Package appointments holds the business logic for scheduling
// appointments between students and professionals.
package appointments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Repository is the storage contract for appointments.
type Repository interface {
	CreateAppointment(ctx context.Context, a models.Appointment) (string, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context) ([]*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, a models.Appointment) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) (int64, error)
}

// Cache is the key/value contract used for read-through caching.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service exposes the appointment CRUD operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New creates the appointment service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(id string) string {
	return fmt.Sprintf("appointment:%s", id)
}

// Create persists a new appointment.
func (s *Service) Create(ctx context.Context, a models.Appointment) (string, error) {
	id, err := s.repo.CreateAppointment(ctx, a)
	if err != nil {
		return "", err
	}
	s.log.Info("created appointment", slog.String("id", id))
	return id, nil
}

// Read returns an appointment, serving from the cache when possible.
func (s *Service) Read(ctx context.Context, id string) (*models.Appointment, error) {
	var cached *models.Appointment
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("appointment cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), a, time.Hour); err != nil {
		s.log.Warn("failed to cache appointment", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return a, nil
}

// List returns every appointment.
func (s *Service) List(ctx context.Context) ([]*models.Appointment, error) {
	return s.repo.ListAppointments(ctx)
}

// Update rewrites an appointment and refreshes its cache entry.
func (s *Service) Update(ctx context.Context, id string, a models.Appointment) (*models.Appointment, error) {
	updated, err := s.repo.UpdateAppointment(ctx, id, a)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), updated, time.Hour); err != nil {
		s.log.Warn("failed to cache appointment", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return updated, nil
}

// Delete removes an appointment and invalidates its cache entry.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate appointment cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return s.repo.DeleteAppointment(ctx, id)
}
