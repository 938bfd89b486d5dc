// Package teachers holds the business logic for the teacher registry.
package teachers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Repository is the storage contract for teacher records.
type Repository interface {
	CreateTeacher(ctx context.Context, t models.Teacher) (string, error)
	GetTeacher(ctx context.Context, id string) (*models.Teacher, error)
	ListTeachers(ctx context.Context) ([]*models.Teacher, error)
	UpdateTeacher(ctx context.Context, id string, t models.Teacher) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, id string) (int64, error)
}

// Cache is the key/value contract used for read-through caching.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service exposes the teacher CRUD operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New creates the teacher service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(id string) string {
	return fmt.Sprintf("teacher:%s", id)
}

// Create persists a new teacher and caches it.
func (s *Service) Create(ctx context.Context, t models.Teacher) (string, error) {
	id, err := s.repo.CreateTeacher(ctx, t)
	if err != nil {
		return "", err
	}
	s.log.Info("created teacher", slog.String("id", id))

	t.ID = id
	if err := s.cache.Set(cacheKey(id), t, time.Hour); err != nil {
		s.log.Warn("failed to cache teacher", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return id, nil
}

// Read returns a teacher, serving from the cache when possible.
func (s *Service) Read(ctx context.Context, id string) (*models.Teacher, error) {
	var cached *models.Teacher
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("teacher cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	t, err := s.repo.GetTeacher(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), t, time.Hour); err != nil {
		s.log.Warn("failed to cache teacher", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return t, nil
}

// List returns every teacher record.
func (s *Service) List(ctx context.Context) ([]*models.Teacher, error) {
	return s.repo.ListTeachers(ctx)
}

// Update rewrites a teacher and refreshes its cache entry.
func (s *Service) Update(ctx context.Context, id string, t models.Teacher) (*models.Teacher, error) {
	updated, err := s.repo.UpdateTeacher(ctx, id, t)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), updated, time.Hour); err != nil {
		s.log.Warn("failed to cache teacher", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return updated, nil
}

// Delete removes a teacher and invalidates its cache entry.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate teacher cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return s.repo.DeleteTeacher(ctx, id)
}
