// Package students holds the business logic for the student registry,
// including read-through caching of individual records.
package students

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Repository is the storage contract for student records.
type Repository interface {
	CreateStudent(ctx context.Context, st models.Student) (string, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, id string, st models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) (int64, error)
}

// Cache is the key/value contract used for read-through caching.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service exposes the student CRUD operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New creates the student service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(id string) string {
	return fmt.Sprintf("student:%s", id)
}

// Create persists a new student and caches it.
func (s *Service) Create(ctx context.Context, st models.Student) (string, error) {
	id, err := s.repo.CreateStudent(ctx, st)
	if err != nil {
		return "", err
	}
	s.log.Info("created student", slog.String("id", id))

	st.ID = id
	if err := s.cache.Set(cacheKey(id), st, time.Hour); err != nil {
		s.log.Warn("failed to cache student", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return id, nil
}

// Read returns a student, serving from the cache when possible.
func (s *Service) Read(ctx context.Context, id string) (*models.Student, error) {
	var cached *models.Student
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("student cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	st, err := s.repo.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), st, time.Hour); err != nil {
		s.log.Warn("failed to cache student", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return st, nil
}

// List returns every student record.
func (s *Service) List(ctx context.Context) ([]*models.Student, error) {
	return s.repo.ListStudents(ctx)
}

// Update rewrites a student and refreshes its cache entry.
func (s *Service) Update(ctx context.Context, id string, st models.Student) (*models.Student, error) {
	updated, err := s.repo.UpdateStudent(ctx, id, st)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), updated, time.Hour); err != nil {
		s.log.Warn("failed to cache student", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return updated, nil
}

// Delete removes a student and invalidates its cache entry.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate student cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return s.repo.DeleteStudent(ctx, id)
}
