// Package professionals holds the business logic for the clinic
// professional registry.
package professionals

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Repository is the storage contract for professional records.
type Repository interface {
	CreateProfessional(ctx context.Context, p models.Professional) (string, error)
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
	ListProfessionals(ctx context.Context) ([]*models.Professional, error)
	UpdateProfessional(ctx context.Context, id string, p models.Professional) (*models.Professional, error)
	DeleteProfessional(ctx context.Context, id string) (int64, error)
}

// Cache is the key/value contract used for read-through caching.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service exposes the professional CRUD operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New creates the professional service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(id string) string {
	return fmt.Sprintf("professional:%s", id)
}

// Create persists a new professional and caches it.
func (s *Service) Create(ctx context.Context, p models.Professional) (string, error) {
	id, err := s.repo.CreateProfessional(ctx, p)
	if err != nil {
		return "", err
	}
	s.log.Info("created professional", slog.String("id", id))

	p.ID = id
	if err := s.cache.Set(cacheKey(id), p, time.Hour); err != nil {
		s.log.Warn("failed to cache professional", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return id, nil
}

// Read returns a professional, serving from the cache when possible.
func (s *Service) Read(ctx context.Context, id string) (*models.Professional, error) {
	var cached *models.Professional
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("professional cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	p, err := s.repo.GetProfessional(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), p, time.Hour); err != nil {
		s.log.Warn("failed to cache professional", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return p, nil
}

// List returns every professional record.
func (s *Service) List(ctx context.Context) ([]*models.Professional, error) {
	return s.repo.ListProfessionals(ctx)
}

// Update rewrites a professional and refreshes its cache entry.
func (s *Service) Update(ctx context.Context, id string, p models.Professional) (*models.Professional, error) {
	updated, err := s.repo.UpdateProfessional(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), updated, time.Hour); err != nil {
		s.log.Warn("failed to cache professional", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return updated, nil
}

// Delete removes a professional and invalidates its cache entry.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate professional cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return s.repo.DeleteProfessional(ctx, id)
}
