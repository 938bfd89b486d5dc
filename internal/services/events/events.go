// Package events holds the business logic for the school calendar.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/lib/sl"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Repository is the storage contract for calendar events.
type Repository interface {
	CreateEvent(ctx context.Context, e models.Event) (string, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	SearchEventsByName(ctx context.Context, name string) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, id string, e models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) (int64, error)
}

// Cache is the key/value contract used for read-through caching.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service exposes the event CRUD operations.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New creates the event service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

func cacheKey(id string) string {
	return fmt.Sprintf("event:%s", id)
}

// Create persists a new event. Status defaults to active.
func (s *Service) Create(ctx context.Context, e models.Event) (string, error) {
	if e.Status == "" {
		e.Status = models.StatusActive
	}
	id, err := s.repo.CreateEvent(ctx, e)
	if err != nil {
		return "", err
	}
	s.log.Info("created event", slog.String("id", id))

	e.ID = id
	if err := s.cache.Set(cacheKey(id), e, time.Hour); err != nil {
		s.log.Warn("failed to cache event", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return id, nil
}

// Read returns an event, serving from the cache when possible.
func (s *Service) Read(ctx context.Context, id string) (*models.Event, error) {
	var cached *models.Event
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("event cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	e, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), e, time.Hour); err != nil {
		s.log.Warn("failed to cache event", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return e, nil
}

// List returns every event.
func (s *Service) List(ctx context.Context) ([]*models.Event, error) {
	return s.repo.ListEvents(ctx)
}

// Search returns events whose description contains the fragment. An
// empty result is a NotFound, matching the original API behavior.
func (s *Service) Search(ctx context.Context, name string) ([]*models.Event, error) {
	found, err := s.repo.SearchEventsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.New(apperror.NotFound, "Nenhum evento encontrado com esse nome!")
	}
	return found, nil
}

// Update rewrites an event and refreshes its cache entry.
func (s *Service) Update(ctx context.Context, id string, e models.Event) (*models.Event, error) {
	updated, err := s.repo.UpdateEvent(ctx, id, e)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), updated, time.Hour); err != nil {
		s.log.Warn("failed to cache event", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return updated, nil
}

// Delete removes an event and invalidates its cache entry.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate event cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	return s.repo.DeleteEvent(ctx, id)
}
