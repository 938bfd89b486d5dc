// Package users holds the account management logic behind the /users
// CRUD endpoints. Accounts are deliberately not cached: reads are rare
// and stale credentials would be worse than the extra query.
package users

import (
	"context"
	"log/slog"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

// Repository is the storage contract for account management.
type Repository interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
	SearchUsersByUsername(ctx context.Context, username string) ([]*models.User, error)
	UpdateUser(ctx context.Context, uid string, user models.User) (*models.User, error)
	DeleteUser(ctx context.Context, uid string) (int64, error)
}

// Service exposes the account CRUD operations.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates the account service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns every account. The password hash never serializes.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Read returns one account by uid.
func (s *Service) Read(ctx context.Context, uid string) (*models.User, error) {
	return s.repo.GetUser(ctx, uid)
}

// Search returns accounts whose username contains the fragment. An
// empty result is a NotFound, matching the original API behavior.
func (s *Service) Search(ctx context.Context, username string) ([]*models.User, error) {
	found, err := s.repo.SearchUsersByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, apperror.New(apperror.NotFound, "Usuário não encontrado")
	}
	return found, nil
}

// Update rewrites the mutable account fields and returns the record.
func (s *Service) Update(ctx context.Context, uid string, user models.User) (*models.User, error) {
	updated, err := s.repo.UpdateUser(ctx, uid, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user", slog.String("uid", uid))
	return updated, nil
}

// Delete removes an account and returns how many rows went away.
func (s *Service) Delete(ctx context.Context, uid string) (int64, error) {
	affected, err := s.repo.DeleteUser(ctx, uid)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.log.Info("deleted user", slog.String("uid", uid))
	}
	return affected, nil
}
