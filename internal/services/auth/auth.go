// Package auth holds the business logic of the authentication slice:
// account registration, credential verification and session token
// issuance and validation.
package auth

import (
	"context"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/lib/jwt"
	"github.com/daii-team/school-scheduler/internal/lib/password"
	"github.com/daii-team/school-scheduler/internal/models"
)

// UserRepository is the storage contract the authenticator needs.
type UserRepository interface {
	// RegisterUser persists a new account and returns its id.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail returns the account with that email, hash included.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsUserByEmail reports whether an account uses that email.
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
	// ExistsUserByUsername reports whether an account uses that username.
	ExistsUserByUsername(ctx context.Context, username string) (bool, error)
}

// Service implements registration, login and token validation.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New creates the authentication service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// RegisterInput carries the fields accepted at registration. Level and
// Status are optional and default to "user"/"active".
type RegisterInput struct {
	Name     string
	Email    string
	Username string
	Password string
	Level    string
	Status   string
}

// Register hashes the password and persists the account, returning its
// id. The existence checks are a fast path only: the unique indexes of
// the store remain the authoritative conflict source, so a concurrent
// duplicate still surfaces as the same Conflict error.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, error) {
	taken, err := s.users.ExistsUserByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperror.New(apperror.Conflict, "Email já cadastrado")
	}

	taken, err = s.users.ExistsUserByUsername(ctx, in.Username)
	if err != nil {
		return "", err
	}
	if taken {
		return "", apperror.New(apperror.Conflict, "Username já cadastrado")
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return "", err
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hashed,
		Level:        in.Level,
		Status:       in.Status,
	}
	if user.Level == "" {
		user.Level = models.LevelUser
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	return s.users.RegisterUser(ctx, user)
}

// Login verifies the credentials and issues a session token carrying
// the account id, email and level. Nothing is persisted: the token's
// own expiry is the only session state.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", apperror.Wrap(apperror.Auth, "Senha incorreta", err)
	}
	return s.jwtMaker.GenerateToken(user.UID, user.Email, user.Level)
}

// ValidateToken checks a bearer token and returns its decoded claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, apperror.Wrap(apperror.Auth, "Token inválido ou expirado", err)
	}
	return claims, nil
}
