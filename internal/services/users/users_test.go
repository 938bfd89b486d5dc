package users

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

type RepositoryMock struct {
	mock.Mock
}

func (m *RepositoryMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.User)
	return list, args.Error(1)
}

func (m *RepositoryMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *RepositoryMock) SearchUsersByUsername(ctx context.Context, username string) ([]*models.User, error) {
	args := m.Called(ctx, username)
	list, _ := args.Get(0).([]*models.User)
	return list, args.Error(1)
}

func (m *RepositoryMock) UpdateUser(ctx context.Context, uid string, user models.User) (*models.User, error) {
	args := m.Called(ctx, uid, user)
	updated, _ := args.Get(0).(*models.User)
	return updated, args.Error(1)
}

func (m *RepositoryMock) DeleteUser(ctx context.Context, uid string) (int64, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSearch_NoMatchIsNotFound(t *testing.T) {
	repo := new(RepositoryMock)
	svc := New(repo, newNoopLogger())

	repo.On("SearchUsersByUsername", mock.Anything, "ghost").
		Return([]*models.User{}, nil).Once()

	_, err := svc.Search(context.Background(), "ghost")
	require.Error(t, err)
	appErr := apperror.From(err, "")
	assert.Equal(t, apperror.NotFound, appErr.Kind)
	assert.Equal(t, "Usuário não encontrado", appErr.Message)
}

func TestSearch_MatchPassesThrough(t *testing.T) {
	repo := new(RepositoryMock)
	svc := New(repo, newNoopLogger())

	found := []*models.User{{UID: "uid-1", Username: "usera"}}
	repo.On("SearchUsersByUsername", mock.Anything, "user").
		Return(found, nil).Once()

	got, err := svc.Search(context.Background(), "user")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "usera", got[0].Username)
}
