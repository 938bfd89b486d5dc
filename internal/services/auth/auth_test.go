package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/lib/jwt"
	"github.com/daii-team/school-scheduler/internal/lib/password"
	"github.com/daii-team/school-scheduler/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ExistsUserByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepositoryMock) ExistsUserByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func TestRegister(t *testing.T) {
	repo := new(UserRepositoryMock)
	svc := New(repo, jwt.NewMaker("test-secret", time.Hour))

	repo.On("ExistsUserByEmail", mock.Anything, "a@x.com").Return(false, nil).Once()
	repo.On("ExistsUserByUsername", mock.Anything, "usera").Return(false, nil).Once()
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "a@x.com" &&
			u.Level == models.LevelUser &&
			u.Status == models.StatusActive &&
			u.PasswordHash != "secret1" &&
			password.CompareHash(u.PasswordHash, "secret1") == nil
	})).Return("uid-1", nil).Once()

	uid, err := svc.Register(context.Background(), RegisterInput{
		Name:     "A",
		Email:    "a@x.com",
		Username: "usera",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(UserRepositoryMock)
	svc := New(repo, jwt.NewMaker("test-secret", time.Hour))

	repo.On("ExistsUserByEmail", mock.Anything, "a@x.com").Return(true, nil).Once()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "A",
		Email:    "a@x.com",
		Username: "usera",
		Password: "secret1",
	})
	require.Error(t, err)
	appErr := apperror.From(err, "")
	assert.Equal(t, apperror.Conflict, appErr.Kind)
	assert.Equal(t, "Email já cadastrado", appErr.Message)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := new(UserRepositoryMock)
	svc := New(repo, jwt.NewMaker("test-secret", time.Hour))

	repo.On("ExistsUserByEmail", mock.Anything, "a@x.com").Return(false, nil).Once()
	repo.On("ExistsUserByUsername", mock.Anything, "usera").Return(true, nil).Once()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "A",
		Email:    "a@x.com",
		Username: "usera",
		Password: "secret1",
	})
	require.Error(t, err)
	appErr := apperror.From(err, "")
	assert.Equal(t, apperror.Conflict, appErr.Kind)
	assert.Equal(t, "Username já cadastrado", appErr.Message)
}

func TestLogin(t *testing.T) {
	repo := new(UserRepositoryMock)
	svc := New(repo, jwt.NewMaker("test-secret", time.Hour))

	hash, err := password.GetHash("secret1")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(&models.User{
		UID:          "uid-1",
		Email:        "a@x.com",
		PasswordHash: hash,
		Level:        models.LevelUser,
	}, nil).Once()

	token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, models.LevelUser, claims.Level)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(UserRepositoryMock)
	svc := New(repo, jwt.NewMaker("test-secret", time.Hour))

	hash, err := password.GetHash("secret1")
	require.NoError(t, err)

	repo.On("GetUserByEmail", mock.Anything, "a@x.com").Return(&models.User{
		UID:          "uid-1",
		Email:        "a@x.com",
		PasswordHash: hash,
	}, nil).Once()

	_, err = svc.Login(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)
	appErr := apperror.From(err, "")
	assert.Equal(t, apperror.Auth, appErr.Kind)
	assert.Equal(t, "Senha incorreta", appErr.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(UserRepositoryMock)
	svc := New(repo, jwt.NewMaker("test-secret", time.Hour))

	repo.On("GetUserByEmail", mock.Anything, "nobody@x.com").
		Return(nil, apperror.New(apperror.NotFound, "Usuário não encontrado")).Once()

	_, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	require.Error(t, err)
	appErr := apperror.From(err, "")
	assert.Equal(t, apperror.NotFound, appErr.Kind)
	assert.Equal(t, "Usuário não encontrado", appErr.Message)
}

func TestValidateToken_Invalid(t *testing.T) {
	repo := new(UserRepositoryMock)
	svc := New(repo, jwt.NewMaker("test-secret", time.Hour))

	_, err := svc.ValidateToken(context.Background(), "garbage")
	require.Error(t, err)
	appErr := apperror.From(err, "")
	assert.Equal(t, apperror.Auth, appErr.Kind)
	assert.Equal(t, "Token inválido ou expirado", appErr.Message)
}
