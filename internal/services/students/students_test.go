package students

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/daii-team/school-scheduler/internal/models"
)

type RepositoryMock struct {
	mock.Mock
}

func (m *RepositoryMock) CreateStudent(ctx context.Context, st models.Student) (string, error) {
	args := m.Called(ctx, st)
	return args.String(0), args.Error(1)
}

func (m *RepositoryMock) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	args := m.Called(ctx, id)
	st, _ := args.Get(0).(*models.Student)
	return st, args.Error(1)
}

func (m *RepositoryMock) ListStudents(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*models.Student)
	return list, args.Error(1)
}

func (m *RepositoryMock) UpdateStudent(ctx context.Context, id string, st models.Student) (*models.Student, error) {
	args := m.Called(ctx, id, st)
	updated, _ := args.Get(0).(*models.Student)
	return updated, args.Error(1)
}

func (m *RepositoryMock) DeleteStudent(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if st, ok := args.Get(2).(*models.Student); ok {
		*(result.(**models.Student)) = st
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRead_CacheHit(t *testing.T) {
	repo := new(RepositoryMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger())

	cached := &models.Student{ID: "id-1", Name: "João"}
	cache.On("Get", "student:id-1", mock.Anything).Return(true, nil, cached).Once()

	st, err := svc.Read(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "João", st.Name)
	repo.AssertNotCalled(t, "GetStudent", mock.Anything, mock.Anything)
}

func TestRead_CacheMissFillsCache(t *testing.T) {
	repo := new(RepositoryMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger())

	stored := &models.Student{ID: "id-1", Name: "João"}
	cache.On("Get", "student:id-1", mock.Anything).Return(false, nil, nil).Once()
	repo.On("GetStudent", mock.Anything, "id-1").Return(stored, nil).Once()
	cache.On("Set", "student:id-1", stored, time.Hour).Return(nil).Once()

	st, err := svc.Read(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "João", st.Name)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestRead_CacheErrorFallsThrough(t *testing.T) {
	repo := new(RepositoryMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger())

	stored := &models.Student{ID: "id-1", Name: "João"}
	cache.On("Get", "student:id-1", mock.Anything).Return(false, errors.New("redis down"), nil).Once()
	repo.On("GetStudent", mock.Anything, "id-1").Return(stored, nil).Once()
	cache.On("Set", "student:id-1", stored, time.Hour).Return(errors.New("redis down")).Once()

	st, err := svc.Read(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "João", st.Name)
}

func TestCreate_CachesRecord(t *testing.T) {
	repo := new(RepositoryMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger())

	input := models.Student{Name: "João", Age: 9, Guardians: "Maria", PhoneNumber: "48", Status: "active"}
	repo.On("CreateStudent", mock.Anything, input).Return("id-1", nil).Once()

	withID := input
	withID.ID = "id-1"
	cache.On("Set", "student:id-1", withID, time.Hour).Return(nil).Once()

	id, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "id-1", id)
	cache.AssertExpectations(t)
}

func TestDelete_InvalidatesCacheFirst(t *testing.T) {
	repo := new(RepositoryMock)
	cache := new(CacheMock)
	svc := New(repo, cache, newNoopLogger())

	cache.On("Invalidate", "student:id-1").Return(nil).Once()
	repo.On("DeleteStudent", mock.Anything, "id-1").Return(int64(1), nil).Once()

	affected, err := svc.Delete(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}
