package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

func TestStorage_Users(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Name:         "A",
		Email:        "a@x.com",
		Username:     "usera",
		PasswordHash: "hash-a",
		Level:        "user",
		Status:       "active",
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		_, err := storage.RegisterUser(ctx, models.User{
			Name:         "B",
			Email:        "a@x.com",
			Username:     "userb",
			PasswordHash: "hash-b",
			Level:        "user",
			Status:       "active",
		})
		require.Error(t, err)
		appErr := apperror.From(err, "")
		assert.Equal(t, apperror.Conflict, appErr.Kind)
		assert.Equal(t, "Email já cadastrado", appErr.Message)
	})

	t.Run("duplicate username maps to conflict", func(t *testing.T) {
		_, err := storage.RegisterUser(ctx, models.User{
			Name:         "B",
			Email:        "b@x.com",
			Username:     "usera",
			PasswordHash: "hash-b",
			Level:        "user",
			Status:       "active",
		})
		require.Error(t, err)
		appErr := apperror.From(err, "")
		assert.Equal(t, apperror.Conflict, appErr.Kind)
		assert.Equal(t, "Username já cadastrado", appErr.Message)
	})

	t.Run("get by email returns hash", func(t *testing.T) {
		user, err := storage.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, uid, user.UID)
		assert.Equal(t, "hash-a", user.PasswordHash)
	})

	t.Run("get unknown user is not found", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "nobody@x.com")
		require.Error(t, err)
		appErr := apperror.From(err, "")
		assert.Equal(t, apperror.NotFound, appErr.Kind)
		assert.Equal(t, "Usuário não encontrado", appErr.Message)
	})

	t.Run("get by uid", func(t *testing.T) {
		generated := GetTestUserData()
		genUID, err := storage.RegisterUser(ctx, generated)
		require.NoError(t, err)

		user, err := storage.GetUser(ctx, genUID)
		require.NoError(t, err)
		assert.Equal(t, generated.Email, user.Email)
		assert.Equal(t, generated.Username, user.Username)
	})

	t.Run("exists checks", func(t *testing.T) {
		exists, err := storage.ExistsUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = storage.ExistsUserByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("search by username fragment", func(t *testing.T) {
		found, err := storage.SearchUsersByUsername(ctx, "SERA")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "usera", found[0].Username)

		none, err := storage.SearchUsersByUsername(ctx, "zzz")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("update and delete", func(t *testing.T) {
		updated, err := storage.UpdateUser(ctx, uid, models.User{
			Name:     "A2",
			Email:    "a@x.com",
			Username: "usera",
			Level:    "admin",
			Status:   "active",
		})
		require.NoError(t, err)
		assert.Equal(t, "A2", updated.Name)
		assert.Equal(t, "admin", updated.Level)

		affected, err := storage.DeleteUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)

		affected, err = storage.DeleteUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestStorage_Students(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	empty, err := storage.ListStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	id, err := storage.CreateStudent(ctx, models.Student{
		Name:         "João",
		Age:          9,
		Guardians:    "Maria",
		PhoneNumber:  "48999990000",
		SpecialNeeds: "TEA",
		Status:       "active",
	})
	require.NoError(t, err)

	st, err := storage.GetStudent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "João", st.Name)

	list, err := storage.ListStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	updated, err := storage.UpdateStudent(ctx, id, models.Student{
		Name:         "João",
		Age:          10,
		Guardians:    "Maria",
		PhoneNumber:  "48999990000",
		SpecialNeeds: "TEA",
		Status:       "active",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Age)

	affected, err := storage.DeleteStudent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = storage.GetStudent(ctx, id)
	require.Error(t, err)
	appErr := apperror.From(err, "")
	assert.Equal(t, apperror.NotFound, appErr.Kind)
}

func TestStorage_EventsAndAppointmentsDueTomorrow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	tomorrow := time.Now().Add(24 * time.Hour)
	nextWeek := time.Now().Add(7 * 24 * time.Hour)

	factory.CreateEvent(t, models.Event{
		Description: "Festa Junina", Comments: "quadra", Date: tomorrow, Status: "active",
	})
	factory.CreateEvent(t, models.Event{
		Description: "Reunião de pais", Comments: "", Date: nextWeek, Status: "active",
	})
	factory.CreateEvent(t, models.Event{
		Description: "Evento cancelado", Comments: "", Date: tomorrow, Status: "inactive",
	})

	events, err := storage.FindEventsDueTomorrow(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Festa Junina", events[0].Description)

	factory.CreateAppointment(t, models.Appointment{
		Specialty: "fonoaudiologia", Date: tomorrow, Student: "João", Professional: "Dra. Ana",
	})
	factory.CreateAppointment(t, models.Appointment{
		Specialty: "psicologia", Date: nextWeek, Student: "Pedro", Professional: "Dr. Leo",
	})

	appointments, err := storage.FindAppointmentsDueTomorrow(ctx)
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, "fonoaudiologia", appointments[0].Specialty)
}

func TestStorage_SearchEventsByName(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	factory.CreateEvent(t, models.Event{
		Description: "Festa Junina", Comments: "", Date: time.Now(), Status: "active",
	})
	factory.CreateEvent(t, models.Event{
		Description: "Formatura", Comments: "", Date: time.Now(), Status: "active",
	})

	found, err := storage.SearchEventsByName(ctx, "festa")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Festa Junina", found[0].Description)

	found, err = storage.SearchEventsByName(ctx, "f")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
