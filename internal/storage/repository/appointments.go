package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

// CreateAppointment inserts an appointment and returns its generated id.
// created_at/updated_at are set by the database.
func (s *Storage) CreateAppointment(ctx context.Context, a models.Appointment) (string, error) {
	const op = "storage.CreateAppointment"

	var id string
	query := `INSERT INTO appointments (specialty, comments, date, student, professional)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		a.Specialty, a.Comments, a.Date, a.Student, a.Professional).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetAppointment returns one appointment by id.
func (s *Storage) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	const op = "storage.GetAppointment"

	query := `SELECT id, specialty, comments, date, student, professional, created_at, updated_at
			  FROM appointments WHERE id = $1`
	a := &models.Appointment{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&a.ID, &a.Specialty, &a.Comments, &a.Date, &a.Student,
		&a.Professional, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Agendamento não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAppointments returns every appointment.
func (s *Storage) ListAppointments(ctx context.Context) ([]*models.Appointment, error) {
	const op = "storage.ListAppointments"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, specialty, comments, date, student, professional, created_at, updated_at
		 FROM appointments ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanAppointments(rows, op)
}

// FindAppointmentsDueTomorrow returns appointments dated on the next
// day, used by the reminder scheduler.
func (s *Storage) FindAppointmentsDueTomorrow(ctx context.Context) ([]*models.Appointment, error) {
	const op = "storage.FindAppointmentsDueTomorrow"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, specialty, comments, date, student, professional, created_at, updated_at
		 FROM appointments
		 WHERE date::DATE = CURRENT_DATE + INTERVAL '1 day'`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanAppointments(rows, op)
}

func scanAppointments(rows *sql.Rows, op string) ([]*models.Appointment, error) {
	result := []*models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(&a.ID, &a.Specialty, &a.Comments, &a.Date, &a.Student,
			&a.Professional, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateAppointment rewrites an appointment and returns the updated row.
func (s *Storage) UpdateAppointment(ctx context.Context, id string, a models.Appointment) (*models.Appointment, error) {
	const op = "storage.UpdateAppointment"

	query := `UPDATE appointments
			  SET specialty = $1, comments = $2, date = $3, student = $4,
			      professional = $5, updated_at = NOW()
			  WHERE id = $6
			  RETURNING id, specialty, comments, date, student, professional, created_at, updated_at`
	updated := &models.Appointment{}
	row := s.DB.QueryRowContext(ctx, query,
		a.Specialty, a.Comments, a.Date, a.Student, a.Professional, id)
	if err := row.Scan(&updated.ID, &updated.Specialty, &updated.Comments,
		&updated.Date, &updated.Student, &updated.Professional,
		&updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Agendamento não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteAppointment removes an appointment and returns the row count.
func (s *Storage) DeleteAppointment(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteAppointment"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
