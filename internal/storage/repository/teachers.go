package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

// CreateTeacher inserts a teacher record and returns its generated id.
func (s *Storage) CreateTeacher(ctx context.Context, t models.Teacher) (string, error) {
	const op = "storage.CreateTeacher"

	var id string
	query := `INSERT INTO teachers (name, school_disciplines, contact, phone_number, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		t.Name, t.SchoolDisciplines, t.Contact, t.PhoneNumber, t.Status).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetTeacher returns one teacher by id.
func (s *Storage) GetTeacher(ctx context.Context, id string) (*models.Teacher, error) {
	const op = "storage.GetTeacher"

	query := `SELECT id, name, school_disciplines, contact, phone_number, status
			  FROM teachers WHERE id = $1`
	t := &models.Teacher{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&t.ID, &t.Name, &t.SchoolDisciplines, &t.Contact,
		&t.PhoneNumber, &t.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Professor não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// ListTeachers returns every teacher record.
func (s *Storage) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	const op = "storage.ListTeachers"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, school_disciplines, contact, phone_number, status
		 FROM teachers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.Teacher{}
	for rows.Next() {
		var t models.Teacher
		if err = rows.Scan(&t.ID, &t.Name, &t.SchoolDisciplines, &t.Contact,
			&t.PhoneNumber, &t.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTeacher rewrites a teacher record and returns the updated row.
func (s *Storage) UpdateTeacher(ctx context.Context, id string, t models.Teacher) (*models.Teacher, error) {
	const op = "storage.UpdateTeacher"

	query := `UPDATE teachers
			  SET name = $1, school_disciplines = $2, contact = $3,
			      phone_number = $4, status = $5
			  WHERE id = $6
			  RETURNING id, name, school_disciplines, contact, phone_number, status`
	updated := &models.Teacher{}
	row := s.DB.QueryRowContext(ctx, query,
		t.Name, t.SchoolDisciplines, t.Contact, t.PhoneNumber, t.Status, id)
	if err := row.Scan(&updated.ID, &updated.Name, &updated.SchoolDisciplines,
		&updated.Contact, &updated.PhoneNumber, &updated.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Professor não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteTeacher removes a teacher and returns the affected row count.
func (s *Storage) DeleteTeacher(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteTeacher"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
