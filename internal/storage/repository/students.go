package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

// CreateStudent inserts a student record and returns its generated id.
func (s *Storage) CreateStudent(ctx context.Context, st models.Student) (string, error) {
	const op = "storage.CreateStudent"

	var id string
	query := `INSERT INTO students (name, age, guardians, phone_number, special_needs, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		st.Name, st.Age, st.Guardians, st.PhoneNumber, st.SpecialNeeds,
		st.Status).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetStudent returns one student by id.
func (s *Storage) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	const op = "storage.GetStudent"

	query := `SELECT id, name, age, guardians, phone_number, special_needs, status
			  FROM students WHERE id = $1`
	st := &models.Student{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&st.ID, &st.Name, &st.Age, &st.Guardians, &st.PhoneNumber,
		&st.SpecialNeeds, &st.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Aluno não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}

// ListStudents returns every student record.
func (s *Storage) ListStudents(ctx context.Context) ([]*models.Student, error) {
	const op = "storage.ListStudents"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, age, guardians, phone_number, special_needs, status
		 FROM students ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.Student{}
	for rows.Next() {
		var st models.Student
		if err = rows.Scan(&st.ID, &st.Name, &st.Age, &st.Guardians,
			&st.PhoneNumber, &st.SpecialNeeds, &st.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateStudent rewrites a student record and returns the updated row.
func (s *Storage) UpdateStudent(ctx context.Context, id string, st models.Student) (*models.Student, error) {
	const op = "storage.UpdateStudent"

	query := `UPDATE students
			  SET name = $1, age = $2, guardians = $3, phone_number = $4,
			      special_needs = $5, status = $6
			  WHERE id = $7
			  RETURNING id, name, age, guardians, phone_number, special_needs, status`
	updated := &models.Student{}
	row := s.DB.QueryRowContext(ctx, query,
		st.Name, st.Age, st.Guardians, st.PhoneNumber, st.SpecialNeeds, st.Status, id)
	if err := row.Scan(&updated.ID, &updated.Name, &updated.Age, &updated.Guardians,
		&updated.PhoneNumber, &updated.SpecialNeeds, &updated.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Aluno não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteStudent removes a student and returns the affected row count.
func (s *Storage) DeleteStudent(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteStudent"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
