package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

// CreateProfessional inserts a professional record and returns its id.
func (s *Storage) CreateProfessional(ctx context.Context, p models.Professional) (string, error) {
	const op = "storage.CreateProfessional"

	var id string
	query := `INSERT INTO professionals (name, age, specialty, contact, phone_number, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Age, p.Specialty, p.Contact, p.PhoneNumber, p.Status).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetProfessional returns one professional by id.
func (s *Storage) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	const op = "storage.GetProfessional"

	query := `SELECT id, name, age, specialty, contact, phone_number, status
			  FROM professionals WHERE id = $1`
	p := &models.Professional{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Specialty, &p.Contact,
		&p.PhoneNumber, &p.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Profissional não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListProfessionals returns every professional record.
func (s *Storage) ListProfessionals(ctx context.Context) ([]*models.Professional, error) {
	const op = "storage.ListProfessionals"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, age, specialty, contact, phone_number, status
		 FROM professionals ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.Professional{}
	for rows.Next() {
		var p models.Professional
		if err = rows.Scan(&p.ID, &p.Name, &p.Age, &p.Specialty, &p.Contact,
			&p.PhoneNumber, &p.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateProfessional rewrites a professional record and returns the row.
func (s *Storage) UpdateProfessional(ctx context.Context, id string, p models.Professional) (*models.Professional, error) {
	const op = "storage.UpdateProfessional"

	query := `UPDATE professionals
			  SET name = $1, age = $2, specialty = $3, contact = $4,
			      phone_number = $5, status = $6
			  WHERE id = $7
			  RETURNING id, name, age, specialty, contact, phone_number, status`
	updated := &models.Professional{}
	row := s.DB.QueryRowContext(ctx, query,
		p.Name, p.Age, p.Specialty, p.Contact, p.PhoneNumber, p.Status, id)
	if err := row.Scan(&updated.ID, &updated.Name, &updated.Age, &updated.Specialty,
		&updated.Contact, &updated.PhoneNumber, &updated.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Profissional não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteProfessional removes a professional and returns the row count.
func (s *Storage) DeleteProfessional(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteProfessional"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM professionals WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
