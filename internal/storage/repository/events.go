package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

// CreateEvent inserts a calendar event and returns its generated id.
func (s *Storage) CreateEvent(ctx context.Context, e models.Event) (string, error) {
	const op = "storage.CreateEvent"

	var id string
	query := `INSERT INTO events (description, comments, date, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		e.Description, e.Comments, e.Date, e.Status).Scan(&id); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetEvent returns one event by id.
func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "storage.GetEvent"

	query := `SELECT id, description, comments, date, status
			  FROM events WHERE id = $1`
	e := &models.Event{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&e.ID, &e.Description, &e.Comments, &e.Date, &e.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Evento não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// ListEvents returns every event.
func (s *Storage) ListEvents(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.ListEvents"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, description, comments, date, status
		 FROM events ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanEvents(rows, op)
}

// SearchEventsByName returns events whose description contains the
// fragment, case-insensitively.
func (s *Storage) SearchEventsByName(ctx context.Context, name string) ([]*models.Event, error) {
	const op = "storage.SearchEventsByName"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, description, comments, date, status
		 FROM events
		 WHERE description ILIKE '%' || $1 || '%'
		 ORDER BY date`, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanEvents(rows, op)
}

// FindEventsDueTomorrow returns active events dated on the next day,
// used by the reminder scheduler.
func (s *Storage) FindEventsDueTomorrow(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.FindEventsDueTomorrow"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, description, comments, date, status
		 FROM events
		 WHERE date::DATE = CURRENT_DATE + INTERVAL '1 day'
		   AND status = 'active'`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	return scanEvents(rows, op)
}

func scanEvents(rows *sql.Rows, op string) ([]*models.Event, error) {
	result := []*models.Event{}
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Description, &e.Comments, &e.Date, &e.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEvent rewrites an event and returns the updated row.
func (s *Storage) UpdateEvent(ctx context.Context, id string, e models.Event) (*models.Event, error) {
	const op = "storage.UpdateEvent"

	query := `UPDATE events
			  SET description = $1, comments = $2, date = $3, status = $4
			  WHERE id = $5
			  RETURNING id, description, comments, date, status`
	updated := &models.Event{}
	row := s.DB.QueryRowContext(ctx, query, e.Description, e.Comments, e.Date, e.Status, id)
	if err := row.Scan(&updated.ID, &updated.Description, &updated.Comments,
		&updated.Date, &updated.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Evento não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteEvent removes an event and returns the affected row count.
func (s *Storage) DeleteEvent(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteEvent"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
