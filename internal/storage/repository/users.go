package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daii-team/school-scheduler/internal/apperror"
	"github.com/daii-team/school-scheduler/internal/models"
)

// RegisterUser inserts a new account and returns its generated uid.
// Unique-index violations on email or username come back as Conflict
// errors with the message the caller returns to the client.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (name, email, username, password_hash, level, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Username, user.PasswordHash, user.Level,
		user.Status).Scan(&newID); err != nil {
		if uniqueViolation(err, "users_email_key") {
			return "", apperror.Wrap(apperror.Conflict, "Email já cadastrado", err)
		}
		if uniqueViolation(err, "users_username_key") {
			return "", apperror.Wrap(apperror.Conflict, "Username já cadastrado", err)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail returns the account with that email, hash included,
// for login verification.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, username, password_hash, level, status
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.Username, &u.PasswordHash,
		&u.Level, &u.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Usuário não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser returns the account with that uid.
func (s *Storage) GetUser(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, username, password_hash, level, status
			  FROM users
			  WHERE uid = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, uid)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.Username, &u.PasswordHash,
		&u.Level, &u.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Usuário não encontrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ExistsUserByEmail is the fast-path pre-check before registration.
func (s *Storage) ExistsUserByEmail(ctx context.Context, email string) (bool, error) {
	const op = "storage.ExistsUserByEmail"
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ExistsUserByUsername is the fast-path pre-check before registration.
func (s *Storage) ExistsUserByUsername(ctx context.Context, username string) (bool, error) {
	const op = "storage.ExistsUserByUsername"
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListUsers returns every account.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT uid, name, email, username, password_hash, level, status
		 FROM users
		 ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.User{}
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.UID, &u.Name, &u.Email, &u.Username,
			&u.PasswordHash, &u.Level, &u.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SearchUsersByUsername returns accounts whose username contains the
// fragment, case-insensitively.
func (s *Storage) SearchUsersByUsername(ctx context.Context, username string) ([]*models.User, error) {
	const op = "storage.SearchUsersByUsername"

	rows, err := s.DB.QueryContext(ctx,
		`SELECT uid, name, email, username, password_hash, level, status
		 FROM users
		 WHERE username ILIKE '%' || $1 || '%'
		 ORDER BY username`, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	result := []*models.User{}
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.UID, &u.Name, &u.Email, &u.Username,
			&u.PasswordHash, &u.Level, &u.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser rewrites the mutable fields of an account and returns the
// updated record.
func (s *Storage) UpdateUser(ctx context.Context, uid string, user models.User) (*models.User, error) {
	const op = "storage.UpdateUser"

	query := `UPDATE users
			  SET name = $1, email = $2, username = $3, level = $4, status = $5
			  WHERE uid = $6
			  RETURNING uid, name, email, username, password_hash, level, status`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Username, user.Level, user.Status, uid)
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.Username, &u.PasswordHash,
		&u.Level, &u.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Wrap(apperror.NotFound, "Usuário não encontrado", err)
		}
		if uniqueViolation(err, "users_email_key") {
			return nil, apperror.Wrap(apperror.Conflict, "Email já cadastrado", err)
		}
		if uniqueViolation(err, "users_username_key") {
			return nil, apperror.Wrap(apperror.Conflict, "Username já cadastrado", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// DeleteUser removes an account and returns how many rows went away.
func (s *Storage) DeleteUser(ctx context.Context, uid string) (int64, error) {
	const op = "storage.DeleteUser"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
