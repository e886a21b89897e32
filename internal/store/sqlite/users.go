package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

const userColumns = `id, email, password_hash, created_at`

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	if err := scanner.Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		return nil, err
	}

	var err error
	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user.
// Returns store.ErrAlreadyExists if the email is taken.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, formatTime(u.CreatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return u, err
}

// GetUserByEmail retrieves a user by email, ignoring ASCII case.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return u, err
}

// UpdatePasswordHash replaces a user's stored password hash.
func (s *Store) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
