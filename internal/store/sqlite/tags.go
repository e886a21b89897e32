package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// tagSelect selects a tag with its item count. Must match the scan order in scanTag.
const tagSelect = `
	SELECT t.id, t.name, t.created_at, COUNT(it.item_id)
	FROM tags t
	LEFT JOIN item_tags it ON it.tag_id = t.id`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var (
		t         domain.Tag
		createdAt string
	)
	if err := scanner.Scan(&t.ID, &t.Name, &createdAt, &t.ItemCount); err != nil {
		return nil, err
	}

	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &t, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists on duplicate name.
func (s *Store) CreateTag(ctx context.Context, t *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at)
		VALUES (?, ?, ?)`,
		t.ID, t.Name, formatTime(t.CreatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetTag retrieves a tag and its item count.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, tagSelect+`
		WHERE t.id = ?
		GROUP BY t.id`, id)
	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return t, err
}

// GetTagByName retrieves a tag by its normalized name.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx, tagSelect+`
		WHERE t.name = ?
		GROUP BY t.id`, name)
	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return t, err
}

// ListTags returns every tag with its item count, ordered by name.
func (s *Store) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, tagSelect+`
		GROUP BY t.id
		ORDER BY t.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// RenameTag changes a tag's name and returns the updated tag.
// Renaming a tag to its current name succeeds. Returns store.ErrAlreadyExists
// if another tag holds the name, store.ErrNotFound if id is unknown.
func (s *Store) RenameTag(ctx context.Context, id, name string) (*domain.Tag, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE tags SET name = ? WHERE id = ?`, name, id)
	if isUniqueViolation(err) {
		return nil, store.ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetTag(ctx, id)
}

// DeleteTag removes a tag. Its item associations go with it; the items stay.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
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
