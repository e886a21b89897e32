package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// itemColumns must match the scan order in scanItem.
const itemColumns = `i.id, i.title, i.url, i.status, i.notes, i.saved_at, i.read_at, i.created_at, i.updated_at`

// scanItem scans an item row. Tags are left empty; callers attach them.
func scanItem(scanner interface{ Scan(dest ...any) error }) (*domain.Item, error) {
	var (
		item      domain.Item
		status    string
		notes     sql.NullString
		savedAt   string
		readAt    sql.NullString
		createdAt string
		updatedAt string
	)
	err := scanner.Scan(
		&item.ID,
		&item.Title,
		&item.URL,
		&status,
		&notes,
		&savedAt,
		&readAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Status = domain.Status(status)
	item.Notes = stringPtr(notes)
	item.Tags = []domain.TagRef{}

	if item.SavedAt, err = parseTime(savedAt); err != nil {
		return nil, fmt.Errorf("parse saved_at: %w", err)
	}
	if item.ReadAt, err = parseNullableTime(readAt); err != nil {
		return nil, fmt.Errorf("parse read_at: %w", err)
	}
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &item, nil
}

// CreateItem inserts an item and its tag associations atomically, then fills
// item.Tags. Returns store.ErrInvalidReference if a tag ID is unknown.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item, tagIDs []string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, title, url, status, notes, saved_at, read_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.Title,
			item.URL,
			string(item.Status),
			nullableString(item.Notes),
			formatTime(item.SavedAt),
			nullTimeString(item.ReadAt),
			formatTime(item.CreatedAt),
			formatTime(item.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		if err := insertItemTags(ctx, tx, item.ID, tagIDs); err != nil {
			return err
		}

		tags, err := loadTags(ctx, tx, []string{item.ID})
		if err != nil {
			return err
		}
		item.Tags = tagsFor(tags, item.ID)
		return nil
	})
}

// GetItem retrieves an item with its tags.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return getItem(ctx, s.db, id)
}

// UpdateItem replaces an item's editable fields and tag set in one transaction.
// Status moves through Item.TransitionStatus, so an unchanged READ status keeps
// its original read time.
func (s *Store) UpdateItem(ctx context.Context, id string, upd store.ItemUpdate, now time.Time) (*domain.Item, error) {
	var updated *domain.Item
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		item, err := getItem(ctx, tx, id)
		if err != nil {
			return err
		}

		item.Title = upd.Title
		item.URL = upd.URL
		item.Notes = upd.Notes
		item.TransitionStatus(upd.Status, now)
		item.UpdatedAt = now

		if err := writeItem(ctx, tx, item); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM item_tags WHERE item_id = ?`, id); err != nil {
			return fmt.Errorf("clear item tags: %w", err)
		}
		if err := insertItemTags(ctx, tx, id, upd.TagIDs); err != nil {
			return err
		}

		updated, err = getItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetItemStatus applies the dedicated status action: READ always restamps the
// read time, UNREAD clears it.
func (s *Store) SetItemStatus(ctx context.Context, id string, status domain.Status, now time.Time) (*domain.Item, error) {
	var updated *domain.Item
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		item, err := getItem(ctx, tx, id)
		if err != nil {
			return err
		}

		item.SetStatus(status, now)
		item.UpdatedAt = now
		if err := writeItem(ctx, tx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteItem removes an item and its tag associations.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
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

func getItem(ctx context.Context, q querier, id string) (*domain.Item, error) {
	row := q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items i WHERE i.id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tags, err := loadTags(ctx, q, []string{id})
	if err != nil {
		return nil, err
	}
	item.Tags = tagsFor(tags, id)
	return item, nil
}

func writeItem(ctx context.Context, q querier, item *domain.Item) error {
	_, err := q.ExecContext(ctx, `
		UPDATE items
		SET title = ?, url = ?, status = ?, notes = ?, read_at = ?, updated_at = ?
		WHERE id = ?`,
		item.Title,
		item.URL,
		string(item.Status),
		nullableString(item.Notes),
		nullTimeString(item.ReadAt),
		formatTime(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// insertItemTags links tags to an item. Duplicate IDs are ignored; unknown
// IDs fail the foreign key and surface as store.ErrInvalidReference.
func insertItemTags(ctx context.Context, q querier, itemID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		_, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO item_tags (item_id, tag_id) VALUES (?, ?)`,
			itemID, tagID)
		if isForeignKeyViolation(err) {
			return store.ErrInvalidReference.WithCause(fmt.Errorf("tag %s: %w", tagID, err))
		}
		if err != nil {
			return fmt.Errorf("insert item tag: %w", err)
		}
	}
	return nil
}

// loadTags fetches the tags of the given items in one query, keyed by item ID.
// Tags within an item are ordered by name.
func loadTags(ctx context.Context, q querier, itemIDs []string) (map[string][]domain.TagRef, error) {
	result := make(map[string][]domain.TagRef, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx, `
		SELECT it.item_id, t.id, t.name
		FROM item_tags it
		JOIN tags t ON t.id = it.tag_id
		WHERE it.item_id IN (`+placeholders(len(itemIDs))+`)
		ORDER BY t.name ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("load item tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID string
			ref    domain.TagRef
		)
		if err := rows.Scan(&itemID, &ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		result[itemID] = append(result[itemID], ref)
	}
	return result, rows.Err()
}

// tagsFor returns the tags loaded for itemID, never nil.
func tagsFor(tags map[string][]domain.TagRef, itemID string) []domain.TagRef {
	if refs, ok := tags[itemID]; ok {
		return refs
	}
	return []domain.TagRef{}
}
