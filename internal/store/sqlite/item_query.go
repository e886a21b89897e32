package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// likeEscaper escapes LIKE wildcards so search text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// itemQuery is a listing split into a page query and a count query that
// share one WHERE clause.
type itemQuery struct {
	where   string
	args    []any
	orderBy string
}

// buildItemQuery translates a filter into SQL fragments. SQLite LIKE is
// case-insensitive for ASCII.
func buildItemQuery(f store.ItemFilter) itemQuery {
	var (
		conds []string
		args  []any
	)

	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		conds = append(conds, `(i.title LIKE ? ESCAPE '\' OR i.url LIKE ? ESCAPE '\' OR COALESCE(i.notes, '') LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if f.Status != "" {
		conds = append(conds, `i.status = ?`)
		args = append(args, string(f.Status))
	}
	if f.TagID != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM item_tags it WHERE it.item_id = i.id AND it.tag_id = ?)`)
		args = append(args, f.TagID)
	}

	q := itemQuery{args: args}
	if len(conds) > 0 {
		q.where = " WHERE " + strings.Join(conds, " AND ")
	}

	switch f.Sort {
	case store.SortStatusFirst:
		q.orderBy = ` ORDER BY CASE i.status WHEN 'UNREAD' THEN 0 ELSE 1 END, i.saved_at DESC, i.id DESC`
	default:
		q.orderBy = ` ORDER BY i.saved_at DESC, i.id DESC`
	}
	return q
}

func (q itemQuery) selectSQL() string {
	return `SELECT ` + itemColumns + ` FROM items i` + q.where + q.orderBy + ` LIMIT ? OFFSET ?`
}

func (q itemQuery) countSQL() string {
	return `SELECT COUNT(*) FROM items i` + q.where
}

// ListItems returns one page of items matching the filter, with tags, plus
// the total match count. A page past the end is empty, not an error.
func (s *Store) ListItems(ctx context.Context, filter store.ItemFilter) (*store.ItemPage, error) {
	filter.Normalize()
	q := buildItemQuery(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, q.countSQL(), q.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	if filter.Page > store.TotalPages(total, store.PageSize) {
		return store.NewItemPage(nil, filter.Page, total), nil
	}

	pageArgs := append(append([]any{}, q.args...), store.PageSize, filter.Offset())
	rows, err := s.db.QueryContext(ctx, q.selectSQL(), pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var (
		items []*domain.Item
		ids   []string
	)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		ids = append(ids, item.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	tags, err := loadTags(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.Tags = tagsFor(tags, item.ID)
	}

	s.logger.Debug("listed items",
		"page", filter.Page,
		"returned", len(items),
		"total", total,
	)

	return store.NewItemPage(items, filter.Page, total), nil
}
