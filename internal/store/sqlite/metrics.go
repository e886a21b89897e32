package sqlite

import (
	"context"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/domain"
)

// Summary counts unread, total, and items read since monthStart in one pass.
func (s *Store) Summary(ctx context.Context, monthStart time.Time) (*domain.Summary, error) {
	var sum domain.Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'UNREAD' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'READ' AND read_at >= ? THEN 1 ELSE 0 END), 0)
		FROM items`,
		formatTime(monthStart),
	).Scan(&sum.TotalCount, &sum.UnreadCount, &sum.ReadThisMonthCount)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// CountItems returns the number of stored items.
func (s *Store) CountItems(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}
