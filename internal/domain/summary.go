package domain

import "time"

// Summary holds the reading list counters shown on the dashboard.
type Summary struct {
	UnreadCount        int
	ReadThisMonthCount int
	TotalCount         int
}

// StartOfMonth returns the first instant of the calendar month containing t, in UTC.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
