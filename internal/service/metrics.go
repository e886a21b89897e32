package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// MetricsService computes dashboard counters.
type MetricsService struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewMetricsService creates a new metrics service.
func NewMetricsService(store store.Store, logger *slog.Logger) *MetricsService {
	return &MetricsService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Summary returns the unread, read-this-month, and total counts. The month
// is the current calendar month in UTC.
func (s *MetricsService) Summary(ctx context.Context) (*domain.Summary, error) {
	monthStart := domain.StartOfMonth(s.now())
	sum, err := s.store.Summary(ctx, monthStart)
	if err != nil {
		return nil, domainerrors.Internal(fmt.Errorf("summary: %w", err))
	}
	return sum, nil
}
