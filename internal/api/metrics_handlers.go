package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerMetricsRoutes() {
	register(s, huma.Operation{
		OperationID: "getMetricsSummary",
		Method:      http.MethodGet,
		Path:        "/api/metrics/summary",
		Summary:     "Reading summary",
		Description: "Returns unread, read-this-month and total item counts. Months are UTC calendar months.",
		Tags:        []string{"Metrics"},
		Security:    sessionSecurity,
	}, s.handleMetricsSummary)
}

// SummaryResponse contains the dashboard counters.
type SummaryResponse struct {
	UnreadCount        int `json:"unreadCount" doc:"Items with status UNREAD"`
	ReadThisMonthCount int `json:"readThisMonthCount" doc:"Items read since the start of the current month"`
	TotalCount         int `json:"totalCount" doc:"All items"`
}

// SummaryOutput wraps the summary response for Huma.
type SummaryOutput struct {
	Body SummaryResponse
}

func (s *Server) handleMetricsSummary(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	summary, err := s.services.Metrics.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{
		Body: SummaryResponse{
			UnreadCount:        summary.UnreadCount,
			ReadThisMonthCount: summary.ReadThisMonthCount,
			TotalCount:         summary.TotalCount,
		},
	}, nil
}
