package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	for _, path := range []string{"/health", "/api/health"} {
		operationID := "healthCheck"
		if path != "/health" {
			operationID = "apiHealthCheck"
		}
		register(s, huma.Operation{
			OperationID: operationID,
			Method:      http.MethodGet,
			Path:        path,
			Summary:     "Health check",
			Description: "Returns server health status with component checks",
			Tags:        []string{"Health"},
		}, s.handleHealthCheck)
	}
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: ok or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: ok or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Status int
	Body   HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	db := s.checkDatabase(ctx)

	out := &HealthOutput{
		Status: http.StatusOK,
		Body: HealthResponse{
			Status:     "ok",
			Components: map[string]ComponentHealth{"database": db},
		},
	}
	if db.Status != "ok" {
		out.Status = http.StatusServiceUnavailable
		out.Body.Status = "unhealthy"
	}
	return out, nil
}

// checkDatabase verifies SQLite answers a trivial query.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check: database unreachable", "error", err)
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: time.Since(start).String(),
			Message: "database unreachable",
		}
	}
	return ComponentHealth{
		Status:  "ok",
		Latency: time.Since(start).String(),
	}
}
