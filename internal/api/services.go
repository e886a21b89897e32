package api

import (
	"github.com/readingtracker/readingtracker-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Auth    *service.AuthService
	Item    *service.ItemService
	Tag     *service.TagService
	Metrics *service.MetricsService
}
