// Package di provides dependency injection configuration for the reading tracker server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/readingtracker/readingtracker-server/internal/config"
	"github.com/readingtracker/readingtracker-server/internal/di/providers"
	"github.com/readingtracker/readingtracker-server/internal/logger"
	"github.com/readingtracker/readingtracker-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
// Providers are lazy; nothing is opened until first invoked.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideSessionKey)
	do.Provide(injector, providers.ProvideSessionIssuer)
	do.Provide(injector, providers.ProvideLoginLimiter)
	do.Provide(injector, providers.ProvideAPILimiter)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideItemService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideMetricsService)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[providers.SessionKey](injector); err != nil {
		return err
	}

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ItemService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.MetricsService](injector)

	// Server
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
