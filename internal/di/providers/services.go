package providers

import (
	"github.com/samber/do/v2"

	"github.com/readingtracker/readingtracker-server/internal/auth"
	"github.com/readingtracker/readingtracker-server/internal/logger"
	"github.com/readingtracker/readingtracker-server/internal/ratelimit"
	"github.com/readingtracker/readingtracker-server/internal/service"
	"github.com/readingtracker/readingtracker-server/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	issuer := do.MustInvoke[*auth.SessionIssuer](i)
	limiter := do.MustInvoke[*ratelimit.SlidingWindow](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, issuer, limiter, v, log.Logger), nil
}

// ProvideItemService provides the reading list item service.
func ProvideItemService(i do.Injector) (*service.ItemService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewItemService(storeHandle.Store, v, log.Logger), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, v, log.Logger), nil
}

// ProvideMetricsService provides the dashboard metrics service.
func ProvideMetricsService(i do.Injector) (*service.MetricsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMetricsService(storeHandle.Store, log.Logger), nil
}
