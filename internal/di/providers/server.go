package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/readingtracker/readingtracker-server/internal/api"
	"github.com/readingtracker/readingtracker-server/internal/config"
	"github.com/readingtracker/readingtracker-server/internal/logger"
	"github.com/readingtracker/readingtracker-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideAPIServer builds the HTTP handler with all routes.
func ProvideAPIServer(i do.Injector) (*api.Server, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	limiter := do.MustInvoke[*APILimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Auth:    do.MustInvoke[*service.AuthService](i),
		Item:    do.MustInvoke[*service.ItemService](i),
		Tag:     do.MustInvoke[*service.TagService](i),
		Metrics: do.MustInvoke[*service.MetricsService](i),
	}

	return api.NewServer(storeHandle.Store, services, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		CookieSecure:   cfg.Auth.CookieSecure,
		APILimiter:     limiter.Limiter,
		TrustProxy:     cfg.Server.TrustProxy,
	}, log.Logger), nil
}

// ProvideHTTPServer provides the HTTP server and starts listening in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*api.Server](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running",
		"addr", srv.Addr,
		"cors_origins", cfg.Server.AllowedOrigins,
		"cookie_secure", cfg.Auth.CookieSecure,
		"trust_proxy", cfg.Server.TrustProxy,
	)

	return &HTTPServerHandle{Server: srv}, nil
}
