// Package api provides the HTTP API server and handlers for the reading tracker.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/readingtracker/readingtracker-server/internal/ratelimit"
	"github.com/readingtracker/readingtracker-server/internal/store"
)

// Options holds transport settings for the server.
type Options struct {
	AllowedOrigins []string                    // CORS origins allowed to send credentials
	CookieSecure   bool                        // mark the session cookie Secure
	APILimiter     *ratelimit.KeyedRateLimiter // per-IP throttle, nil disables it
	// TrustProxy takes the client IP from X-Forwarded-For/X-Real-IP. Only
	// enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	opts     Options
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		store:    st,
		services: services,
		opts:     opts,
		router:   chi.NewRouter(),
		logger:   logger,
	}

	s.setupMiddleware()
	s.setupAPI()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, used to export the OpenAPI document.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack. The mutation header and
// session checks run before huma parses any input.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	if s.opts.TrustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.requestLogger)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", mutationHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if s.opts.APILimiter != nil {
		s.router.Use(s.RateLimitMiddleware(s.opts.APILimiter))
	}
	s.router.Use(s.requireMutationHeader)
	s.router.Use(s.requireSession)
}

// setupAPI mounts huma on the router and registers every operation.
func (s *Server) setupAPI() {
	cfg := huma.DefaultConfig("Reading Tracker API", "1.0.0")
	cfg.Info.Description = "Single-user reading list: items, tags and reading metrics."
	// Drop the $schema link transformer so bodies stay exactly as documented.
	cfg.CreateHooks = nil
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookie": {
			Type: "apiKey",
			In:   "cookie",
			Name: SessionCookieName,
		},
	}

	s.api = humachi.New(s.router, cfg)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerItemRoutes()
	s.registerTagRoutes()
	s.registerMetricsRoutes()
}

// sessionSecurity marks an operation as requiring the session cookie.
var sessionSecurity = []map[string][]string{{"cookie": {}}}

// register wraps huma.Register so every handler error leaves as an *APIError
// carrying the status of its domain code.
func register[I, O any](s *Server, op huma.Operation, handler func(context.Context, *I) (*O, error)) {
	huma.Register(s.api, op, func(ctx context.Context, input *I) (*O, error) {
		out, err := handler(ctx, input)
		if err != nil {
			return nil, s.toAPIError(ctx, err)
		}
		return out, nil
	})
}

// SuccessResponse is returned by operations that have nothing else to report.
type SuccessResponse struct {
	Success bool `json:"success" doc:"Always true"`
}

// SuccessOutput wraps the success response for Huma.
type SuccessOutput struct {
	Body SuccessResponse
}

func successOutput() *SuccessOutput {
	return &SuccessOutput{Body: SuccessResponse{Success: true}}
}
