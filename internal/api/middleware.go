package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/readingtracker/readingtracker-server/internal/auth"
	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/http/response"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "readingtracker_token"

// mutationHeader must be sent with every state-changing request.
const (
	mutationHeader      = "X-Requested-With"
	mutationHeaderValue = "XMLHttpRequest"
)

// publicPaths skip the session check. Prefix entries end with "/".
var publicPaths = []string{
	"/api/auth/login",
	"/api/auth/logout",
	"/health",
	"/api/health",
	"/docs",
	"/openapi",
	"/schemas/",
}

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// sessionKey is the context key for the verified session claims.
const sessionKey ctxKey = "session"

// withSession stores verified session claims in the context.
func withSession(ctx context.Context, claims *auth.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionKey, claims)
}

// sessionFrom returns the session attached by requireSession.
// Returns AUTH_REQUIRED if there is none.
func sessionFrom(ctx context.Context) (*auth.SessionClaims, error) {
	claims, ok := ctx.Value(sessionKey).(*auth.SessionClaims)
	if !ok || claims == nil {
		return nil, domainerrors.ErrAuthRequired
	}
	return claims, nil
}

// requireMutationHeader rejects POST, PUT, PATCH and DELETE requests that do not
// carry X-Requested-With: XMLHttpRequest. Browsers cannot add the header
// cross-site without a CORS preflight.
func (s *Server) requireMutationHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if r.Header.Get(mutationHeader) != mutationHeaderValue {
				s.logger.Debug("missing mutation header",
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.DomainError(w, domainerrors.ErrMissingHeader, s.logger)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession verifies the session cookie on every non-public route and
// attaches the claims to the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
			response.DomainError(w, domainerrors.ErrAuthRequired, s.logger)
			return
		}

		claims, err := s.services.Auth.VerifySession(cookie.Value)
		if err != nil {
			s.logger.Debug("session rejected",
				"path", r.URL.Path,
				"error", err,
			)
			response.HandleError(w, err, s.logger)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), claims)))
	})
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
			continue
		}
		// "/openapi" also covers "/openapi.json" and "/openapi.yaml".
		if path == p || (p == "/openapi" && strings.HasPrefix(path, p+".")) {
			return true
		}
	}
	return false
}

// requestLogger logs one line per request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
