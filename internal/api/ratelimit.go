package api

import (
	"net"
	"net/http"

	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/http/response"
	"github.com/readingtracker/readingtracker-server/internal/ratelimit"
)

// RateLimitMiddleware throttles requests per client IP.
// Returns 429 RATE_LIMITED when the client's bucket is empty.
func (s *Server) RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)

			if !limiter.Allow(key) {
				s.logger.Warn("Rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				response.Error(w, http.StatusTooManyRequests, domainerrors.CodeRateLimited,
					"Too many requests, please try again later", s.logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the address requests are throttled by. RealIP has already
// rewritten RemoteAddr when forwarding headers are trusted, so the headers
// themselves are never read here.
func clientIP(r *http.Request) string {
	return hostOnly(r.RemoteAddr)
}

// hostOnly strips the port from addr. RealIP leaves a bare IP.
func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
