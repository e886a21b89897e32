package providers

import (
	"github.com/samber/do/v2"

	"github.com/readingtracker/readingtracker-server/internal/auth"
	"github.com/readingtracker/readingtracker-server/internal/config"
	"github.com/readingtracker/readingtracker-server/internal/logger"
	"github.com/readingtracker/readingtracker-server/internal/ratelimit"
)

// SessionKey wraps the symmetric session key bytes.
type SessionKey []byte

// ProvideSessionKey uses SESSION_KEY when set, otherwise loads or generates
// the key file in the data directory.
func ProvideSessionKey(i do.Injector) (SessionKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.SessionKeyHex != "" {
		key, err := auth.ParseKeyHex(cfg.Auth.SessionKeyHex)
		if err != nil {
			return nil, err
		}
		log.Info("Session key loaded from configuration")
		return SessionKey(key), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Storage.DataPath)
	if err != nil {
		return nil, err
	}

	log.Info("Session key loaded",
		"data_path", cfg.Storage.DataPath,
		"session_duration", cfg.Auth.SessionDuration,
	)

	return SessionKey(key), nil
}

// ProvideSessionIssuer provides the PASETO session issuer.
func ProvideSessionIssuer(i do.Injector) (*auth.SessionIssuer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[SessionKey](i)

	return auth.NewSessionIssuer([]byte(key), cfg.Auth.SessionDuration)
}

// ProvideLoginLimiter provides the per-client login attempt window.
func ProvideLoginLimiter(i do.Injector) (*ratelimit.SlidingWindow, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return ratelimit.NewSlidingWindow(cfg.Auth.LoginAttempts, cfg.Auth.LoginWindow), nil
}

// APILimiterHandle wraps the per-IP API throttle. Limiter is nil when disabled.
type APILimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *APILimiterHandle) Shutdown() error {
	if h.Limiter != nil {
		h.Limiter.Stop()
	}
	return nil
}

// ProvideAPILimiter provides the per-IP request throttle.
func ProvideAPILimiter(i do.Injector) (*APILimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Server.RequestsPerMinute == 0 {
		log.Info("API rate limiting disabled by configuration")
		return &APILimiterHandle{}, nil
	}

	return &APILimiterHandle{Limiter: ratelimit.PerMinute(cfg.Server.RequestsPerMinute)}, nil
}
