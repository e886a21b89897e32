package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/auth"
	"github.com/readingtracker/readingtracker-server/internal/domain"
	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/id"
	"github.com/readingtracker/readingtracker-server/internal/ratelimit"
	"github.com/readingtracker/readingtracker-server/internal/store"
	"github.com/readingtracker/readingtracker-server/internal/validation"
)

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResult is a successful login: the user and a fresh session token.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles login, session verification, and account provisioning.
type AuthService struct {
	store     store.Store
	issuer    *auth.SessionIssuer
	limiter   *ratelimit.SlidingWindow
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	issuer *auth.SessionIssuer,
	limiter *ratelimit.SlidingWindow,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:     store,
		issuer:    issuer,
		limiter:   limiter,
		validator: validator,
		logger:    logger,
	}
}

// Login checks credentials and issues a session token.
//
// Attempts are counted per client key before anything else happens, so a
// throttled client never reaches the credential store. Wrong email and wrong
// password are indistinguishable to the caller. Legacy bcrypt hashes are
// upgraded to argon2id after a successful check.
func (s *AuthService) Login(ctx context.Context, clientKey string, req LoginRequest) (*LoginResult, error) {
	if ok, retryAfter := s.limiter.Allow(clientKey); !ok {
		s.logger.Warn("login rate limited",
			"client", clientKey,
			"retry_after", retryAfter.Round(time.Second).String(),
		)
		return nil, domainerrors.ErrRateLimited
	}

	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Info("login failed", "reason", "unknown email", "client", clientKey)
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, domainerrors.Internal(fmt.Errorf("get user: %w", err))
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, domainerrors.Internal(fmt.Errorf("verify password: %w", err))
	}
	if !ok {
		s.logger.Info("login failed", "reason", "wrong password", "user_id", user.ID, "client", clientKey)
		return nil, domainerrors.ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, req.Password)
	}

	token, expiresAt, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, domainerrors.Internal(fmt.Errorf("issue session: %w", err))
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// rehash upgrades a stored hash. Failure is logged and does not fail the login.
func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = s.store.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		s.logger.Warn("password rehash failed", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
	s.logger.Info("password hash upgraded", "user_id", user.ID)
}

// VerifySession decodes a session token. Any failure is INVALID_TOKEN.
func (s *AuthService) VerifySession(token string) (*auth.SessionClaims, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WithCause(err)
	}
	return claims, nil
}

// SessionTTL returns how long an issued session stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.issuer.TTL()
}

// EnsureUser creates the account if no user holds the email yet.
// It reports whether a user was created. Used by provisioning, never by the API.
func (s *AuthService) EnsureUser(ctx context.Context, email, password string) (*domain.User, bool, error) {
	email = strings.TrimSpace(email)
	if err := s.validator.Validate(LoginRequest{Email: email, Password: password}); err != nil {
		return nil, false, err
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("get user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "email", user.Email)
	return user, true, nil
}
