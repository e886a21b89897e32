package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/readingtracker/readingtracker-server/internal/id"
)

const (
	tokenIssuer   = "readingtracker-server"
	tokenAudience = "readingtracker-web"
)

// ErrInvalidSession is returned by Verify for malformed, tampered, or expired tokens.
var ErrInvalidSession = errors.New("invalid or expired session token")

// SessionIssuer mints and verifies stateless PASETO v4.local session tokens.
// There is no server-side session table; logging out only clears the cookie.
type SessionIssuer struct {
	key paseto.V4SymmetricKey
	ttl time.Duration
	now func() time.Time
}

// IssuerOption configures a SessionIssuer.
type IssuerOption func(*SessionIssuer)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) IssuerOption {
	return func(s *SessionIssuer) {
		s.now = now
	}
}

// NewSessionIssuer creates an issuer from a 32-byte symmetric key.
func NewSessionIssuer(key []byte, ttl time.Duration, opts ...IssuerOption) (*SessionIssuer, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("session key must be exactly %d bytes, got %d", keyLength, len(key))
	}
	if ttl <= 0 {
		return nil, errors.New("session duration must be positive")
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	s := &SessionIssuer{key: symmetricKey, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue creates a session token for the user. It returns the token and its expiry.
func (s *SessionIssuer) Issue(userID, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(userID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(expiresAt)

	tokenID, err := id.Generate("sess")
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	//nolint:errcheck // Token.Set only errors on unmarshalable types
	_ = token.Set("user_id", userID)
	//nolint:errcheck // Token.Set only errors on unmarshalable types
	_ = token.Set("email", email)

	return token.V4Encrypt(s.key, nil), expiresAt, nil
}

// Verify decrypts and validates a session token against the issuer's clock.
func (s *SessionIssuer) Verify(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	// Expiry is checked by ValidAt against the injected clock instead of the wall clock.
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	var claims SessionClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %w", ErrInvalidSession, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidSession)
	}

	return &claims, nil
}

// TTL returns the configured session lifetime.
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}
