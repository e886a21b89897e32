package auth

import (
	"time"
)

// SessionClaims represents the claims stored in a session token.
// v4.local tokens are encrypted, so these are not readable without the key.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
