package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed lifetime for gateway access tokens. Every
// issued token satisfies exp - iat == AccessTokenTTL; the documented
// expires_in response field is derived from this value.
const AccessTokenTTL = time.Hour

// Claims are the access-token claims carried by every gateway token. The
// payload is intentionally minimal: the authenticated account, its tenant,
// and the registered iat/exp timestamps. Nothing else is needed because
// verification is stateless.
type Claims struct {
	jwt.RegisteredClaims

	// Account is the recipient/account identifier the token grants access to.
	Account string `json:"account,omitempty"`

	// BusinessID is the tenant identifier the account belongs to.
	BusinessID string `json:"business_id,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token
// issued at now. Expiry is always now + AccessTokenTTL.
func NewAccessClaims(account, businessID string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
		Account:    account,
		BusinessID: businessID,
	}
}

// ValidateExpiry ensures the token hasn't expired (exp).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	return nil
}

// TTL reports the lifetime the claims were issued with (exp - iat). Zero if
// either timestamp is missing.
func (c *Claims) TTL() time.Duration {
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}
