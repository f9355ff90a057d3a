package jwtx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the minimum signing secret length in bytes. HMAC-SHA256
// secrets shorter than the hash output weaken the construction.
const MinSecretSize = 32

// HS256Signer mints HMAC-SHA256 signed tokens. The signing secret is
// injected configuration; it is never read from ambient global state so the
// signer stays testable and rotation-safe.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 wraps a signing secret. The secret must be at least
// MinSecretSize bytes.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretSize {
		return nil, fmt.Errorf("jwtx: signing secret must be at least %d bytes, got %d", MinSecretSize, len(secret))
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// HS256Verifier validates HS256 tokens signed with the same secret.
// Verification is a pure computation: signature recompute (constant-time
// compare inside golang-jwt) plus timestamp checks. No store lookup.
type HS256Verifier struct {
	secret []byte
}

// NewVerifierHS256 wraps a signing secret for verification.
func NewVerifierHS256(secret []byte) *HS256Verifier {
	return &HS256Verifier{secret: secret}
}

// Verify parses and validates a compact JWT. Fails closed: anything that is
// not exactly three dot-separated segments signed with our secret and still
// within its validity window is rejected.
func (v *HS256Verifier) Verify(token string) (Claims, error) {
	if strings.Count(token, ".") != 2 {
		return Claims{}, ErrMalformed
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	default:
		return fmt.Errorf("%w: %w", ErrInvalidClaim, err)
	}
}
