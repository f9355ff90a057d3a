package jwtx

import "errors"

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Verification errors. These distinctions are internal only: callers writing
// HTTP responses must collapse them into a single uniform rejection so the
// external error message never reveals whether the signature or the expiry
// check failed.
var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)
