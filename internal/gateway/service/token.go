package service

import (
	"time"

	"github.com/sellapay/gateway/pkg/jwtx"
)

// TokenService mints access tokens for authenticated credentials. Issuance
// is the only stateful-looking step in the auth flow, and even it touches no
// storage: the token carries everything verification needs.
type TokenService struct {
	Signer *jwtx.HS256Signer
}

// AccessToken is the issued token plus the metadata the authorize response
// reports alongside it.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresIn int64 // seconds until expiry, always jwtx.AccessTokenTTL
}

// Issue signs a fresh access token for the given account. The lifetime is
// fixed; callers cannot request longer or shorter tokens.
func (s *TokenService) Issue(account, businessID string, now time.Time) (AccessToken, error) {
	claims := jwtx.NewAccessClaims(account, businessID, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return AccessToken{}, err
	}

	return AccessToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(jwtx.AccessTokenTTL / time.Second),
	}, nil
}
