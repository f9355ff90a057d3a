package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sellapay/gateway/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewAccessClaims(t *testing.T) {
	now := time.Now().UTC()
	c := jwtx.NewAccessClaims("ACC-42", "BIZ-9", now)

	require.Equal(t, "ACC-42", c.Account)
	require.Equal(t, "BIZ-9", c.BusinessID)
	require.Equal(t, now.Unix(), c.IssuedAt.Unix())
	require.Equal(t, now.Add(jwtx.AccessTokenTTL).Unix(), c.ExpiresAt.Unix())
	require.Equal(t, jwtx.AccessTokenTTL, c.TTL())
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		c := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, c.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		c := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("no exp", func(t *testing.T) {
		c := &jwtx.Claims{}
		require.NoError(t, c.ValidateExpiry())
	})
}
