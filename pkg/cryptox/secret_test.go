package cryptox_test

import (
	"strings"
	"testing"

	"github.com/sellapay/gateway/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := cryptox.HashSecret("sk_live_supersecret")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifySecret("sk_live_supersecret", hash))
	require.ErrorIs(t, cryptox.VerifySecret("sk_live_wrong", hash), cryptox.ErrSecretMismatch)
}

func TestHashSecretSaltsDiffer(t *testing.T) {
	h1, err := cryptox.HashSecret("same-secret")
	require.NoError(t, err)
	h2, err := cryptox.HashSecret("same-secret")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "fresh salt per hash")
	require.NoError(t, cryptox.VerifySecret("same-secret", h1))
	require.NoError(t, cryptox.VerifySecret("same-secret", h2))
}

func TestVerifySecretRejectsBadFormat(t *testing.T) {
	for _, h := range []string{"", "plain", "$bcrypt$whatever", "$argon2id$v=18$m=1,t=1,p=1$a$b"} {
		require.Error(t, cryptox.VerifySecret("x", h), "hash %q", h)
	}
}

func TestGenerateToken(t *testing.T) {
	tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.Len(t, tok, 43) // 32 bytes base64url, no padding

	other, err := cryptox.GenerateToken(cryptox.TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)

	_, err = cryptox.GenerateToken(0)
	require.Error(t, err)
}
