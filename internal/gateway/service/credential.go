package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/store"
	"github.com/sellapay/gateway/pkg/cryptox"
	"github.com/sellapay/gateway/pkg/slogx"
)

var (
	// ErrMissingCredentials means one or both credential headers were absent
	// or empty. Reported before any store lookup.
	ErrMissingCredentials = errors.New("missing_credentials")

	// ErrInvalidCredentials covers both unknown api keys and wrong secrets.
	// The two cases are indistinguishable to callers on purpose.
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// CredentialService validates API key/secret pairs against the credential
// store. It is the only component that reads secret hashes.
type CredentialService struct {
	Store store.Store

	// LookupTimeout bounds the credential fetch so a slow store cannot hold
	// an authorize request open indefinitely.
	LookupTimeout time.Duration
}

// Validate checks an api key/secret pair and returns the credential it
// authorizes. Unknown keys and wrong secrets both return
// ErrInvalidCredentials; only logs distinguish them.
func (s *CredentialService) Validate(ctx context.Context, apiKey, apiSecret string) (domain.Credential, error) {
	log := slogx.FromContext(ctx)

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" || apiSecret == "" {
		return domain.Credential{}, ErrMissingCredentials
	}

	if s.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.LookupTimeout)
		defer cancel()
	}

	cred, err := s.Store.Credentials().GetCredentialByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("credential validation failed: unknown api key")
			return domain.Credential{}, ErrInvalidCredentials
		}
		return domain.Credential{}, err
	}

	if err := cryptox.VerifySecret(apiSecret, cred.SecretHash); err != nil {
		if errors.Is(err, cryptox.ErrSecretMismatch) {
			log.Info("credential validation failed: secret mismatch",
				slog.String("business_id", cred.BusinessID))
			return domain.Credential{}, ErrInvalidCredentials
		}
		return domain.Credential{}, err
	}

	return cred, nil
}
