package sqlite

import (
	"context"

	"github.com/sellapay/gateway/internal/gateway/domain"
)

type credentialsRepo struct {
	q queryer
}

func (r *credentialsRepo) GetCredentialByAPIKey(ctx context.Context, apiKey string) (domain.Credential, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT api_key, secret_hash, account, business_id, created_at, updated_at
		FROM credentials
		WHERE api_key = ?`, apiKey)

	var c domain.Credential
	if err := row.Scan(&c.APIKey, &c.SecretHash, &c.Account, &c.BusinessID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return c, nil
}

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO credentials (api_key, secret_hash, account, business_id)
		VALUES (?, ?, ?, ?)`,
		c.APIKey, c.SecretHash, c.Account, c.BusinessID)
	return err
}

func (r *credentialsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
