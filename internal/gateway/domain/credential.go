package domain

import "time"

// Credential is an API key/secret pair issued out-of-band to a business
// account. The plaintext secret is never stored; only its Argon2id hash.
// Credentials are immutable once issued; rotation happens by replacing the
// row out-of-band.
type Credential struct {
	APIKey     string
	SecretHash string // argon2 encoded
	Account    string // account number the credential authorizes
	BusinessID string // tenant the account belongs to
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
