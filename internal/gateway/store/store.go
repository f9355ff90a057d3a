package store

import (
	"context"
	"errors"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable. The credential repository is the "external credential
// store" collaborator the validator depends on; the account and transaction
// repositories stand in for the undocumented settlement backends.
type Store interface {
	Credentials() Credentials
	Accounts() Accounts
	Transactions() Transactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back if fn errors,
	// committed otherwise. Prefer this over Tx for multi-step operations
	// that must be atomic (e.g. debit + ledger write).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Credentials interface {
	// GetCredentialByAPIKey implements the validator's lookup contract:
	// lookup(api_key) -> {secret_hash, account, business_id}.
	GetCredentialByAPIKey(ctx context.Context, apiKey string) (domain.Credential, error)

	// CreateCredential inserts a new credential pair (secret already hashed).
	CreateCredential(ctx context.Context, c domain.Credential) error

	// IsEmpty returns true if no credentials exist (bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}

type Accounts interface {
	// GetAccountByNumber returns an account with all currency balances.
	GetAccountByNumber(ctx context.Context, number string) (domain.Account, error)

	// CreateAccount inserts a new account with its initial balances.
	CreateAccount(ctx context.Context, a domain.Account) error

	// SetBalance overwrites the balance held in one currency.
	SetBalance(ctx context.Context, number string, currency domain.Currency, amount decimal.Decimal) error
}

type Transactions interface {
	// CreateTransaction appends a ledger entry (id is provided by app via ULID).
	CreateTransaction(ctx context.Context, t domain.Transaction) error

	// GetTransactionByID fetches a single ledger entry.
	GetTransactionByID(ctx context.Context, id string) (domain.Transaction, error)

	// ListTransactionsByAccount returns an account's entries, newest first.
	ListTransactionsByAccount(ctx context.Context, account string, limit int) ([]domain.Transaction, error)
}
