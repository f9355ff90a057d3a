package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType classifies a ledger entry by the operation that created it.
type TxType string

const (
	TxStkPush          TxType = "stk_push"
	TxMobileTransfer   TxType = "mobile_transfer"
	TxSellapayTransfer TxType = "sellapay_transfer"
	TxBankTransfer     TxType = "bank_transfer"
)

// TxStatus is the settlement state of a transaction.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxCompleted TxStatus = "completed"
	TxFailed    TxStatus = "failed"
)

// Transaction is a single ledger entry. Optional fields are empty when they
// don't apply to the transaction type (e.g. Phone is set only for mobile
// operations, BankName only for bank transfers).
type Transaction struct {
	ID      string // ULID
	Account string // originating account number
	Type    TxType
	Status  TxStatus

	Amount   decimal.Decimal
	Currency Currency

	Phone            string // normalized 254xxxxxxxxx
	RecipientAccount string // intra-Sellapay transfers
	BankName         string
	BankAccount      string
	Reference        string
	Description      string
	EstimatedArrival string // bank transfers only

	CreatedAt time.Time
	UpdatedAt time.Time
}
