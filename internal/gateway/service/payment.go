package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/store"
	"github.com/sellapay/gateway/pkg/idx"
	"github.com/sellapay/gateway/pkg/slogx"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidReference = errors.New("invalid_reference")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrUnknownRecipient = errors.New("unknown_recipient")
	ErrUnknownAccount   = errors.New("unknown_account")
	ErrUnknownBank      = errors.New("unknown_bank")
	ErrMissingField     = errors.New("missing_field")
)

// BalanceError reports an attempted debit exceeding the available balance.
// Both amounts surface in the error envelope details.
type BalanceError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s", e.Required, e.Available)
}

const maxReferenceLen = 64

// bankTransferArrival is the settlement window quoted for local bank
// transfers.
const bankTransferArrival = "1-3 business days"

// PaymentService implements the documented payment operations against the
// account and transaction stores. Every operation that moves money runs the
// balance check, debit, and ledger write in one transaction.
type PaymentService struct {
	Store store.Store

	// StkPushFee is debited from the account per STK push request. Zero
	// disables the fee.
	StkPushFee decimal.Decimal

	// MaxAmount caps a single transfer. Zero disables the cap.
	MaxAmount decimal.Decimal
}

// BalanceResult carries one account's balances keyed by currency code.
type BalanceResult struct {
	Balances        map[domain.Currency]decimal.Decimal
	PrimaryCurrency domain.Currency
}

// Balance returns the authenticated account's wallet balances.
func (s *PaymentService) Balance(ctx context.Context, account string) (BalanceResult, error) {
	a, err := s.Store.Accounts().GetAccountByNumber(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return BalanceResult{}, ErrUnknownAccount
		}
		return BalanceResult{}, err
	}

	balances := make(map[domain.Currency]decimal.Decimal, len(domain.Currencies))
	for _, c := range domain.Currencies {
		balances[c] = a.Balance(c)
	}
	return BalanceResult{Balances: balances, PrimaryCurrency: a.PrimaryCurrency}, nil
}

// StkPushRequest is a validated collection request: the gateway prompts the
// given phone to approve a payment into the account.
type StkPushRequest struct {
	Account     string
	Phone       string
	Amount      decimal.Decimal
	Currency    domain.Currency
	Description string
}

// RequestStkPush initiates an STK push. The push itself settles out-of-band,
// so the ledger entry stays pending; only the processing fee (if configured)
// is debited up front.
func (s *PaymentService) RequestStkPush(ctx context.Context, req StkPushRequest) (domain.Transaction, error) {
	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		return domain.Transaction{}, err
	}
	currency, err := s.validateAmount(req.Amount, req.Currency)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:          idx.New().String(),
		Account:     req.Account,
		Type:        domain.TxStkPush,
		Status:      domain.TxPending,
		Amount:      req.Amount,
		Currency:    currency,
		Phone:       phone,
		Description: req.Description,
	}

	err = s.Store.WithTx(ctx, func(st store.Tx) error {
		if s.StkPushFee.IsPositive() {
			if err := debit(ctx, st, req.Account, currency, s.StkPushFee); err != nil {
				return err
			}
		}
		return st.Transactions().CreateTransaction(ctx, tx)
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	slogx.FromContext(ctx).Info("stk push requested",
		slog.String("transaction_id", tx.ID),
		slog.String("amount", tx.Amount.String()))
	return tx, nil
}

// MobileTransferRequest sends funds from the account to a mobile wallet.
type MobileTransferRequest struct {
	Account   string
	Phone     string
	Amount    decimal.Decimal
	Currency  domain.Currency
	Reference string
}

// SendToMobile debits the account and records a completed mobile transfer.
func (s *PaymentService) SendToMobile(ctx context.Context, req MobileTransferRequest) (domain.Transaction, error) {
	phone, err := domain.NormalizePhone(req.Phone)
	if err != nil {
		return domain.Transaction{}, err
	}
	currency, err := s.validateAmount(req.Amount, req.Currency)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := validateReference(req.Reference); err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:        idx.New().String(),
		Account:   req.Account,
		Type:      domain.TxMobileTransfer,
		Status:    domain.TxCompleted,
		Amount:    req.Amount,
		Currency:  currency,
		Phone:     phone,
		Reference: req.Reference,
	}
	if err := s.debitAndRecord(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// SellapayTransferRequest moves funds between two Sellapay accounts.
type SellapayTransferRequest struct {
	Account          string
	RecipientAccount string
	Amount           decimal.Decimal
	Currency         domain.Currency
	Reference        string
}

// SendToSellapay transfers between gateway accounts: sender is debited,
// recipient credited, both sides and the ledger entry in one transaction.
func (s *PaymentService) SendToSellapay(ctx context.Context, req SellapayTransferRequest) (domain.Transaction, error) {
	if req.RecipientAccount == "" {
		return domain.Transaction{}, fmt.Errorf("%w: recipient_account", ErrMissingField)
	}
	if req.RecipientAccount == req.Account {
		return domain.Transaction{}, fmt.Errorf("%w: recipient_account", ErrUnknownRecipient)
	}
	currency, err := s.validateAmount(req.Amount, req.Currency)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := validateReference(req.Reference); err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:               idx.New().String(),
		Account:          req.Account,
		Type:             domain.TxSellapayTransfer,
		Status:           domain.TxCompleted,
		Amount:           req.Amount,
		Currency:         currency,
		RecipientAccount: req.RecipientAccount,
		Reference:        req.Reference,
	}

	err = s.Store.WithTx(ctx, func(st store.Tx) error {
		recipient, err := st.Accounts().GetAccountByNumber(ctx, req.RecipientAccount)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownRecipient
			}
			return err
		}

		if err := debit(ctx, st, req.Account, currency, req.Amount); err != nil {
			return err
		}

		credited := recipient.Balance(currency).Add(req.Amount)
		if err := st.Accounts().SetBalance(ctx, recipient.Number, currency, credited); err != nil {
			return err
		}
		return st.Transactions().CreateTransaction(ctx, tx)
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	slogx.FromContext(ctx).Info("sellapay transfer completed",
		slog.String("transaction_id", tx.ID),
		slog.String("amount", tx.Amount.String()))
	return tx, nil
}

// BankTransferRequest sends funds to a local bank account. Callers identify
// the bank either by swift code + bank account, or by bank code + account
// number (+ optional account holder name). Both documented shapes resolve
// through the bank reference table.
type BankTransferRequest struct {
	Account string

	SwiftCode   string
	BankAccount string

	BankCode      string
	AccountNumber string
	AccountName   string

	Amount    decimal.Decimal
	Currency  domain.Currency
	Reference string
}

// SendToLocalBank debits the account and records a pending bank transfer
// with the quoted settlement window.
func (s *PaymentService) SendToLocalBank(ctx context.Context, req BankTransferRequest) (domain.Transaction, error) {
	bank, destination, err := resolveBankDestination(req)
	if err != nil {
		return domain.Transaction{}, err
	}
	currency, err := s.validateAmount(req.Amount, req.Currency)
	if err != nil {
		return domain.Transaction{}, err
	}
	if err := validateReference(req.Reference); err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:               idx.New().String(),
		Account:          req.Account,
		Type:             domain.TxBankTransfer,
		Status:           domain.TxPending,
		Amount:           req.Amount,
		Currency:         currency,
		BankName:         bank.Name,
		BankAccount:      destination,
		Reference:        req.Reference,
		EstimatedArrival: bankTransferArrival,
	}
	if err := s.debitAndRecord(ctx, tx); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}

// Transactions lists the account's most recent ledger entries.
func (s *PaymentService) Transactions(ctx context.Context, account string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Store.Transactions().ListTransactionsByAccount(ctx, account, limit)
}

func resolveBankDestination(req BankTransferRequest) (domain.Bank, string, error) {
	switch {
	case req.SwiftCode != "" && req.BankAccount != "":
		bank, err := domain.BankBySwift(req.SwiftCode)
		if err != nil {
			return domain.Bank{}, "", ErrUnknownBank
		}
		return bank, req.BankAccount, nil
	case req.BankCode != "" && req.AccountNumber != "":
		bank, err := domain.BankByCode(req.BankCode)
		if err != nil {
			return domain.Bank{}, "", ErrUnknownBank
		}
		return bank, req.AccountNumber, nil
	default:
		return domain.Bank{}, "", fmt.Errorf("%w: swift_code+bank_account or bank_code+account_number", ErrMissingField)
	}
}

// debitAndRecord runs the debit and ledger append for single-sided transfers.
func (s *PaymentService) debitAndRecord(ctx context.Context, tx domain.Transaction) error {
	err := s.Store.WithTx(ctx, func(st store.Tx) error {
		if err := debit(ctx, st, tx.Account, tx.Currency, tx.Amount); err != nil {
			return err
		}
		return st.Transactions().CreateTransaction(ctx, tx)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("transfer recorded",
		slog.String("transaction_id", tx.ID),
		slog.String("type", string(tx.Type)),
		slog.String("amount", tx.Amount.String()))
	return nil
}

// debit subtracts amount from the account's balance in the given currency,
// failing with *BalanceError when funds are insufficient.
func debit(ctx context.Context, st store.Tx, account string, currency domain.Currency, amount decimal.Decimal) error {
	a, err := st.Accounts().GetAccountByNumber(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownAccount
		}
		return err
	}

	available := a.Balance(currency)
	if available.LessThan(amount) {
		return &BalanceError{Required: amount, Available: available}
	}
	return st.Accounts().SetBalance(ctx, account, currency, available.Sub(amount))
}

// validateAmount enforces the amount rules shared by every money-moving
// operation and defaults an empty currency to KES.
func (s *PaymentService) validateAmount(amount decimal.Decimal, currency domain.Currency) (domain.Currency, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return "", ErrInvalidAmount
	}
	if s.MaxAmount.IsPositive() && amount.GreaterThan(s.MaxAmount) {
		return "", ErrInvalidAmount
	}

	if currency == "" {
		return domain.KES, nil
	}
	if !domain.ValidCurrency(currency) {
		return "", ErrInvalidCurrency
	}
	return currency, nil
}

func validateReference(ref string) error {
	if len(ref) > maxReferenceLen {
		return ErrInvalidReference
	}
	for _, r := range ref {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return ErrInvalidReference
		}
	}
	return nil
}

// Timestamp formats t the way response bodies report event times.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
