package sqlite

import (
	"context"
	"database/sql"

	"github.com/sellapay/gateway/internal/gateway/domain"
)

type transactionsRepo struct {
	q queryer
}

const transactionColumns = `id, account, type, status, amount, currency,
	phone, recipient_account, bank_name, bank_account,
	reference, description, estimated_arrival, created_at, updated_at`

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO transactions (id, account, type, status, amount, currency,
		                          phone, recipient_account, bank_name, bank_account,
		                          reference, description, estimated_arrival)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Account, t.Type, t.Status, t.Amount.String(), t.Currency,
		mapStringNull(t.Phone), mapStringNull(t.RecipientAccount),
		mapStringNull(t.BankName), mapStringNull(t.BankAccount),
		mapStringNull(t.Reference), mapStringNull(t.Description),
		mapStringNull(t.EstimatedArrival))
	return err
}

func (r *transactionsRepo) GetTransactionByID(ctx context.Context, id string) (domain.Transaction, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = ?`, id)
	return scanTransaction(row)
}

func (r *transactionsRepo) ListTransactionsByAccount(ctx context.Context, account string, limit int) ([]domain.Transaction, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE account = ?
		ORDER BY created_at DESC
		LIMIT ?`, account, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		t                                   domain.Transaction
		amount                              string
		phone, recipient, bankName, bankAcc sql.NullString
		reference, description, arrival     sql.NullString
	)
	err := row.Scan(&t.ID, &t.Account, &t.Type, &t.Status, &amount, &t.Currency,
		&phone, &recipient, &bankName, &bankAcc,
		&reference, &description, &arrival, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Transaction{}, mapNotFound(err)
	}

	t.Amount, err = parseAmount(amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	t.Phone = mapNullString(phone)
	t.RecipientAccount = mapNullString(recipient)
	t.BankName = mapNullString(bankName)
	t.BankAccount = mapNullString(bankAcc)
	t.Reference = mapNullString(reference)
	t.Description = mapNullString(description)
	t.EstimatedArrival = mapNullString(arrival)
	return t, nil
}
