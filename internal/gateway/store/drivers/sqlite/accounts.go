package sqlite

import (
	"context"
	"fmt"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/store"
	"github.com/shopspring/decimal"
)

type accountsRepo struct {
	q queryer
}

func (r *accountsRepo) GetAccountByNumber(ctx context.Context, number string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT number, business_id, primary_currency,
		       balance_kes, balance_usd, balance_eur, balance_gbp,
		       created_at, updated_at
		FROM accounts
		WHERE number = ?`, number)

	var (
		a                  domain.Account
		kes, usd, eur, gbp string
	)
	err := row.Scan(&a.Number, &a.BusinessID, &a.PrimaryCurrency,
		&kes, &usd, &eur, &gbp, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.Balances = make(map[domain.Currency]decimal.Decimal, 4)
	for currency, raw := range map[domain.Currency]string{
		domain.KES: kes, domain.USD: usd, domain.EUR: eur, domain.GBP: gbp,
	} {
		amount, err := parseAmount(raw)
		if err != nil {
			return domain.Account{}, err
		}
		a.Balances[currency] = amount
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (number, business_id, primary_currency,
		                      balance_kes, balance_usd, balance_eur, balance_gbp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.Number, a.BusinessID, a.PrimaryCurrency,
		a.Balance(domain.KES).String(),
		a.Balance(domain.USD).String(),
		a.Balance(domain.EUR).String(),
		a.Balance(domain.GBP).String())
	return err
}

func (r *accountsRepo) SetBalance(ctx context.Context, number string, currency domain.Currency, amount decimal.Decimal) error {
	column, err := balanceColumn(currency)
	if err != nil {
		return err
	}

	// Column name comes from the fixed currency switch above, never from input.
	res, err := r.q.ExecContext(ctx, fmt.Sprintf(`
		UPDATE accounts
		SET %s = ?, updated_at = CURRENT_TIMESTAMP
		WHERE number = ?`, column),
		amount.String(), number)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func balanceColumn(currency domain.Currency) (string, error) {
	switch currency {
	case domain.KES:
		return "balance_kes", nil
	case domain.USD:
		return "balance_usd", nil
	case domain.EUR:
		return "balance_eur", nil
	case domain.GBP:
		return "balance_gbp", nil
	default:
		return "", fmt.Errorf("sqlite: unsupported currency %q", currency)
	}
}
