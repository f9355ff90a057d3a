package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code. The gateway holds balances in exactly the
// four documented wallet currencies.
type Currency string

const (
	KES Currency = "KES"
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
)

// Currencies lists the supported wallet currencies in response order.
var Currencies = []Currency{KES, USD, EUR, GBP}

// ValidCurrency reports whether c is one of the supported wallet currencies.
func ValidCurrency(c Currency) bool {
	switch c {
	case KES, USD, EUR, GBP:
		return true
	}
	return false
}

// Account is a Sellapay wallet holding one balance per supported currency.
type Account struct {
	Number          string // account identifier, also the token's account claim
	BusinessID      string
	PrimaryCurrency Currency
	Balances        map[Currency]decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Balance returns the balance held in the given currency (zero if unset).
func (a Account) Balance(c Currency) decimal.Decimal {
	if v, ok := a.Balances[c]; ok {
		return v
	}
	return decimal.Zero
}
