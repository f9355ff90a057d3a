package domain_test

import (
	"testing"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/stretchr/testify/require"
)

func TestBankByCode(t *testing.T) {
	b, err := domain.BankByCode("68")
	require.NoError(t, err)
	require.Equal(t, "Equity Bank Kenya", b.Name)

	_, err = domain.BankByCode("99")
	require.ErrorIs(t, err, domain.ErrUnknownBank)
}

func TestBankBySwift(t *testing.T) {
	b, err := domain.BankBySwift("kcblkenx")
	require.NoError(t, err)
	require.Equal(t, "KCB Bank Kenya", b.Name)

	_, err = domain.BankBySwift("NOPEKENX")
	require.ErrorIs(t, err, domain.ErrUnknownBank)
}
