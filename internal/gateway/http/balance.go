package http

import (
	"net/http"
	"time"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/pkg/httpx"
)

// BalanceHandler serves GET /api/v1/getBalance.
type BalanceHandler struct {
	PaymentService *service.PaymentService
}

type balanceResponse struct {
	Message         string            `json:"message"`
	Balance         map[string]string `json:"balance"`
	PrimaryCurrency string            `json:"primary_currency"`
	Timestamp       string            `json:"timestamp"`
}

func (h *BalanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	account := httpx.AccountFromContext(ctx)

	result, err := h.PaymentService.Balance(ctx, account)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	balance := make(map[string]string, len(domain.Currencies))
	for _, c := range domain.Currencies {
		balance[string(c)] = result.Balances[c].StringFixed(2)
	}

	httpx.WriteJSON(w, http.StatusOK, balanceResponse{
		Message:         "Balance retrieved successfully",
		Balance:         balance,
		PrimaryCurrency: string(result.PrimaryCurrency),
		Timestamp:       service.Timestamp(time.Now()),
	})
}
