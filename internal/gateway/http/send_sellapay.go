package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/pkg/httpx"
	"github.com/shopspring/decimal"
)

// SendSellapayHandler serves POST /api/v1/sendFundsToSellapay.
type SendSellapayHandler struct {
	PaymentService *service.PaymentService
}

type sendSellapayRequest struct {
	RecipientAccount string          `json:"recipient_account"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Reference        string          `json:"reference"`
}

type sendSellapayResponse struct {
	Message          string `json:"message"`
	TransactionID    string `json:"transaction_id"`
	RecipientAccount string `json:"recipient_account"`
	Amount           string `json:"amount"`
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
}

func (h *SendSellapayHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendSellapayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	tx, err := h.PaymentService.SendToSellapay(ctx, service.SellapayTransferRequest{
		Account:          httpx.AccountFromContext(ctx),
		RecipientAccount: req.RecipientAccount,
		Amount:           req.Amount,
		Currency:         domain.Currency(req.Currency),
		Reference:        req.Reference,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sendSellapayResponse{
		Message:          "Funds transferred successfully",
		TransactionID:    tx.ID,
		RecipientAccount: tx.RecipientAccount,
		Amount:           tx.Amount.StringFixed(2),
		Status:           string(tx.Status),
		Timestamp:        service.Timestamp(time.Now()),
	})
}
