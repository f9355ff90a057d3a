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

// SendMobileHandler serves POST /api/v1/sendFundsToMobile.
type SendMobileHandler struct {
	PaymentService *service.PaymentService
}

type sendMobileRequest struct {
	Phone     string          `json:"phone"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
}

type sendMobileResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	Phone         string `json:"phone"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
}

func (h *SendMobileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendMobileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	tx, err := h.PaymentService.SendToMobile(ctx, service.MobileTransferRequest{
		Account:   httpx.AccountFromContext(ctx),
		Phone:     req.Phone,
		Amount:    req.Amount,
		Currency:  domain.Currency(req.Currency),
		Reference: req.Reference,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sendMobileResponse{
		Message:       "Funds sent successfully",
		TransactionID: tx.ID,
		Phone:         tx.Phone,
		Amount:        tx.Amount.StringFixed(2),
		Status:        string(tx.Status),
		Timestamp:     service.Timestamp(time.Now()),
	})
}
