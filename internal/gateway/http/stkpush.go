package http

import (
	"encoding/json"
	"net/http"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/pkg/httpx"
	"github.com/shopspring/decimal"
)

// StkPushHandler serves POST /api/v1/requestStkPush.
type StkPushHandler struct {
	PaymentService *service.PaymentService
}

type stkPushRequest struct {
	Phone       string          `json:"phone"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
}

type stkPushResponse struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
	Phone         string `json:"phone"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	Description   string `json:"description,omitempty"`
}

func (h *StkPushHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req stkPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	tx, err := h.PaymentService.RequestStkPush(ctx, service.StkPushRequest{
		Account:     httpx.AccountFromContext(ctx),
		Phone:       req.Phone,
		Amount:      req.Amount,
		Currency:    domain.Currency(req.Currency),
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, stkPushResponse{
		Message:       "STK push initiated. Awaiting customer approval.",
		TransactionID: tx.ID,
		Phone:         tx.Phone,
		Amount:        tx.Amount.StringFixed(2),
		Status:        string(tx.Status),
		Description:   tx.Description,
	})
}
