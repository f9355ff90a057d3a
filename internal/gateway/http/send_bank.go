package http

import (
	"encoding/json"
	"net/http"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/pkg/httpx"
	"github.com/shopspring/decimal"
)

// SendBankHandler serves POST /api/v1/sendFundsToLocalBank. Two request
// shapes are accepted: swift_code + bank_account, or bank_code +
// account_number (+ account_name). The response echoes whichever account
// field the caller supplied.
type SendBankHandler struct {
	PaymentService *service.PaymentService
}

type sendBankRequest struct {
	SwiftCode   string `json:"swift_code"`
	BankAccount string `json:"bank_account"`

	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`

	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference"`
}

type sendBankResponse struct {
	Message          string `json:"message"`
	TransactionID    string `json:"transaction_id"`
	Bank             string `json:"bank"`
	BankAccount      string `json:"bank_account,omitempty"`
	AccountNumber    string `json:"account_number,omitempty"`
	Amount           string `json:"amount"`
	Status           string `json:"status"`
	EstimatedArrival string `json:"estimated_arrival"`
}

func (h *SendBankHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	tx, err := h.PaymentService.SendToLocalBank(ctx, service.BankTransferRequest{
		Account:       httpx.AccountFromContext(ctx),
		SwiftCode:     req.SwiftCode,
		BankAccount:   req.BankAccount,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		Amount:        req.Amount,
		Currency:      domain.Currency(req.Currency),
		Reference:     req.Reference,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := sendBankResponse{
		Message:          "Bank transfer initiated",
		TransactionID:    tx.ID,
		Bank:             tx.BankName,
		Amount:           tx.Amount.StringFixed(2),
		Status:           string(tx.Status),
		EstimatedArrival: tx.EstimatedArrival,
	}
	if req.AccountNumber != "" {
		resp.AccountNumber = tx.BankAccount
	} else {
		resp.BankAccount = tx.BankAccount
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
