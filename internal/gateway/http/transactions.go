package http

import (
	"net/http"
	"strconv"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/pkg/httpx"
)

// TransactionsHandler serves GET /api/v1/getTransactions: the account's
// recent ledger entries, newest first. Optional ?limit= caps the page.
type TransactionsHandler struct {
	PaymentService *service.PaymentService
}

type transactionEntry struct {
	TransactionID    string `json:"transaction_id"`
	Type             string `json:"type"`
	Status           string `json:"status"`
	Amount           string `json:"amount"`
	Currency         string `json:"currency"`
	Phone            string `json:"phone,omitempty"`
	RecipientAccount string `json:"recipient_account,omitempty"`
	Bank             string `json:"bank,omitempty"`
	Reference        string `json:"reference,omitempty"`
	CreatedAt        string `json:"created_at"`
}

type transactionsResponse struct {
	Message      string             `json:"message"`
	Transactions []transactionEntry `json:"transactions"`
}

func (h *TransactionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, codeValidation,
				"Invalid limit. Must be an integer.", nil)
			return
		}
		limit = n
	}

	txs, err := h.PaymentService.Transactions(ctx, httpx.AccountFromContext(ctx), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entries := make([]transactionEntry, 0, len(txs))
	for _, tx := range txs {
		entries = append(entries, toTransactionEntry(tx))
	}

	httpx.WriteJSON(w, http.StatusOK, transactionsResponse{
		Message:      "Transactions retrieved successfully",
		Transactions: entries,
	})
}

func toTransactionEntry(tx domain.Transaction) transactionEntry {
	return transactionEntry{
		TransactionID:    tx.ID,
		Type:             string(tx.Type),
		Status:           string(tx.Status),
		Amount:           tx.Amount.StringFixed(2),
		Currency:         string(tx.Currency),
		Phone:            tx.Phone,
		RecipientAccount: tx.RecipientAccount,
		Bank:             tx.BankName,
		Reference:        tx.Reference,
		CreatedAt:        service.Timestamp(tx.CreatedAt),
	}
}
