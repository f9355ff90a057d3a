package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sellapay/gateway/internal/gateway/domain"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/pkg/httpx"
	"github.com/sellapay/gateway/pkg/slogx"
)

// Error codes in the uniform envelope.
const (
	codeValidation   = "validation_error"
	codeAuth         = "auth_error"
	codeInsufficient = "insufficient_balance"
	codeNotFound     = "not_found"
	codeServer       = "server_error"
)

// writeServiceError maps service-layer errors to the wire envelope. Anything
// unrecognized is a server_error; the underlying cause goes to logs only.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var balErr *service.BalanceError

	switch {
	case errors.Is(err, domain.ErrInvalidPhone):
		httpx.WriteError(w, http.StatusBadRequest, codeValidation,
			"Invalid phone number format. Expected 9 digits starting with 7 or 1, without country code.", nil)
	case errors.Is(err, service.ErrInvalidAmount):
		httpx.WriteError(w, http.StatusBadRequest, codeValidation,
			"Invalid amount. Must be a positive value with at most 2 decimal places.", nil)
	case errors.Is(err, service.ErrInvalidCurrency):
		httpx.WriteError(w, http.StatusBadRequest, codeValidation,
			"Unsupported currency. Supported: KES, USD, EUR, GBP.", nil)
	case errors.Is(err, service.ErrInvalidReference):
		httpx.WriteError(w, http.StatusBadRequest, codeValidation,
			"Invalid reference. Must be alphanumeric and at most 64 characters.", nil)
	case errors.Is(err, service.ErrMissingField):
		httpx.WriteError(w, http.StatusBadRequest, codeValidation,
			"Missing required field: "+trimPrefix(err), nil)
	case errors.Is(err, service.ErrUnknownBank):
		httpx.WriteError(w, http.StatusBadRequest, codeValidation,
			"Unknown bank code or SWIFT code.", nil)
	case errors.As(err, &balErr):
		httpx.WriteError(w, http.StatusPaymentRequired, codeInsufficient,
			"Insufficient balance to complete this transaction.", map[string]string{
				"required":  balErr.Required.String(),
				"available": balErr.Available.String(),
			})
	case errors.Is(err, service.ErrUnknownRecipient):
		httpx.WriteError(w, http.StatusNotFound, codeNotFound,
			"Recipient account not found.", nil)
	case errors.Is(err, service.ErrUnknownAccount):
		httpx.WriteError(w, http.StatusNotFound, codeNotFound,
			"Account not found.", nil)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, codeServer,
			"An internal error occurred. Please retry with exponential backoff.", nil)
	}
}

// trimPrefix strips the sentinel prefix from wrapped ErrMissingField errors,
// leaving the field name for the client message.
func trimPrefix(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, ": "); ok {
		return after
	}
	return msg
}

// writeBadJSON reports an unparseable request body.
func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, codeValidation,
		"Request body must be valid JSON.", nil)
}
