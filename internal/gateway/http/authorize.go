package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/pkg/httpx"
	"github.com/sellapay/gateway/pkg/slogx"
)

// AuthorizeHandler serves POST /api/v1/authorize. Credentials travel in the
// X-API-KEY and X-API-SECRET headers; a successful exchange returns a
// one-hour bearer token.
type AuthorizeHandler struct {
	CredentialService *service.CredentialService
	TokenService      *service.TokenService
}

type authorizeResponse struct {
	Message     string `json:"message"`
	Account     string `json:"account"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	apiKey := r.Header.Get("X-API-KEY")
	apiSecret := r.Header.Get("X-API-SECRET")

	cred, err := h.CredentialService.Validate(ctx, apiKey, apiSecret)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			httpx.WriteError(w, http.StatusBadRequest, codeValidation,
				"Missing X-API-KEY or X-API-SECRET header.", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteError(w, http.StatusUnauthorized, codeAuth,
				"Invalid API credentials.", nil)
		default:
			log.Error("credential validation failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, codeServer,
				"An internal error occurred. Please retry with exponential backoff.", nil)
		}
		return
	}

	token, err := h.TokenService.Issue(cred.Account, cred.BusinessID, time.Now())
	if err != nil {
		log.Error("token issuance failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, codeServer,
			"An internal error occurred. Please retry with exponential backoff.", nil)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authorizeResponse{
		Message:     "Authorization successful",
		Account:     cred.Account,
		AccessToken: token.Token,
		ExpiresIn:   token.ExpiresIn,
	})
}
