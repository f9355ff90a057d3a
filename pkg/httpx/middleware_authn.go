package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/sellapay/gateway/pkg/jwtx"
	"github.com/sellapay/gateway/pkg/slogx"
)

// InvalidTokenMessage is the single client-visible rejection for every
// bearer-token failure. Signature failures and expiry are distinguished in
// logs only, never on the wire, so the response cannot be used as an oracle
// against the signing scheme.
const InvalidTokenMessage = "Invalid or expired access token"

// AuthnMiddleware verifies the bearer token and injects the authenticated
// identity into the request context.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				// Internal distinction only: the envelope stays uniform.
				writeBearerError(w)
				log.Warn("jwt verify failed", "err", err)
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				writeBearerError(w)
				log.Warn("jwt expired", "err", err)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccount, c.Account)
	ctx = context.WithValue(ctx, CtxKeyBusinessID, c.BusinessID)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "auth_error", InvalidTokenMessage, nil)
}
