package httpx

import (
	"context"

	"github.com/sellapay/gateway/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyAccount    ctxKey = "account"
	CtxKeyBusinessID ctxKey = "business_id"
	CtxKeyClaims     ctxKey = "claims" // full jwtx.Claims if you need them
)

// AccountFromContext returns the authenticated account identifier, or ""
// when the request did not pass the authn middleware.
func AccountFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccount).(string); ok {
		return v
	}
	return ""
}

// BusinessIDFromContext returns the authenticated tenant identifier, or "".
func BusinessIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyBusinessID).(string); ok {
		return v
	}
	return ""
}

// ClaimsFromContext returns the full verified claims, if present.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
