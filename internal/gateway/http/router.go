package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/internal/gateway/store"
	"github.com/sellapay/gateway/pkg/httpx"
	"github.com/sellapay/gateway/pkg/jwtx"
	"github.com/sellapay/gateway/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	CredentialService *service.CredentialService
	TokenService      *service.TokenService
	PaymentService    *service.PaymentService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuthorize()
	r.registerPayments()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuthorize() {
	h := &AuthorizeHandler{
		CredentialService: r.CredentialService,
		TokenService:      r.TokenService,
	}

	// Credential exchange is the brute-force surface: strict per-IP limit.
	r.Mux.Handle("POST /api/v1/authorize",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.AuthorizeLimit),
		),
	)
}

func (r *Router) registerPayments() {
	// Every payment endpoint shares the bearer-token chain: verify the JWT,
	// then rate limit per authenticated account.
	secured := func(h http.Handler) http.Handler {
		return httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByToken(httpx.BearerLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/getBalance",
		secured(&BalanceHandler{PaymentService: r.PaymentService}))
	r.Mux.Handle("POST /api/v1/requestStkPush",
		secured(&StkPushHandler{PaymentService: r.PaymentService}))
	r.Mux.Handle("POST /api/v1/sendFundsToMobile",
		secured(&SendMobileHandler{PaymentService: r.PaymentService}))
	r.Mux.Handle("POST /api/v1/sendFundsToSellapay",
		secured(&SendSellapayHandler{PaymentService: r.PaymentService}))
	r.Mux.Handle("POST /api/v1/sendFundsToLocalBank",
		secured(&SendBankHandler{PaymentService: r.PaymentService}))
	r.Mux.Handle("GET /api/v1/getTransactions",
		secured(&TransactionsHandler{PaymentService: r.PaymentService}))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
