package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sellapay/gateway/internal/gateway/domain"
	gwhttp "github.com/sellapay/gateway/internal/gateway/http"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/internal/gateway/store"
	"github.com/sellapay/gateway/internal/gateway/store/drivers/sqlite"
	"github.com/sellapay/gateway/pkg/cryptox"
	"github.com/sellapay/gateway/pkg/httpx"
	"github.com/sellapay/gateway/pkg/jwtx"
	"github.com/sellapay/gateway/pkg/slogx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "0123456789abcdef0123456789abcdef"
	testAPIKey    = "sk_test_key"
	testAPISecret = "sk_test_secret"
	testAccount   = "ACC-100"
)

type testGateway struct {
	handler http.Handler
	store   store.Store
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "gateway_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	ctx := context.Background()
	require.NoError(t, st.Accounts().CreateAccount(ctx, domain.Account{
		Number:          testAccount,
		BusinessID:      "biz-100",
		PrimaryCurrency: domain.KES,
		Balances: map[domain.Currency]decimal.Decimal{
			domain.KES: decimal.NewFromInt(10_000),
			domain.USD: decimal.RequireFromString("55.50"),
		},
	}))

	hash, err := cryptox.HashSecret(testAPISecret)
	require.NoError(t, err)
	require.NoError(t, st.Credentials().CreateCredential(ctx, domain.Credential{
		APIKey:     testAPIKey,
		SecretHash: hash,
		Account:    testAccount,
		BusinessID: "biz-100",
	}))

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier := jwtx.NewVerifierHS256([]byte(testSecret))

	logger := slogx.New(slogx.Config{Service: "gateway-test", Level: "error", Format: "text"})

	router := gwhttp.NewRouter(verifier, "test", st, logger)
	router.CredentialService = &service.CredentialService{Store: st, LookupTimeout: time.Second}
	router.TokenService = &service.TokenService{Signer: signer}
	router.PaymentService = &service.PaymentService{Store: st, MaxAmount: decimal.NewFromInt(1_000_000)}
	router.ApplyRoutes()

	return &testGateway{handler: router, store: st}
}

func (g *testGateway) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	g.handler.ServeHTTP(rec, req)
	return rec
}

func (g *testGateway) authorize(t *testing.T) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/authorize", nil)
	req.Header.Set("X-API-KEY", testAPIKey)
	req.Header.Set("X-API-SECRET", testAPISecret)

	rec := g.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (g *testGateway) authedJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+g.authorize(t))
	return g.do(t, req)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (code, message string, details map[string]any) {
	t.Helper()

	var envelope struct {
		Error   string         `json:"error"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Error)
	require.NotEmpty(t, envelope.Message)
	return envelope.Error, envelope.Message, envelope.Details
}

func TestAuthorizeEndpoint(t *testing.T) {
	g := newTestGateway(t)

	t.Run("valid credentials return one-hour token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/authorize", nil)
		req.Header.Set("X-API-KEY", testAPIKey)
		req.Header.Set("X-API-SECRET", testAPISecret)

		rec := g.do(t, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		require.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
		require.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
		require.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

		var resp struct {
			Message     string `json:"message"`
			Account     string `json:"account"`
			AccessToken string `json:"access_token"`
			ExpiresIn   int64  `json:"expires_in"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, testAccount, resp.Account)
		require.EqualValues(t, 3600, resp.ExpiresIn)
		require.NotEmpty(t, resp.Message)

		verifier := jwtx.NewVerifierHS256([]byte(testSecret))
		claims, err := verifier.Verify(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, testAccount, claims.Account)
		require.Equal(t, jwtx.AccessTokenTTL, claims.TTL())
	})

	t.Run("missing credentials rejected with 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/authorize", nil)

		rec := g.do(t, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		code, _, _ := decodeEnvelope(t, rec)
		require.Equal(t, "validation_error", code)
	})

	t.Run("invalid credentials rejected with 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/authorize", nil)
		req.Header.Set("X-API-KEY", testAPIKey)
		req.Header.Set("X-API-SECRET", "wrong")

		rec := g.do(t, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		code, _, _ := decodeEnvelope(t, rec)
		require.Equal(t, "auth_error", code)
	})
}

func TestGetBalance(t *testing.T) {
	g := newTestGateway(t)

	t.Run("returns all wallet balances", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodGet, "/api/v1/getBalance", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Message         string            `json:"message"`
			Balance         map[string]string `json:"balance"`
			PrimaryCurrency string            `json:"primary_currency"`
			Timestamp       string            `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "KES", resp.PrimaryCurrency)
		require.Equal(t, "10000.00", resp.Balance["KES"])
		require.Equal(t, "55.50", resp.Balance["USD"])
		require.Equal(t, "0.00", resp.Balance["EUR"])
		require.NotEmpty(t, resp.Timestamp)
	})

	t.Run("rejects request without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/getBalance", nil)
		rec := g.do(t, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		code, message, _ := decodeEnvelope(t, rec)
		require.Equal(t, "auth_error", code)
		require.Equal(t, "Invalid or expired access token", message)
	})

	t.Run("rejects tampered token with uniform message", func(t *testing.T) {
		token := g.authorize(t)
		tampered := token[:len(token)-2] + "xx"

		req := httptest.NewRequest(http.MethodGet, "/api/v1/getBalance", nil)
		req.Header.Set("Authorization", "Bearer "+tampered)
		rec := g.do(t, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		_, message, _ := decodeEnvelope(t, rec)
		require.Equal(t, "Invalid or expired access token", message)
	})
}

func TestRequestStkPush(t *testing.T) {
	g := newTestGateway(t)

	t.Run("initiates pending push", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/requestStkPush", map[string]any{
			"phone":       "712345678",
			"amount":      "100.50",
			"description": "order 42",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			TransactionID string `json:"transaction_id"`
			Phone         string `json:"phone"`
			Amount        string `json:"amount"`
			Status        string `json:"status"`
			Description   string `json:"description"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.TransactionID)
		require.Equal(t, "254712345678", resp.Phone)
		require.Equal(t, "100.50", resp.Amount)
		require.Equal(t, "pending", resp.Status)
		require.Equal(t, "order 42", resp.Description)
	})

	t.Run("rejects phone with country code", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/requestStkPush", map[string]any{
			"phone":  "254712345678",
			"amount": "100",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		code, _, _ := decodeEnvelope(t, rec)
		require.Equal(t, "validation_error", code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/requestStkPush", bytes.NewBufferString("{not json"))
		req.Header.Set("Authorization", "Bearer "+g.authorize(t))
		rec := g.do(t, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		code, _, _ := decodeEnvelope(t, rec)
		require.Equal(t, "validation_error", code)
	})
}

func TestSendFundsToMobile(t *testing.T) {
	g := newTestGateway(t)

	t.Run("sends and reports completed", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToMobile", map[string]any{
			"phone":  "112345678",
			"amount": "2500",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Phone     string `json:"phone"`
			Amount    string `json:"amount"`
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "254112345678", resp.Phone)
		require.Equal(t, "2500.00", resp.Amount)
		require.Equal(t, "completed", resp.Status)
		require.NotEmpty(t, resp.Timestamp)
	})

	t.Run("insufficient balance yields 402 with amounts", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToMobile", map[string]any{
			"phone":  "712345678",
			"amount": "999999",
		})
		require.Equal(t, http.StatusPaymentRequired, rec.Code)

		code, _, details := decodeEnvelope(t, rec)
		require.Equal(t, "insufficient_balance", code)
		require.Equal(t, "999999", details["required"])
		require.NotEmpty(t, details["available"])
	})
}

func TestSendFundsToSellapay(t *testing.T) {
	g := newTestGateway(t)

	require.NoError(t, g.store.Accounts().CreateAccount(context.Background(), domain.Account{
		Number:          "ACC-200",
		BusinessID:      "biz-200",
		PrimaryCurrency: domain.KES,
		Balances:        map[domain.Currency]decimal.Decimal{},
	}))

	t.Run("transfers to existing account", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToSellapay", map[string]any{
			"recipient_account": "ACC-200",
			"amount":            "300",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			RecipientAccount string `json:"recipient_account"`
			Status           string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ACC-200", resp.RecipientAccount)
		require.Equal(t, "completed", resp.Status)

		recipient, err := g.store.Accounts().GetAccountByNumber(context.Background(), "ACC-200")
		require.NoError(t, err)
		require.True(t, recipient.Balance(domain.KES).Equal(decimal.NewFromInt(300)))
	})

	t.Run("unknown recipient yields 404", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToSellapay", map[string]any{
			"recipient_account": "ACC-NOBODY",
			"amount":            "10",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)

		code, _, _ := decodeEnvelope(t, rec)
		require.Equal(t, "not_found", code)
	})
}

func TestSendFundsToLocalBank(t *testing.T) {
	g := newTestGateway(t)

	t.Run("swift shape echoes bank_account", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToLocalBank", map[string]any{
			"swift_code":   "KCBLKENX",
			"bank_account": "0011223344",
			"amount":       "1000",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Bank             string `json:"bank"`
			BankAccount      string `json:"bank_account"`
			AccountNumber    string `json:"account_number"`
			Status           string `json:"status"`
			EstimatedArrival string `json:"estimated_arrival"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "KCB Bank Kenya", resp.Bank)
		require.Equal(t, "0011223344", resp.BankAccount)
		require.Empty(t, resp.AccountNumber)
		require.Equal(t, "pending", resp.Status)
		require.Equal(t, "1-3 business days", resp.EstimatedArrival)
	})

	t.Run("bank code shape echoes account_number", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToLocalBank", map[string]any{
			"bank_code":      "68",
			"account_number": "5544332211",
			"account_name":   "Jane Doe",
			"amount":         "500",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Bank          string `json:"bank"`
			BankAccount   string `json:"bank_account"`
			AccountNumber string `json:"account_number"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "Equity Bank Kenya", resp.Bank)
		require.Equal(t, "5544332211", resp.AccountNumber)
		require.Empty(t, resp.BankAccount)
	})

	t.Run("unknown bank rejected", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToLocalBank", map[string]any{
			"swift_code":   "XXXXKEXX",
			"bank_account": "123",
			"amount":       "10",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetTransactions(t *testing.T) {
	g := newTestGateway(t)

	rec := g.authedJSON(t, http.MethodPost, "/api/v1/sendFundsToMobile", map[string]any{
		"phone":  "712345678",
		"amount": "150",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("lists recorded entries newest first", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodGet, "/api/v1/getTransactions", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Transactions []struct {
				TransactionID string `json:"transaction_id"`
				Type          string `json:"type"`
				Amount        string `json:"amount"`
				Phone         string `json:"phone"`
				CreatedAt     string `json:"created_at"`
			} `json:"transactions"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Transactions, 1)
		require.Equal(t, "mobile_transfer", resp.Transactions[0].Type)
		require.Equal(t, "150.00", resp.Transactions[0].Amount)
		require.Equal(t, "254712345678", resp.Transactions[0].Phone)
		require.NotEmpty(t, resp.Transactions[0].CreatedAt)
	})

	t.Run("rejects non-integer limit", func(t *testing.T) {
		rec := g.authedJSON(t, http.MethodGet, "/api/v1/getTransactions?limit=abc", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	g := newTestGateway(t)

	t.Run("livez", func(t *testing.T) {
		rec := g.do(t, httptest.NewRequest(http.MethodGet, "/livez", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status  string `json:"status"`
			Version string `json:"version"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "ok", resp.Status)
		require.Equal(t, "test", resp.Version)
	})

	t.Run("readyz checks the database", func(t *testing.T) {
		rec := g.do(t, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAuthorizeRateLimit(t *testing.T) {
	g := newTestGateway(t)

	// Exhaust the per-IP quota from a dedicated address, then confirm both
	// the 429 and that other addresses are unaffected.
	var last *httptest.ResponseRecorder
	for range httpx.AuthorizeLimit.Burst + 1 {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/authorize", nil)
		req.Header.Set("X-Forwarded-For", "198.51.100.7")
		req.Header.Set("X-API-KEY", testAPIKey)
		req.Header.Set("X-API-SECRET", testAPISecret)
		last = g.do(t, req)
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	require.NotEmpty(t, last.Header().Get("Retry-After"))

	code, _, _ := decodeEnvelope(t, last)
	require.Equal(t, "rate_limit_exceeded", code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/authorize", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.8")
	req.Header.Set("X-API-KEY", testAPIKey)
	req.Header.Set("X-API-SECRET", testAPISecret)
	require.Equal(t, http.StatusOK, g.do(t, req).Code)
}
