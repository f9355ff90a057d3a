package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sellapay/gateway/internal/gateway/domain"
	httpapi "github.com/sellapay/gateway/internal/gateway/http"
	"github.com/sellapay/gateway/internal/gateway/service"
	"github.com/sellapay/gateway/internal/gateway/store"
	"github.com/sellapay/gateway/internal/gateway/store/drivers/sqlite"
	"github.com/sellapay/gateway/pkg/cryptox"
	"github.com/sellapay/gateway/pkg/jwtx"
	"github.com/sellapay/gateway/pkg/slogx"
	"github.com/shopspring/decimal"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the gateway with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	credentialService *service.CredentialService
	tokenService      *service.TokenService
	paymentService    *service.PaymentService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "sellapay-gateway",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewSignerHS256([]byte(cfg.SigningSecret))
	if err != nil {
		return nil, fmt.Errorf("invalid signing secret: %w", err)
	}
	verifier := jwtx.NewVerifierHS256([]byte(cfg.SigningSecret))

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.bootstrap(context.Background()); err != nil {
		return nil, fmt.Errorf("bootstrap seeding failed: %w", err)
	}

	app.credentialService = &service.CredentialService{
		Store:         app.db,
		LookupTimeout: cfg.CredentialLookupTimeout,
	}
	app.tokenService = &service.TokenService{Signer: signer}
	app.paymentService = &service.PaymentService{
		Store:      app.db,
		StkPushFee: cfg.StkPushFee,
		MaxAmount:  cfg.MaxAmount,
	}

	app.router = httpapi.NewRouter(verifier, BuildVersion, app.db, app.logger)
	app.router.CredentialService = app.credentialService
	app.router.TokenService = app.tokenService
	app.router.PaymentService = app.paymentService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("gateway starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gateway stopped")
	return nil
}

// initDatabase opens the store and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// bootstrap seeds the first account + credential pair when the credential
// store is empty and the bootstrap env vars are set. A no-op otherwise.
func (app *Application) bootstrap(ctx context.Context) error {
	cfg := app.cfg
	if cfg.BootstrapAPIKey == "" || cfg.BootstrapAccount == "" {
		return nil
	}

	empty, err := app.db.Credentials().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	apiSecret := cfg.BootstrapAPISecret
	if apiSecret == "" {
		apiSecret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		// Printed exactly once; the hash is all that survives.
		app.logger.Warn("no bootstrap secret configured, generated one",
			"api_secret", apiSecret)
	}

	secretHash, err := cryptox.HashSecret(apiSecret)
	if err != nil {
		return err
	}

	return app.db.WithTx(ctx, func(tx store.Tx) error {
		account := domain.Account{
			Number:          cfg.BootstrapAccount,
			BusinessID:      cfg.BootstrapBusinessID,
			PrimaryCurrency: domain.KES,
			Balances: map[domain.Currency]decimal.Decimal{
				domain.KES: cfg.BootstrapBalance,
			},
		}
		if err := tx.Accounts().CreateAccount(ctx, account); err != nil {
			return err
		}

		cred := domain.Credential{
			APIKey:     cfg.BootstrapAPIKey,
			SecretHash: secretHash,
			Account:    cfg.BootstrapAccount,
			BusinessID: cfg.BootstrapBusinessID,
		}
		if err := tx.Credentials().CreateCredential(ctx, cred); err != nil {
			return err
		}

		app.logger.Info("bootstrap credential seeded",
			"account", cfg.BootstrapAccount,
			"business_id", cfg.BootstrapBusinessID)
		return nil
	})
}
