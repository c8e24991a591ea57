// Package server initializes and runs the wallet backend.
// It opens the database, applies schema migrations, wires the services
// together and starts the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/velmarq/walletd/internal/logging"
	"github.com/velmarq/walletd/internal/server/config"
	"github.com/velmarq/walletd/internal/server/keypair"
	"github.com/velmarq/walletd/internal/server/ledger"
	"github.com/velmarq/walletd/internal/server/repositories/repomanager"
	"github.com/velmarq/walletd/internal/server/rest"
	"github.com/velmarq/walletd/internal/server/securebox"
	"github.com/velmarq/walletd/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var box *securebox.Box
	if cfg.SecretStoreKey != "" {
		box = securebox.New(cfg.SecretStoreKey)
	} else {
		logger.Warn(context.Background(), "secret store key is not set, account keys are stored unsealed")
	}
	custodian := keypair.New(box)

	client := ledger.NewRPCClient(cfg.LedgerRPCURL, cfg.LedgerRPCTimeout, logger)

	authService := services.NewAuthService(db, rm, custodian, cfg, logger)
	txnService := services.NewTxnService(db, rm, custodian, client, logger)
	balanceService := services.NewBalanceService(client, logger)

	server := rest.NewServer(cfg.EndpointAddrHTTP, logger, authService, txnService, balanceService)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err)
	}
}
