package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velmarq/walletd/internal/logging"
	"github.com/velmarq/walletd/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Server owns the echo instance and its route table.
type Server struct {
	address string
	echo    *echo.Echo
	logger  logging.Logger
}

// NewServer wires the controllers onto the public route table. The signing
// endpoint sits behind the bearer-token gate; everything else is open.
func NewServer(address string, logger logging.Logger, auth *services.AuthService, txn *services.TxnService, balance *services.BalanceService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.Use(MetricsMiddleware())

	ctrl := NewController(auth, txn, balance, logger)

	api := e.Group("/api/v1")
	api.POST("/signup", ctrl.Signup)
	api.POST("/signin", ctrl.Signin)
	api.POST("/txn/sign", ctrl.SignTransaction, BearerAuth(auth.Verify))
	api.GET("/balance/:address", ctrl.GetBalance)

	e.GET("/healthz", ctrl.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return &Server{
		address: address,
		echo:    e,
		logger:  logger.With("module", "rest_server"),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
