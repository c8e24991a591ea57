// Package rest exposes the wallet over HTTP: account signup and signin,
// token-gated transaction signing, and balance lookups.
package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velmarq/walletd/internal/logging"
	"github.com/velmarq/walletd/internal/server/services"
)

type Controller struct {
	auth    *services.AuthService
	txn     *services.TxnService
	balance *services.BalanceService
	logger  logging.Logger
}

func NewController(auth *services.AuthService, txn *services.TxnService, balance *services.BalanceService, logger logging.Logger) *Controller {
	return &Controller{
		auth:    auth,
		txn:     txn,
		balance: balance,
		logger:  logger.With("module", "rest_controller"),
	}
}

type signupRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Credential string `json:"credential" validate:"required"`
}

type signupResponse struct {
	Msg       string `json:"msg"`
	PublicKey string `json:"publicKey"`
}

func (ctrl *Controller) Signup(c echo.Context) error {
	req := &signupRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	publicKey, err := ctrl.auth.Signup(c.Request().Context(), req.Email, req.Credential)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, signupResponse{
		Msg:       "Signup successful",
		PublicKey: publicKey,
	})
}

type signinRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Credential string `json:"credential" validate:"required"`
}

type signinResponse struct {
	Token     string `json:"token"`
	PublicKey string `json:"publicKey"`
}

func (ctrl *Controller) Signin(c echo.Context) error {
	req := &signinRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	token, publicKey, err := ctrl.auth.Signin(c.Request().Context(), req.Email, req.Credential)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, signinResponse{
		Token:     token,
		PublicKey: publicKey,
	})
}

type signTransactionRequest struct {
	To     string `json:"to" validate:"required"`
	Amount int64  `json:"amount"`
}

type signTransactionResponse struct {
	Signature string `json:"signature"`
	Success   bool   `json:"success"`
}

func (ctrl *Controller) SignTransaction(c echo.Context) error {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	req := &signTransactionRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid transaction data format")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	signature, err := ctrl.txn.Sign(c.Request().Context(), claims.AccountID, req.To, req.Amount)
	if err != nil {
		transactionsFailed.Inc()
		ctrl.logger.Error(c.Request().Context(), "transaction signing failed",
			"account_id", claims.AccountID, "error", err.Error())
		return httpError(err)
	}
	transactionsSubmitted.Inc()

	return c.JSON(http.StatusOK, signTransactionResponse{
		Signature: signature,
		Success:   true,
	})
}

type balanceResponse struct {
	Address   string  `json:"address"`
	Balance   float64 `json:"balance"`
	BaseUnits uint64  `json:"baseUnits"`
}

func (ctrl *Controller) GetBalance(c echo.Context) error {
	address := c.Param("address")

	balance, err := ctrl.balance.Balance(c.Request().Context(), address)
	if err != nil {
		ctrl.logger.Error(c.Request().Context(), "balance lookup failed", "error", err.Error())
		return httpError(err)
	}

	return c.JSON(http.StatusOK, balanceResponse{
		Address:   balance.Address,
		Balance:   balance.Display,
		BaseUnits: balance.BaseUnits,
	})
}

func (ctrl *Controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
