package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velmarq/walletd/internal/common"
)

// httpError maps the service error taxonomy onto the HTTP surface. Ledger
// failures keep their upstream text; anything unclassified is reduced to a
// generic message so internals never leak to the caller.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, "User not found or invalid credentials")
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, common.ErrMissingSecret):
		return echo.NewHTTPError(http.StatusBadRequest, "User doesn't have a private key")
	case errors.Is(err, common.ErrLedger):
		return echo.NewHTTPError(http.StatusInternalServerError, "Transaction processing error: "+err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
