package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	serverauth "github.com/velmarq/walletd/internal/server/auth"
)

// claimsContextKey is where the bearer middleware stashes verified session
// claims for the handler.
const claimsContextKey = "session_claims"

// VerifyFunc validates a session token and returns its claims.
type VerifyFunc func(token string) (*serverauth.Claims, error)

// BearerAuth gates protected routes: it extracts the bearer token from the
// Authorization header, verifies it, and stores the claims in the request
// context. A missing token yields 401, a bad or expired one 403.
func BearerAuth(verify VerifyFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			claims, err := verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
			}

			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified claims stored by BearerAuth.
func ClaimsFrom(c echo.Context) (*serverauth.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*serverauth.Claims)
	return claims, ok
}
