package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grupp3/accounts-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware. A
// missing role means the middleware did not run for this route; that is a
// wiring bug surfaced as 401, not a panic.
func ctxClaims(c echo.Context) (domain.AuthClaims, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.AuthClaims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	accountID, _ := c.Get("account_id").(string)
	username, _ := c.Get("username").(string)

	return domain.AuthClaims{AccountID: accountID, Username: username, Role: role}, nil
}
