package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fails fast before any service call: a non-empty user id proves the
// middleware ran. The principal is always passed onward explicitly; handlers
// never reach into ambient session state.
func ctxPrincipal(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ = c.Get("role").(string)
	return userID, role, nil
}
