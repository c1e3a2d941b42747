package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// ctxUser extracts the identity injected by the Session middleware and
// performs a fast-fail check before any handler logic: a missing or
// role-less user means the middleware did not run on this route.
func ctxUser(c echo.Context) (domain.User, error) {
	user, ok := c.Get("user").(domain.User)
	if !ok || !user.Role.Valid() {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
