package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/probooking/probooking-api/internal/core/ports"
)

// Session decodes the bearer slot token and injects the identity into the
// request context. The token is the session codec's reversible encoding,
// not a signed credential.
func Session(codec ports.SessionCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := codec.Decode(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			c.Set("user", user)
			c.Set("role", string(user.Role))
			c.Set("email", user.Email)

			return next(c)
		}
	}
}
