package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/probooking/probooking-api/internal/api/metrics"
	"github.com/probooking/probooking-api/internal/core/domain"
	"github.com/probooking/probooking-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates against the fixed demo credentials and returns the
// encoded session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Role, "failure").Inc()
		metrics.LoginFailuresTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(req.Role, "failure").Inc()
		metrics.LoginFailuresTotal.WithLabelValues(failureReason(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(req.Role, "success").Inc()
	metrics.ActiveSessions.Set(1)

	user := result.User
	return c.JSON(http.StatusOK, loginResponse{
		Token:     result.Token,
		User:      &user,
		Persisted: result.Persisted,
	})
}

// Logout clears the published session and the persisted slot. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	metrics.ActiveSessions.Set(0)
	return c.NoContent(http.StatusNoContent)
}

// Session reports the observable session state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		User:            h.authService.CurrentUser(),
		IsAuthenticated: h.authService.IsAuthenticated(),
		IsLoading:       h.authService.IsLoading(),
		Error:           h.authService.Err(),
	})
}

// ClearError dismisses the published error message.
//
// @Summary      Clear the published auth error
// @Tags         auth
// @Success      204
// @Router       /auth/error [delete]
func (h *AuthHandler) ClearError(c echo.Context) error {
	h.authService.ClearError()
	return c.NoContent(http.StatusNoContent)
}

// failureReason maps a login error to its metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return "validation"
	case errors.Is(err, domain.ErrUnknownRole):
		return "unknown_role"
	case errors.Is(err, domain.ErrLoginInProgress), errors.Is(err, domain.ErrActiveSession):
		return "in_progress"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "too_many_attempts"
	case errors.Is(err, domain.ErrLoginTimeout):
		return "timeout"
	default:
		return "invalid_credentials"
	}
}
