package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// ProfileHandler serves identity lookups for authenticated callers.
type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Me returns the identity decoded from the bearer session token.
//
// @Summary      Current identity
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Dashboard resolves which dashboard the caller's role mounts. The page
// trees themselves live in the client; the server only answers the routing
// question.
//
// @Summary      Dashboard assignment for the caller's role
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard [get]
func (h *ProfileHandler) Dashboard(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Role:      string(user.Role),
		Name:      user.Name,
		Dashboard: dashboardFor(user.Role),
	})
}

// dashboardFor maps each role to its dashboard. The switch is exhaustive
// over the closed role set; the empty default can only be reached with a
// user that bypassed role validation.
func dashboardFor(role domain.Role) string {
	switch role {
	case domain.RoleProfessional:
		return "professional-dashboard"
	case domain.RoleClient:
		return "client-dashboard"
	case domain.RoleSuperAdmin:
		return "admin-dashboard"
	default:
		return ""
	}
}
