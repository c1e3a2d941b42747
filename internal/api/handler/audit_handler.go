package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/probooking/probooking-api/internal/core/domain"
	"github.com/probooking/probooking-api/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditHandler exposes the login attempt trail to super-admins. repo is nil
// when audit storage is not configured.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// Recent lists the newest login attempts.
//
// @Summary      Recent login attempts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum events to return (default 50)"
// @Success      200    {object}  auditListResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      503    {object}  errorResponse
// @Router       /admin/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	if h.repo == nil {
		return domain.ErrAuditUnavailable
	}

	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	events, err := h.repo.FindRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	data := make([]auditEventResponse, 0, len(events))
	for _, ev := range events {
		data = append(data, auditEventResponse{
			ID:        ev.ID,
			Email:     ev.Email,
			Role:      string(ev.Role),
			Success:   ev.Success,
			Reason:    ev.Reason,
			Timestamp: ev.Timestamp,
		})
	}

	return c.JSON(http.StatusOK, auditListResponse{Data: data, Count: len(data)})
}
