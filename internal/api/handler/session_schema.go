package handler

import (
	"time"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=professional client superadmin"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
	// Persisted is false when the slot write failed and the session is
	// in-memory only.
	Persisted bool `json:"persisted"`
}

// sessionResponse mirrors the observable surface the dashboards consume.
type sessionResponse struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsLoading       bool         `json:"isLoading"`
	Error           string       `json:"error,omitempty"`
}

type dashboardResponse struct {
	Role      string `json:"role"`
	Name      string `json:"name"`
	Dashboard string `json:"dashboard"`
}

type auditEventResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Success   bool      `json:"success"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type auditListResponse struct {
	Data  []auditEventResponse `json:"data"`
	Count int                  `json:"count"`
}
