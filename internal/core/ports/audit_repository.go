package ports

import (
	"context"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// AuditRepository persists the login attempt trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.LoginEvent) error
	FindRecent(ctx context.Context, limit int) ([]domain.LoginEvent, error)
}
