package ports

import (
	"context"

	"github.com/probooking/probooking-api/internal/core/domain"
)

// LoginInput carries a submitted credential set.
type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult is returned by the service after a successful login.
type LoginResult struct {
	User  domain.User
	Token string
	// Persisted is false when the session slot could not be written; the
	// login still holds for the current process lifetime.
	Persisted bool
}

// AuthService drives the session lifecycle. One session at most; all state
// observation goes through the read methods rather than shared globals.
type AuthService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context) error
	// Restore attempts to rehydrate a persisted session at startup. It
	// reports whether a session was restored; a corrupt slot is discarded
	// silently.
	Restore(ctx context.Context) (*domain.User, bool)

	State() domain.SessionState
	CurrentUser() *domain.User
	IsAuthenticated() bool
	IsLoading() bool
	Err() string
	ClearError()
}
