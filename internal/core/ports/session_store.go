package ports

import "context"

// SessionStore persists the single session slot across process restarts.
// Only the auth service writes it, so implementations need no locking beyond
// their own internal consistency.
type SessionStore interface {
	// Save overwrites the slot. Failures surface as domain.ErrStorageUnavailable.
	Save(ctx context.Context, token string) error
	// Load returns the slot content, or domain.ErrNoSession when empty.
	Load(ctx context.Context) (string, error)
	// Clear removes the slot and any derived temp-tagged entries. Clearing
	// an empty slot is a no-op success.
	Clear(ctx context.Context) error
}
