package ports

import "github.com/probooking/probooking-api/internal/core/domain"

// CredentialStore supplies the single fixed credential record per role.
// Lookup fails only for a role outside the closed set.
type CredentialStore interface {
	Lookup(role domain.Role) (domain.CredentialRecord, error)
}
