// Package credentials holds the fixed demo accounts. There is exactly one
// record per role; the set is built once at startup and never mutated.
package credentials

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/probooking/probooking-api/internal/core/domain"
)

type seedAccount struct {
	ID       string
	Role     domain.Role
	Email    string
	Password string
	Name     string
	Avatar   string
}

// The demo accounts every ProBooking environment ships with.
var seeds = []seedAccount{
	{
		ID:       "1",
		Role:     domain.RoleProfessional,
		Email:    "john@probooking.com",
		Password: "password123",
		Name:     "John Professional",
		Avatar:   "https://i.pravatar.cc/150?img=12",
	},
	{
		ID:       "2",
		Role:     domain.RoleClient,
		Email:    "sarah@email.com",
		Password: "password123",
		Name:     "Sarah Mitchell",
		Avatar:   "https://i.pravatar.cc/150?img=47",
	},
	{
		ID:       "3",
		Role:     domain.RoleSuperAdmin,
		Email:    "admin@probooking.com",
		Password: "admin123",
		Name:     "Alex Admin",
		Avatar:   "https://i.pravatar.cc/150?img=68",
	},
}

// accountsCreatedAt is the fixed creation stamp for the demo accounts.
var accountsCreatedAt = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// Store is an in-memory credential store, exhaustively populated over the
// closed role set. Read-only after construction, safe for concurrent use.
type Store struct {
	records map[domain.Role]domain.CredentialRecord
}

// NewStore hashes the seed passwords and builds the per-role record map.
func NewStore() (*Store, error) {
	records := make(map[domain.Role]domain.CredentialRecord, len(seeds))
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("credential store: hash %s: %w", s.Email, err)
		}
		records[s.Role] = domain.CredentialRecord{
			ID:           s.ID,
			Role:         s.Role,
			Email:        s.Email,
			PasswordHash: string(hash),
			Name:         s.Name,
			Avatar:       s.Avatar,
			CreatedAt:    accountsCreatedAt,
		}
	}
	return &Store{records: records}, nil
}

// Lookup returns the record for role. It fails only for a role outside the
// closed set, which can only arrive from unvalidated wire input.
func (s *Store) Lookup(role domain.Role) (domain.CredentialRecord, error) {
	rec, ok := s.records[role]
	if !ok {
		return domain.CredentialRecord{}, fmt.Errorf("%w: %q", domain.ErrUnknownRole, role)
	}
	return rec, nil
}
