package domain

import "time"

// Role is the closed set of account kinds. Each role maps to exactly one
// demo credential record and one dashboard.
type Role string

const (
	RoleProfessional Role = "professional"
	RoleClient       Role = "client"
	RoleSuperAdmin   Role = "superadmin"
)

// Roles lists every valid role, in a stable order.
var Roles = []Role{RoleProfessional, RoleClient, RoleSuperAdmin}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleProfessional, RoleClient, RoleSuperAdmin:
		return true
	}
	return false
}

// User models an authenticated actor. CreatedAt and LastLogin serialize as
// RFC3339 strings and must compare with time.Time.Equal after a round trip.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// CredentialRecord is the fixed demo credential for one role. PasswordHash
// holds a bcrypt hash; the plaintext is never kept after startup.
type CredentialRecord struct {
	ID           string
	Role         Role
	Email        string
	PasswordHash string
	Name         string
	Avatar       string
	CreatedAt    time.Time
}
