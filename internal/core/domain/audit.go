package domain

import "time"

// LoginEvent records a single login attempt for the audit trail.
type LoginEvent struct {
	ID        string
	Email     string
	Role      Role
	Success   bool
	Reason    string // failure reason, empty on success
	Timestamp time.Time
}
