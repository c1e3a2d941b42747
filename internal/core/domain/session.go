package domain

import "errors"

// SessionState represents the lifecycle state of the session controller.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticating  SessionState = "authenticating"
	StateAuthenticated   SessionState = "authenticated"
)

// validTransitions defines the allowed state machine transitions. The direct
// unauthenticated to authenticated edge exists for the startup restore path,
// which rehydrates a persisted session without a credential check.
var validTransitions = map[SessionState][]SessionState{
	StateUnauthenticated: {StateAuthenticating, StateAuthenticated},
	StateAuthenticating:  {StateAuthenticated, StateUnauthenticated},
	StateAuthenticated:   {StateUnauthenticated},
}

// CanTransitionTo reports whether moving from the current state to next is valid.
func (s SessionState) CanTransitionTo(next SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var ErrMissingCredentials = errors.New("email and password are required")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnknownRole = errors.New("unknown role")
var ErrLoginInProgress = errors.New("a login is already in progress")
var ErrActiveSession = errors.New("a session is already active")
var ErrLoginTimeout = errors.New("login timed out")
var ErrTooManyAttempts = errors.New("too many failed login attempts")
var ErrMalformedSession = errors.New("malformed session token")
var ErrNoSession = errors.New("no session")
var ErrStorageUnavailable = errors.New("session storage unavailable")
var ErrInvalidTransition = errors.New("invalid session state transition")
var ErrAuditUnavailable = errors.New("login audit storage not configured")

// SessionKey is the fixed key under which the single session slot is persisted.
const SessionKey = "pb_u"

// TempKeyPrefix tags derived cache entries that must be dropped on logout.
const TempKeyPrefix = "pb_tmp:"
