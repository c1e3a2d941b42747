package domain

import "testing"

func TestSessionState_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to SessionState
		want     bool
	}{
		{StateUnauthenticated, StateAuthenticating, true},
		{StateUnauthenticated, StateAuthenticated, true}, // startup restore
		{StateAuthenticating, StateAuthenticated, true},
		{StateAuthenticating, StateUnauthenticated, true},
		{StateAuthenticated, StateUnauthenticated, true},
		{StateAuthenticated, StateAuthenticating, false},
		{StateAuthenticated, StateAuthenticated, false},
		{StateUnauthenticated, StateUnauthenticated, false},
		{StateAuthenticating, StateAuthenticating, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	for _, r := range []Role{"", "admin", "guest", "Professional"} {
		if r.Valid() {
			t.Errorf("role %q should be invalid", r)
		}
	}
}
