package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/probooking/probooking-api/internal/core/service"
	"github.com/probooking/probooking-api/internal/core/token"
	"github.com/probooking/probooking-api/internal/infrastructure/credentials"
	"github.com/probooking/probooking-api/internal/infrastructure/session"
)

// TestRouter_LoginFlow drives the wired router through a full session
// lifecycle: login, identity lookup with the returned token, dashboard
// resolution, role gating, and logout.
func TestRouter_LoginFlow(t *testing.T) {
	creds, err := credentials.NewStore()
	if err != nil {
		t.Fatalf("credential store: %v", err)
	}
	codec := token.NewCodec()
	svc := service.NewAuthService(
		creds,
		codec,
		session.NewMemoryStore(),
		service.Options{},
		zerolog.Nop(),
	)
	e := NewRouter(Dependencies{
		AuthService: svc,
		Codec:       codec,
		Log:         zerolog.Nop(),
	})

	do := func(method, path, body, bearer string) *httptest.ResponseRecorder {
		t.Helper()
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	// Unauthenticated session snapshot.
	rec := do(http.MethodGet, "/auth/session", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("session: expected 200, got %d", rec.Code)
	}
	var snap struct {
		IsAuthenticated bool `json:"isAuthenticated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if snap.IsAuthenticated {
		t.Fatalf("expected logged-out snapshot")
	}

	// Wrong email is rejected with the error envelope.
	rec = do(http.MethodPost, "/auth/login",
		`{"email":"nobody@x.com","password":"x","role":"professional"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d: %s", rec.Code, rec.Body.String())
	}

	// The demo professional logs in.
	rec = do(http.MethodPost, "/auth/login",
		`{"email":"john@probooking.com","password":"password123","role":"professional"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login struct {
		Token string `json:"token"`
		User  struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Token == "" || login.User.Name != "John Professional" {
		t.Fatalf("unexpected login response: %s", rec.Body.String())
	}

	// The returned token is accepted as a bearer credential.
	rec = do(http.MethodGet, "/me", "", login.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(http.MethodGet, "/dashboard", "", login.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", rec.Code)
	}
	var dash struct {
		Dashboard string `json:"dashboard"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.Dashboard != "professional-dashboard" {
		t.Fatalf("expected professional-dashboard, got %q", dash.Dashboard)
	}

	// A professional token cannot open the admin surface.
	rec = do(http.MethodGet, "/admin/audit", "", login.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin: expected 403, got %d", rec.Code)
	}

	// No token, no identity.
	rec = do(http.MethodGet, "/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: expected 401, got %d", rec.Code)
	}

	rec = do(http.MethodPost, "/auth/logout", "", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}
	if svc.IsAuthenticated() {
		t.Fatalf("expected logged-out service after logout")
	}

	rec = do(http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
}
