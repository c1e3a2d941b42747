package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/probooking/probooking-api/internal/core/domain"
	"github.com/probooking/probooking-api/internal/core/ports"
)

type stubAuthService struct {
	loginResult *ports.LoginResult
	loginErr    error
	lastInput   ports.LoginInput
	logoutCalls int
	clearCalls  int

	state  domain.SessionState
	user   *domain.User
	errMsg string
}

func (s *stubAuthService) Login(_ context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	s.lastInput = in
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) Logout(_ context.Context) error {
	s.logoutCalls++
	return nil
}

func (s *stubAuthService) Restore(_ context.Context) (*domain.User, bool) {
	return nil, false
}

func (s *stubAuthService) State() domain.SessionState { return s.state }
func (s *stubAuthService) CurrentUser() *domain.User  { return s.user }
func (s *stubAuthService) IsAuthenticated() bool      { return s.state == domain.StateAuthenticated }
func (s *stubAuthService) IsLoading() bool            { return s.state == domain.StateAuthenticating }
func (s *stubAuthService) Err() string                { return s.errMsg }
func (s *stubAuthService) ClearError()                { s.clearCalls++ }

func newLoginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := domain.User{
		ID: "1", Email: "john@probooking.com", Name: "John Professional",
		Role: domain.RoleProfessional, IsActive: true,
	}
	svc := &stubAuthService{
		loginResult: &ports.LoginResult{User: user, Token: "encoded-token", Persisted: true},
	}
	h := NewAuthHandler(svc)

	c, rec := newLoginContext(t, `{"email":"john@probooking.com","password":"password123","role":"professional"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "encoded-token" || !resp.Persisted {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.User == nil || resp.User.Name != "John Professional" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if svc.lastInput.Role != domain.RoleProfessional {
		t.Fatalf("role not forwarded, got %q", svc.lastInput.Role)
	}
}

func TestAuthHandler_Login_ValidationFailures(t *testing.T) {
	cases := map[string]string{
		"missing email":    `{"password":"x","role":"client"}`,
		"malformed email":  `{"email":"not-an-email","password":"x","role":"client"}`,
		"missing password": `{"email":"a@b.com","role":"client"}`,
		"missing role":     `{"email":"a@b.com","password":"x"}`,
		"unknown role":     `{"email":"a@b.com","password":"x","role":"guest"}`,
	}

	for name, body := range cases {
		svc := &stubAuthService{}
		h := NewAuthHandler(svc)

		c, _ := newLoginContext(t, body)
		err := h.Login(c)
		if err == nil {
			t.Fatalf("%s: expected an error", name)
		}
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
		if svc.lastInput != (ports.LoginInput{}) {
			t.Fatalf("%s: invalid payload must not reach the service", name)
		}
	}
}

func TestAuthHandler_Login_ServiceError(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	c, _ := newLoginContext(t, `{"email":"a@b.com","password":"x","role":"client"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected the domain error to pass through, got %v", err)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.logoutCalls != 1 {
		t.Fatalf("expected one logout call, got %d", svc.logoutCalls)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	svc := &stubAuthService{
		state:  domain.StateAuthenticated,
		user:   &domain.User{ID: "2", Email: "sarah@email.com", Role: domain.RoleClient},
		errMsg: "",
	}
	h := NewAuthHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	rec := httptest.NewRecorder()
	if err := h.Session(e.NewContext(req, rec)); err != nil {
		t.Fatalf("session: %v", err)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsAuthenticated || resp.IsLoading {
		t.Fatalf("unexpected flags: %+v", resp)
	}
	if resp.User == nil || resp.User.Email != "sarah@email.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_ClearError(t *testing.T) {
	svc := &stubAuthService{errMsg: "Invalid credentials"}
	h := NewAuthHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/auth/error", nil)
	rec := httptest.NewRecorder()
	if err := h.ClearError(e.NewContext(req, rec)); err != nil {
		t.Fatalf("clear error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.clearCalls != 1 {
		t.Fatalf("expected one ClearError call, got %d", svc.clearCalls)
	}
}
