package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/probooking/probooking-api/internal/core/domain"
)

type stubAuditRepo struct {
	events    []domain.LoginEvent
	lastLimit int
}

func (r *stubAuditRepo) Insert(_ context.Context, _ *domain.LoginEvent) error { return nil }

func (r *stubAuditRepo) FindRecent(_ context.Context, limit int) ([]domain.LoginEvent, error) {
	r.lastLimit = limit
	return r.events, nil
}

func auditContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuditHandler_Recent(t *testing.T) {
	repo := &stubAuditRepo{events: []domain.LoginEvent{
		{ID: "e1", Email: "john@probooking.com", Role: domain.RoleProfessional, Success: true, Timestamp: time.Now().UTC()},
		{ID: "e2", Email: "wrong@x.com", Role: domain.RoleClient, Success: false, Reason: "invalid credentials", Timestamp: time.Now().UTC()},
	}}
	h := NewAuditHandler(repo)

	c, rec := auditContext("/admin/audit")
	if err := h.Recent(c); err != nil {
		t.Fatalf("recent: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if repo.lastLimit != defaultAuditLimit {
		t.Fatalf("expected default limit %d, got %d", defaultAuditLimit, repo.lastLimit)
	}

	var resp auditListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if resp.Data[1].Reason != "invalid credentials" {
		t.Fatalf("unexpected event: %+v", resp.Data[1])
	}
}

func TestAuditHandler_LimitParam(t *testing.T) {
	repo := &stubAuditRepo{}
	h := NewAuditHandler(repo)

	c, _ := auditContext("/admin/audit?limit=5")
	if err := h.Recent(c); err != nil {
		t.Fatalf("recent: %v", err)
	}
	if repo.lastLimit != 5 {
		t.Fatalf("expected limit 5, got %d", repo.lastLimit)
	}

	for _, raw := range []string{"0", "-3", "abc"} {
		c, _ := auditContext("/admin/audit?limit=" + raw)
		err := h.Recent(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("limit=%s: expected 400, got %v", raw, err)
		}
	}
}

func TestAuditHandler_NotConfigured(t *testing.T) {
	h := NewAuditHandler(nil)
	c, _ := auditContext("/admin/audit")
	if err := h.Recent(c); !errors.Is(err, domain.ErrAuditUnavailable) {
		t.Fatalf("expected ErrAuditUnavailable, got %v", err)
	}
}
