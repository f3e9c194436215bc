package authn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/auth"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/ratelimit"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"go.uber.org/zap"
)

func activatedSvc(t *testing.T) (*Handler, *fakeProfiles) {
	t.Helper()
	svc, profiles, _ := newTestService()
	profiles.add(pendingProfile("CS1", "cs1@c.test"))
	if _, err := svc.Activate(context.Background(), ActivateInput{"CS1", "cs1@c.test", "hunter2hunter2"}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	return NewHandler(svc, nil, zap.NewNop()), profiles
}

func TestHandleLogin(t *testing.T) {
	h, _ := activatedSvc(t)

	body := `{"email":"cs1@c.test","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			CollegeID string `json:"college_id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" || resp.User.CollegeID != "CS1" {
		t.Errorf("response: %+v", resp)
	}
}

func TestHandleLoginBadCredentials(t *testing.T) {
	h, _ := activatedSvc(t)

	body := `{"email":"cs1@c.test","password":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestHandleLoginThrottled(t *testing.T) {
	h, _ := activatedSvc(t)
	h.Limiter = ratelimit.NewCredentialLimiter()

	// Burn the per-email budget with bad passwords.
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"cs1@c.test","password":"nope"}`))
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"cs1@c.test","password":"hunter2hunter2"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("throttled attempt: got %d, want 429", rec.Code)
	}
}

func TestHandleActivateMalformedBody(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewHandler(svc, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/auth/activate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.HandleActivate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestHandleMe(t *testing.T) {
	h, profiles := activatedSvc(t)
	p := profiles.byCollegeID["CS1"]

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = auth.WithProfile(req, p)
	rec := httptest.NewRecorder()
	h.HandleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var got models.Profile
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CollegeID != "CS1" {
		t.Errorf("college_id: got %q", got.CollegeID)
	}
}

func TestHandleMeUnauthenticated(t *testing.T) {
	h, _ := activatedSvc(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	h.HandleMe(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}
