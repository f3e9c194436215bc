package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/apperr"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/httpx"
	"go.uber.org/zap"
)

func TestDecode_Valid(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.edu"}`))
	var body struct {
		Email string `json:"email"`
	}
	if err := httpx.Decode(req, &body); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if body.Email != "a@b.edu" {
		t.Errorf("email = %q, want %q", body.Email, "a@b.edu")
	}
}

func TestDecode_EmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))
	var body struct{}
	err := httpx.Decode(req, &body)
	if !apperr.Is(err, apperr.InvalidArgument) {
		t.Errorf("expected invalid_argument, got %v", err)
	}
}

func TestDecode_Malformed(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
	var body struct{}
	err := httpx.Decode(req, &body)
	if !apperr.Is(err, apperr.InvalidArgument) {
		t.Errorf("expected invalid_argument, got %v", err)
	}
}

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.Respond(rec, http.StatusCreated, map[string]string{"college_id": "CS101"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if got["college_id"] != "CS101" {
		t.Errorf("body = %v", got)
	}
}

func TestError_DomainKind(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin/users/CS101", nil)

	httpx.Error(rec, req, apperr.E(apperr.NotFound, "user not found"), zap.NewNop())

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error.Kind != "not_found" || body.Error.Message != "user not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestError_InternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/hackathons/", nil)

	httpx.Error(rec, req, apperr.Errorf(apperr.Internal, "mongo: connection refused"), zap.NewNop())

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mongo") {
		t.Error("internal error details must not leak to the caller")
	}
}
