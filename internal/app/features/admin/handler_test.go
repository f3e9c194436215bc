package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleAddStudentForcesRole(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop())

	// Role in the body is ignored on the role-specific endpoint.
	body := `{"college_id":"cs1","name":"Asha","email":"asha@c.test","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/add-student", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAddStudent(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Role != "student" {
		t.Errorf("role: got %q, want student", got.Role)
	}
}

func TestHandleAddHODRequiresDepartment(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop())

	body := `{"college_id":"h1","name":"Hod","email":"hod@c.test"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/add-hod", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAddHOD(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestHandleAddUserDuplicateConflict(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop())
	if _, err := svc.AddUser(context.Background(), AddUserInput{CollegeID: "cs1", Name: "A", Email: "a@c.test", Role: "student"}); err != nil {
		t.Fatal(err)
	}

	body := `{"college_id":"cs1","name":"B","email":"b@c.test","role":"student"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/add-user", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleAddUser(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
}

func TestHandleGetUser(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc, zap.NewNop())
	if _, err := svc.AddUser(context.Background(), AddUserInput{CollegeID: "cs1", Name: "A", Email: "a@c.test", Role: "student"}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/users/cs1", nil)
	req = testutil.WithChiURLParam(req, "collegeID", "cs1")
	rec := httptest.NewRecorder()
	h.HandleGetUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/users/nope", nil)
	req = testutil.WithChiURLParam(req, "collegeID", "nope")
	rec = httptest.NewRecorder()
	h.HandleGetUser(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user status: got %d, want 404", rec.Code)
	}
}

func TestHandleDeactivateUser(t *testing.T) {
	svc, fp := newTestService()
	h := NewHandler(svc, zap.NewNop())
	if _, err := svc.AddUser(context.Background(), AddUserInput{CollegeID: "cs1", Name: "A", Email: "a@c.test", Role: "student"}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPatch, "/admin/users/cs1/deactivate", nil)
	req = testutil.WithChiURLParam(req, "collegeID", "cs1")
	rec := httptest.NewRecorder()
	h.HandleDeactivateUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if fp.profiles[0].IsActive {
		t.Error("profile should be inactive")
	}
}
