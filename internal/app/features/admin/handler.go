// internal/app/features/admin/handler.go
package admin

import (
	"context"
	"net/http"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/httpx"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/timeouts"
	"github.com/BarathG2005/hackthon-mangament-plateform/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the user directory endpoints as JSON.
type Handler struct {
	Svc *Service
	Log *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Svc: svc, Log: logger}
}

type addUserRequest struct {
	CollegeID  string `json:"college_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// HandleAddUser is POST /admin/add-user. The role comes from the body.
func (h *Handler) HandleAddUser(w http.ResponseWriter, r *http.Request) {
	h.addUser(w, r, "")
}

// HandleAddStudent is POST /admin/add-student.
func (h *Handler) HandleAddStudent(w http.ResponseWriter, r *http.Request) {
	h.addUser(w, r, models.RoleStudent)
}

// HandleAddTeacher is POST /admin/add-teacher.
func (h *Handler) HandleAddTeacher(w http.ResponseWriter, r *http.Request) {
	h.addUser(w, r, models.RoleTeacher)
}

// HandleAddHOD is POST /admin/add-hod.
func (h *Handler) HandleAddHOD(w http.ResponseWriter, r *http.Request) {
	h.addUser(w, r, models.RoleHOD)
}

// HandleAddPrincipal is POST /admin/add-principal.
func (h *Handler) HandleAddPrincipal(w http.ResponseWriter, r *http.Request) {
	h.addUser(w, r, models.RolePrincipal)
}

// addUser handles the shared pre-registration flow. A non-empty
// forceRole overrides whatever role the body carries, so the
// role-specific endpoints cannot be used to mint a different role.
func (h *Handler) addUser(w http.ResponseWriter, r *http.Request, forceRole models.Role) {
	var req addUserRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	if forceRole != "" {
		req.Role = string(forceRole)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Svc.AddUser(ctx, AddUserInput{
		CollegeID:  req.CollegeID,
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusCreated, created)
}

// HandleListUsers is GET /admin/users.
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Svc.ListUsers(ctx, r.URL.Query().Get("role"), r.URL.Query().Get("department"))
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]any{"users": users, "count": len(users)})
}

// HandleGetUser is GET /admin/users/{collegeID}.
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Svc.GetUser(ctx, chi.URLParam(r, "collegeID"))
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, p)
}

// HandleActivateUser is PATCH /admin/users/{collegeID}/activate.
func (h *Handler) HandleActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// HandleDeactivateUser is PATCH /admin/users/{collegeID}/deactivate.
func (h *Handler) HandleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	collegeID := chi.URLParam(r, "collegeID")
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Svc.SetUserActive(ctx, collegeID, active); err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}

	msg := "user deactivated"
	if active {
		msg = "user activated"
	}
	httpx.Respond(w, http.StatusOK, map[string]string{"message": msg, "college_id": collegeID})
}

// HandleDashboard is GET /admin/dashboard/stats.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	counts, err := h.Svc.DashboardStats(ctx)
	if err != nil {
		httpx.Error(w, r, err, h.Log)
		return
	}
	httpx.Respond(w, http.StatusOK, counts)
}
